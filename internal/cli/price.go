package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// priceCommand creates the price command.
func (c *CLI) priceCommand() *cobra.Command {
	var kf kitchenFlags

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Print the price breakdown of a run",
		Example: `  kitchenrun price --facade wood_gloss --countertop oak
  kitchenrun price -m base60,hob60 --no-upper --no-hood`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := c.loadCatalog(cfg)
			if err != nil {
				return err
			}
			opts, err := kf.options(cmd, cat)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(cmd.Context()))
			snap, err := runner.Plan(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Println(priceTable(snap.Price))
			return nil
		},
	}

	kf.register(cmd)
	c.completeKitchenFlags(cmd)

	return cmd
}
