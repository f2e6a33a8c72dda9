package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// planCommand creates the plan command. It lays out a run and prints its
// placements, or the JSON scene with --json.
func (c *CLI) planCommand() *cobra.Command {
	var (
		kf     kitchenFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Lay out a run and print its placements",
		Long: `Plan resolves the module ids, fills the gap to the target length with
fillers and prints every placement along the run.`,
		Example: `  kitchenrun plan
  kitchenrun plan -m base60,sink80,hob60 -l 2.3
  kitchenrun plan --selection kitchen.toml --json`,
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

			if asJSON {
				opts.Formats = []string{pipeline.FormatJSON}
				out, err := pipeline.RenderSnapshot(snap, opts)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(out[pipeline.FormatJSON])
				return err
			}

			plan := snap.Run.Plan
			fmt.Println(placementTable(snap.Run.Placements, -1))
			printKeyValue("Target", fmt.Sprintf("%.2f m", snap.Selection.TargetLength))
			printKeyValue("Total", fmt.Sprintf("%.2f m", plan.Total))
			printKeyValue("Fillers", fmt.Sprintf("%d", plan.FillerCount()))
			if x, ok := snap.Run.SinkCenter(); ok {
				printKeyValue("Sink", fmt.Sprintf("%.2f m", x))
			}
			printKeyValue("Hood", fmt.Sprintf("%.2f m", snap.Run.HoodCenter))
			printKeyValue("Subtotal", fmt.Sprintf("€%.0f", snap.Price.Subtotal))
			if snap.Overflow {
				printWarning("Modules exceed the target length by %.2f m", plan.Total-snap.Selection.TargetLength)
			}
			return nil
		},
	}

	kf.register(cmd)
	c.completeKitchenFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON scene instead of a table")

	return cmd
}
