package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
)

// catalogCommand creates the catalog command and its subcommands.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the module catalog and selection options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.activeCatalog()
			if err != nil {
				return err
			}
			printCatalog(cat)
			return nil
		},
	}

	cmd.AddCommand(c.catalogExportCommand())
	cmd.AddCommand(c.catalogValidateCommand())

	return cmd
}

// catalogExportCommand creates the "catalog export" subcommand.
func (c *CLI) catalogExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as TOML",
		Long: `Export writes the active catalog as TOML. Edit the file and pass it back
with --catalog to replace modules or options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.activeCatalog()
			if err != nil {
				return err
			}
			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := catalog.Encode(w, cat); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Exported catalog")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// catalogValidateCommand creates the "catalog validate" subcommand.
func (c *CLI) catalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "validate <file>",
		Short:             "Check a TOML catalog file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: catalogFileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("Catalog is valid")
			printDetail("%d modules, %d facades, %d countertops, %d carcasses",
				len(cat.Modules), len(cat.Facades), len(cat.Countertops), len(cat.Carcasses))
			return nil
		},
	}
}

func (c *CLI) activeCatalog() (*catalog.Catalog, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.loadCatalog(cfg)
}

// printCatalog prints one table per catalog section.
func printCatalog(cat *catalog.Catalog) {
	var modules [][]string
	for _, m := range cat.Modules {
		modules = append(modules, []string{
			m.ID, m.Name, m.Kind.String(),
			fmt.Sprintf("%.2f", m.Width), fmt.Sprintf("€%.0f", m.Price),
		})
	}
	printSection("Modules", []string{"ID", "Name", "Kind", "Width", "Price"}, modules)

	var facades [][]string
	for _, f := range cat.Facades {
		facades = append(facades, []string{f.ID, f.Label, string(f.Finish), f.Value})
	}
	printSection("Facades", []string{"ID", "Label", "Finish", "Value"}, facades)

	var tops [][]string
	for _, t := range cat.Countertops {
		tops = append(tops, []string{t.ID, t.Name, fmt.Sprintf("×%.2f", t.Multiplier()), t.Hex})
	}
	printSection("Countertops", []string{"ID", "Name", "Factor", "Color"}, tops)

	var carcasses [][]string
	for _, k := range cat.Carcasses {
		carcasses = append(carcasses, []string{k.ID, k.Label, k.Value})
	}
	printSection("Carcasses", []string{"ID", "Label", "Color"}, carcasses)
}

func printSection(title string, headers []string, rows [][]string) {
	fmt.Println(StyleTitle.Render(title))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
	fmt.Println(t.Render())
}
