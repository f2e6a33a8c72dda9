package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// kitchenFlags holds the flags shared by every command that plans a run.
type kitchenFlags struct {
	modules    string  // comma-separated module ids
	selection  string  // TOML file holding a selection
	facade     string  // facade option id
	countertop string  // countertop option id
	carcass    string  // carcass option id
	finish     string  // finish override: matte or gloss
	length     float64 // target length in meters
	noUpper    bool    // hide the upper cabinet row
	noHood     bool    // hide the range hood
}

func (f *kitchenFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.modules, "modules", "m", "", "module ids in order (comma-separated, default base60,sink80,dish60,hob60)")
	cmd.Flags().StringVar(&f.selection, "selection", "", "TOML file with facade_id, countertop_id, carcass_id, finish, target_length, show_upper, show_hood")
	cmd.Flags().StringVar(&f.facade, "facade", "", "facade option id")
	cmd.Flags().StringVar(&f.countertop, "countertop", "", "countertop option id")
	cmd.Flags().StringVar(&f.carcass, "carcass", "", "carcass option id")
	cmd.Flags().StringVar(&f.finish, "finish", "", "finish override: matte, gloss")
	cmd.Flags().Float64VarP(&f.length, "length", "l", kitchen.DefaultLength, "target run length in meters (2.0-5.0)")
	cmd.Flags().BoolVar(&f.noUpper, "no-upper", false, "hide the upper cabinet row")
	cmd.Flags().BoolVar(&f.noHood, "no-hood", false, "hide the range hood")
}

// options converts the flags into pipeline options over cat. Explicit
// flags win over the selection file, which wins over the defaults.
func (f *kitchenFlags) options(cmd *cobra.Command, cat *catalog.Catalog) (pipeline.Options, error) {
	sel, err := f.buildSelection(cmd, cat)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Modules:   parseModules(f.modules),
		Selection: &sel,
		Catalog:   cat,
	}, nil
}

func (f *kitchenFlags) buildSelection(cmd *cobra.Command, cat *catalog.Catalog) (kitchen.Selection, error) {
	sel := kitchen.DefaultSelection(cat)
	if f.selection != "" {
		md, err := toml.DecodeFile(f.selection, &sel)
		if err != nil {
			return sel, fmt.Errorf("read selection %s: %w", f.selection, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return sel, fmt.Errorf("read selection %s: unknown key %q", f.selection, undecoded[0].String())
		}
	}

	changed := cmd.Flags().Changed
	if changed("facade") {
		sel.FacadeID = f.facade
	}
	if changed("countertop") {
		sel.CountertopID = f.countertop
	}
	if changed("carcass") {
		sel.CarcassID = f.carcass
	}
	if changed("finish") {
		fin, err := catalog.ParseFinish(f.finish)
		if err != nil {
			return sel, err
		}
		sel.Finish = fin
	}
	if changed("length") {
		sel.TargetLength = f.length
	}
	if changed("no-upper") {
		sel.ShowUpper = !f.noUpper
	}
	if changed("no-hood") {
		sel.ShowHood = !f.noHood
	}
	return sel, nil
}

// parseModules splits a comma-separated id list. An empty string means
// the default lineup.
func parseModules(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
