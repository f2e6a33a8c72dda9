package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for kitchenrun.

Besides commands and flags, the script completes catalog ids: module ids for
--modules (one entry at a time in the comma-separated list), and option ids
for --facade, --countertop and --carcass. Ids come from the catalog named by
--catalog, the config file, or the built-in catalog.

Load for the current shell:

  bash        source <(kitchenrun completion bash)
  zsh         source <(kitchenrun completion zsh)
  fish        kitchenrun completion fish | source
  powershell  kitchenrun completion powershell | Out-String | Invoke-Expression

To keep completions, write the script where your shell looks for them, e.g.
  kitchenrun completion zsh > "${fpath[1]}/_kitchenrun"
  kitchenrun completion fish > ~/.config/fish/completions/kitchenrun.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeKitchenFlags registers catalog-driven completions for the flags
// added by kitchenFlags.register.
func (c *CLI) completeKitchenFlags(cmd *cobra.Command) {
	withCatalog := func(dir cobra.ShellCompDirective, fn func(cat *catalog.Catalog, toComplete string) []string) cobra.CompletionFunc {
		return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
			cat, err := c.activeCatalog()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return fn(cat, toComplete), cobra.ShellCompDirectiveNoFileComp | dir
		}
	}

	// Module lists grow one comma at a time.
	cmd.RegisterFlagCompletionFunc("modules", withCatalog(cobra.ShellCompDirectiveNoSpace, moduleCompletions))
	cmd.RegisterFlagCompletionFunc("facade", withCatalog(cobra.ShellCompDirectiveDefault, func(cat *catalog.Catalog, _ string) []string {
		return optionCompletions(cat.Facades, func(f catalog.Facade) (string, string) {
			return f.ID, f.Label + " (" + string(f.Finish) + ")"
		})
	}))
	cmd.RegisterFlagCompletionFunc("countertop", withCatalog(cobra.ShellCompDirectiveDefault, func(cat *catalog.Catalog, _ string) []string {
		return optionCompletions(cat.Countertops, func(t catalog.Countertop) (string, string) { return t.ID, t.Name })
	}))
	cmd.RegisterFlagCompletionFunc("carcass", withCatalog(cobra.ShellCompDirectiveDefault, func(cat *catalog.Catalog, _ string) []string {
		return optionCompletions(cat.Carcasses, func(k catalog.Carcass) (string, string) { return k.ID, k.Label })
	}))
	cmd.RegisterFlagCompletionFunc("finish", cobra.FixedCompletions(
		[]cobra.Completion{string(catalog.FinishMatte), string(catalog.FinishGloss)},
		cobra.ShellCompDirectiveNoFileComp,
	))
	cmd.RegisterFlagCompletionFunc("selection", tomlFiles)
}

// completeFormats completes a comma-separated --format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	prefix, used := splitList(toComplete)
	var out []cobra.Completion
	formats := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	for _, f := range formats {
		if !slices.Contains(used, f) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// moduleCompletions completes the last entry of a comma-separated module
// list. Earlier entries are kept as the prefix of every candidate.
func moduleCompletions(cat *catalog.Catalog, toComplete string) []string {
	prefix, _ := splitList(toComplete)
	mods := cat.Placeable()
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, prefix+m.ID+"\t"+m.Name)
	}
	return out
}

// optionCompletions lists "id\tdescription" pairs.
func optionCompletions[T any](items []T, describe func(T) (id, desc string)) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		id, desc := describe(it)
		out = append(out, id+"\t"+desc)
	}
	return out
}

// splitList splits a partial comma-separated list into the finished part,
// comma included, and its trimmed entries.
func splitList(s string) (prefix string, entries []string) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return "", nil
	}
	prefix = s[:i+1]
	for _, e := range strings.Split(s[:i], ",") {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	return prefix, entries
}

// tomlFiles completes TOML file paths for flags.
func tomlFiles(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// catalogFileArgs completes TOML files for commands taking a catalog path.
func catalogFileArgs(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return tomlFiles(nil, nil, "")
}
