package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

// defaultOutput is the base path used when --output is not given.
const defaultOutput = "kitchen"

// renderOpts holds the render-only flags.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated formats
	scale       float64 // SVG pixels per meter
	noLabels    bool    // omit module names
	showPrice   bool    // print the subtotal on the drawing
	noDimension bool    // omit the total length line
	compact     bool    // unindented JSON
	refresh     bool    // bypass cached artifacts
	noCache     bool    // disable the cache entirely
}

// renderCommand creates the render command for writing SVG and JSON files.
func (c *CLI) renderCommand() *cobra.Command {
	var kf kitchenFlags
	ro := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a run to SVG and JSON scene files",
		Long: `Render plans and prices a run, then writes a front elevation as SVG and
the scene data as JSON. Outputs are cached by snapshot content.`,
		Example: `  kitchenrun render -o kitchen.svg
  kitchenrun render -f svg,json --price -o out/kitchen
  kitchenrun render -m base60,sink80,hob60 -l 2.3 --no-hood`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(ro.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd, &kf, &ro, formats)
		},
	}

	kf.register(cmd)
	c.completeKitchenFlags(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple), default \"kitchen\"")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().Float64Var(&ro.scale, "scale", ro.scale, "SVG pixels per meter")
	cmd.Flags().BoolVar(&ro.noLabels, "no-labels", false, "omit module names")
	cmd.Flags().BoolVar(&ro.showPrice, "price", false, "print the subtotal on the drawing")
	cmd.Flags().BoolVar(&ro.noDimension, "no-dimension", false, "omit the total length line")
	cmd.Flags().BoolVar(&ro.compact, "compact", false, "write unindented JSON")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, kf *kitchenFlags, ro *renderOpts, formats []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

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
	opts.Formats = formats
	opts.Scale = ro.scale
	opts.NoLabels = ro.noLabels
	opts.ShowPrice = ro.showPrice
	opts.NoDimension = ro.noDimension
	opts.Compact = ro.compact
	opts.Refresh = ro.refresh
	opts.Logger = logger

	runner, err := c.newRunner(ctx, cfg, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, ro.output, formats)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Rendered kitchen run")
	for _, p := range paths {
		printFile(p)
	}
	printRunStats(result.Stats, result.CacheInfo.RenderHit)
	if result.Snapshot.Overflow {
		printWarning("Modules exceed the target length")
	}
	return nil
}

// writeArtifacts writes each format to disk. A single format goes to
// output as given; several formats share output as a base path.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, output string, formats []string) ([]string, error) {
	logger := loggerFromContext(ctx)

	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		if err := writeFile(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output)
	var paths []string
	sorted := slices.Clone(formats)
	slices.Sort(sorted)
	for _, f := range slices.Compact(sorted) {
		path := base + "." + f
		if err := writeFile(path, artifacts[f]); err != nil {
			return nil, err
		}
		logger.Debug("wrote artifact", "format", f, "path", path, "bytes", len(artifacts[f]))
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
