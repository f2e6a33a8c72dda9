package pipeline

import (
	"fmt"

	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/render/sink"
)

// RenderSnapshot generates output artifacts in the requested formats.
// Options are used as given; callers validate them first.
func RenderSnapshot(s kitchen.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(s, buildJSONOptions(opts)...)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithScale(opts.Scale)}
	if opts.Catalog != nil {
		svgOpts = append(svgOpts, sink.WithCatalog(opts.Catalog))
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	if opts.ShowPrice {
		svgOpts = append(svgOpts, sink.WithPrice())
	}
	if opts.NoDimension {
		svgOpts = append(svgOpts, sink.WithoutDimension())
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Catalog != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONCatalog(opts.Catalog))
	}
	if opts.Compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	return jsonOpts
}
