// Package pipeline provides the plan → price → render pipeline for kitchenrun.
//
// The CLI, the HTTP API and the interactive terminal all turn a module list
// and a selection into artifacts the same way. This package is that way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Plan: resolve module ids, fill the row and place every module
//  2. Price: compute the breakdown for the planned lineup
//  3. Render: produce SVG and JSON artifacts from the snapshot
//
// Plan and price are pure and cheap. Render output is cached, keyed by the
// snapshot's content hash and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Modules: []string{"base60", "sink80", "hob60"},
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// A session that already holds a snapshot renders it directly:
//
//	artifacts, err := runner.Render(ctx, snap, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kitchenrun/pkg/cache"
	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

// DefaultScale is the default SVG scale in pixels per meter.
const DefaultScale = sink.DefaultScale

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options
	Modules   []string           `json:"modules,omitempty"`
	Selection *kitchen.Selection `json:"selection,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	NoLabels    bool     `json:"no_labels,omitempty"`
	ShowPrice   bool     `json:"show_price,omitempty"`
	NoDimension bool     `json:"no_dimension,omitempty"`
	Compact     bool     `json:"compact,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Catalog *catalog.Catalog `json:"-"`
	Logger  *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the planned and priced kitchen.
	Snapshot kitchen.Snapshot

	// SnapshotHash is the content hash of the snapshot.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount int
	FillerCount int
	Total       float64
	PlanTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPlanDefaults fills in the catalog, module list and selection.
func (o *Options) SetPlanDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Modules == nil {
		o.Modules = slices.Clone(kitchen.DefaultModules)
	}
	if o.Selection == nil {
		sel := kitchen.DefaultSelection(o.Catalog)
		o.Selection = &sel
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPlan sets plan defaults and validates the selection against
// the catalog. Unknown module ids are reported by the plan stage itself.
func (o *Options) ValidateForPlan() error {
	o.SetPlanDefaults()
	return o.Selection.Validate(o.Catalog)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for artifact rendering. It
// fails when the catalog cannot be hashed, e.g. a NaN price.
func (o *Options) ArtifactKeyOpts(format string) (cache.ArtifactKeyOpts, error) {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Scale = o.Scale
		k.Labels = !o.NoLabels
		k.Price = o.ShowPrice
		k.Dimension = !o.NoDimension
	case FormatJSON:
		k.Compact = o.Compact
	}
	if o.Catalog != nil {
		h, err := cache.HashJSON(o.Catalog)
		if err != nil {
			return cache.ArtifactKeyOpts{}, fmt.Errorf("hash catalog: %w", err)
		}
		k.Catalog = h
	}
	return k, nil
}
