package catalog

import (
	"fmt"
	"strings"
)

// Finish is the surface treatment of the facades. Gloss facades carry a
// price premium.
type Finish string

const (
	FinishMatte Finish = "matte"
	FinishGloss Finish = "gloss"
)

// ParseFinish normalizes a finish name. The empty string maps to
// FinishMatte.
func ParseFinish(s string) (Finish, error) {
	switch Finish(strings.ToLower(strings.TrimSpace(s))) {
	case "", FinishMatte:
		return FinishMatte, nil
	case FinishGloss:
		return FinishGloss, nil
	}
	return FinishMatte, fmt.Errorf("unknown finish %q (must be matte or gloss)", s)
}

// IsGloss reports whether f is the glossy variant.
func (f Finish) IsGloss() bool { return f == FinishGloss }

// Facade is a selectable front panel look. Value is either a hex color or
// a texture path; the presentation layer decides which.
type Facade struct {
	ID     string `json:"id" toml:"id"`
	Label  string `json:"label" toml:"label"`
	Value  string `json:"value" toml:"value"`
	Finish Finish `json:"finish" toml:"finish"`
}

// Countertop is a worktop material. PriceMultiplier scales the whole
// estimate; nil means "not configured" and prices as 1.0. An explicit
// zero is kept.
type Countertop struct {
	ID              string   `json:"id" toml:"id"`
	Name            string   `json:"name" toml:"name"`
	Hex             string   `json:"hex" toml:"hex"`
	PriceMultiplier *float64 `json:"price_multiplier,omitempty" toml:"price_multiplier,omitempty"`
}

// Multiplier returns the configured price multiplier, or 1.0 when none is
// set.
func (c Countertop) Multiplier() float64 {
	if c.PriceMultiplier == nil {
		return 1.0
	}
	return *c.PriceMultiplier
}

// Factor returns a pointer to v for use as [Countertop.PriceMultiplier].
func Factor(v float64) *float64 { return &v }

// Carcass is a cabinet body color.
type Carcass struct {
	ID    string `json:"id" toml:"id"`
	Label string `json:"label" toml:"label"`
	Value string `json:"value" toml:"value"`
}

// Geometry constants shared by the planner and the renderers, in meters.
const (
	// UpperHeight and UpperDepth size the wall cabinets; UpperCenterY is
	// the height of their center above the floor.
	UpperHeight  = 0.72
	UpperDepth   = 0.35
	UpperCenterY = 1.86

	// TopThickness is the countertop slab thickness.
	TopThickness = 0.04

	// TopDepth is the countertop depth front to back.
	TopDepth = 0.63

	// CutoutWidth and CutoutDepth size the sink opening in the countertop.
	CutoutWidth = 0.54
	CutoutDepth = 0.44

	// HoodWidth is the range hood canopy width. The canopy sits HoodY above
	// the floor under a chimney HoodChimneyWidth wide and HoodChimneyHeight
	// tall.
	HoodWidth         = 0.6
	HoodY             = 1.49
	HoodChimneyWidth  = 0.24
	HoodChimneyHeight = 0.8
)
