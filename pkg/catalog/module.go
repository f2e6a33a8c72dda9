package catalog

import (
	"fmt"
	"math"

	"github.com/matzehuels/kitchenrun/pkg/errors"
)

// Module is a lower cabinet template. Dimensions are in meters, Price in
// euros. Modules are plain values: copying one yields an independent
// instance.
type Module struct {
	ID     string  `json:"id" toml:"id"`
	Name   string  `json:"name" toml:"name"`
	Kind   Kind    `json:"kind" toml:"kind"`
	Width  float64 `json:"width" toml:"width"`
	Depth  float64 `json:"depth" toml:"depth"`
	Height float64 `json:"height" toml:"height"`
	Price  float64 `json:"price" toml:"price"`
}

// IsFiller reports whether m is a filler piece.
func (m Module) IsFiller() bool { return m.Kind == KindFiller }

// Role returns the module's semantic role ("sink", "hob" or "").
func (m Module) Role() string { return m.Kind.Role() }

// Validate checks the module invariants: a usable id and positive
// dimensions.
func (m Module) Validate() error {
	if err := errors.ValidateID(m.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidModule, err, "module id")
	}
	if err := errors.ValidateDimension("module "+m.ID+" width", m.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("module "+m.ID+" depth", m.Depth); err != nil {
		return err
	}
	if err := errors.ValidateDimension("module "+m.ID+" height", m.Height); err != nil {
		return err
	}
	if m.Price < 0 || math.IsNaN(m.Price) {
		return errors.New(errors.ErrCodeInvalidModule, "module %s has negative price", m.ID)
	}
	return nil
}

// AsFiller returns a copy of m resized to width and renamed after its
// width in whole centimeters, e.g. "Filler 8cm".
func (m Module) AsFiller(width float64) Module {
	m.Kind = KindFiller
	m.Width = width
	m.Name = FillerName(width)
	return m
}

// FillerName is the display name of a filler of the given width in meters.
func FillerName(width float64) string {
	return fmt.Sprintf("Filler %dcm", int(math.Floor(width*100+0.5)))
}

// TotalWidth sums the widths of modules.
func TotalWidth(modules []Module) float64 {
	var sum float64
	for _, m := range modules {
		sum += m.Width
	}
	return sum
}

// FixedWidth sums the widths of the non-filler modules.
func FixedWidth(modules []Module) float64 {
	var sum float64
	for _, m := range modules {
		if !m.IsFiller() {
			sum += m.Width
		}
	}
	return sum
}

// WithoutFillers returns the non-filler modules of modules in their
// original order. The input is not modified.
func WithoutFillers(modules []Module) []Module {
	out := make([]Module, 0, len(modules))
	for _, m := range modules {
		if !m.IsFiller() {
			out = append(out, m)
		}
	}
	return out
}
