package kitchen

import (
	"math"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/pricing"
)

// Target length limits, in meters.
const (
	MinLength     = 2.0
	MaxLength     = 5.0
	LengthStep    = 0.01
	DefaultLength = 3.0
)

// DefaultModules is the lineup a new configurator starts with.
var DefaultModules = []string{"base60", "sink80", "dish60", "hob60"}

// Selection is every user choice that is not the module order. It is a
// plain value: changing a field means building a new Selection.
type Selection struct {
	FacadeID     string `json:"facade_id" toml:"facade_id"`
	CountertopID string `json:"countertop_id" toml:"countertop_id"`
	CarcassID    string `json:"carcass_id" toml:"carcass_id"`

	// Finish overrides the facade's own finish when set.
	Finish catalog.Finish `json:"finish,omitempty" toml:"finish"`

	TargetLength float64 `json:"target_length" toml:"target_length"`
	ShowUpper    bool    `json:"show_upper" toml:"show_upper"`
	ShowHood     bool    `json:"show_hood" toml:"show_hood"`
}

// DefaultSelection picks the first option of each kind in c, the default
// length, and shows both the upper row and the hood.
func DefaultSelection(c *catalog.Catalog) Selection {
	s := Selection{
		TargetLength: DefaultLength,
		ShowUpper:    true,
		ShowHood:     true,
	}
	if len(c.Facades) > 0 {
		s.FacadeID = c.Facades[0].ID
	}
	if len(c.Countertops) > 0 {
		s.CountertopID = c.Countertops[0].ID
	}
	if len(c.Carcasses) > 0 {
		s.CarcassID = c.Carcasses[0].ID
	}
	return s
}

// ClampLength limits v to [MinLength, MaxLength] and rounds it to
// LengthStep.
func ClampLength(v float64) float64 {
	v = math.Max(MinLength, math.Min(MaxLength, v))
	return math.Floor(v/LengthStep+0.5) * LengthStep
}

// Normalize returns s with the target length clamped and the finish name
// canonicalized.
func (s Selection) Normalize() Selection {
	s.TargetLength = ClampLength(s.TargetLength)
	if f, err := catalog.ParseFinish(string(s.Finish)); err == nil && s.Finish != "" {
		s.Finish = f
	}
	return s
}

// Validate checks that every id names an option of c. Empty ids are
// allowed and mean "nothing selected".
func (s Selection) Validate(c *catalog.Catalog) error {
	if math.IsNaN(s.TargetLength) || math.IsInf(s.TargetLength, 0) {
		return errors.New(errors.ErrCodeInvalidLength, "target length must be finite")
	}
	if s.FacadeID != "" {
		if _, ok := c.Facade(s.FacadeID); !ok {
			return errors.New(errors.ErrCodeOptionNotFound, "unknown facade %q", s.FacadeID)
		}
	}
	if s.CountertopID != "" {
		if _, ok := c.Countertop(s.CountertopID); !ok {
			return errors.New(errors.ErrCodeOptionNotFound, "unknown countertop %q", s.CountertopID)
		}
	}
	if s.CarcassID != "" {
		if _, ok := c.Carcass(s.CarcassID); !ok {
			return errors.New(errors.ErrCodeOptionNotFound, "unknown carcass %q", s.CarcassID)
		}
	}
	if s.Finish != "" {
		if _, err := catalog.ParseFinish(string(s.Finish)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSelection, err, "finish")
		}
	}
	return nil
}

// FinishIn returns the effective facade finish: the explicit override, or
// the selected facade's finish, or matte.
func (s Selection) FinishIn(c *catalog.Catalog) catalog.Finish {
	if s.Finish != "" {
		if f, err := catalog.ParseFinish(string(s.Finish)); err == nil {
			return f
		}
	}
	if f, ok := c.Facade(s.FacadeID); ok && f.Finish != "" {
		return f.Finish
	}
	return catalog.FinishMatte
}

// PricingOptions resolves s against c into pricing inputs.
func (s Selection) PricingOptions(c *catalog.Catalog) pricing.Options {
	opts := pricing.Options{
		Finish: s.FinishIn(c),
		Upper:  s.ShowUpper,
		Hood:   s.ShowHood,
	}
	if t, ok := c.Countertop(s.CountertopID); ok {
		opts.Countertop = &t
	}
	return opts
}
