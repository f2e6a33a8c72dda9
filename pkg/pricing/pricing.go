// Package pricing estimates the price of a kitchen run.
//
// [Price] is a pure function of the lineup and a handful of options. Every
// intermediate value is kept in the [Breakdown] so callers can show how the
// subtotal came about.
package pricing

import (
	"fmt"
	"math"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
)

const (
	// GlossFactor scales the estimate when the facades are glossy.
	GlossFactor = 1.12

	// UpperRate is the price of the upper row relative to the base row.
	UpperRate = 0.45

	// HoodPrice is the flat price of the range hood.
	HoodPrice = 280
)

// Options are the selections that influence the price.
type Options struct {
	Finish catalog.Finish

	// Countertop is nil when none is selected; it then prices as 1.0.
	Countertop *catalog.Countertop

	Upper bool
	Hood  bool
}

// Breakdown holds the pricing inputs and every intermediate value.
type Breakdown struct {
	Base         float64 `json:"base"`
	FinishFactor float64 `json:"finish_factor"`
	TopFactor    float64 `json:"top_factor"`
	UpperCost    float64 `json:"upper_cost"`
	HoodCost     float64 `json:"hood_cost"`
	Subtotal     float64 `json:"subtotal"`
}

// Price computes the breakdown for lineup. Fillers count with whatever
// price the catalog gave them.
func Price(lineup []catalog.Module, opts Options) Breakdown {
	var base float64
	for _, m := range lineup {
		base += m.Price
	}

	finish := 1.0
	if opts.Finish.IsGloss() {
		finish = GlossFactor
	}
	top := 1.0
	if opts.Countertop != nil {
		top = opts.Countertop.Multiplier()
	}

	var upper, hood float64
	if opts.Upper {
		upper = Round(base * UpperRate)
	}
	if opts.Hood {
		hood = HoodPrice
	}

	return Breakdown{
		Base:         base,
		FinishFactor: finish,
		TopFactor:    top,
		UpperCost:    upper,
		HoodCost:     hood,
		Subtotal:     Round((base + upper + hood) * finish * top),
	}
}

// Round rounds x to the nearest integer, halves toward +Inf.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Line is one row of a printed breakdown.
type Line struct {
	Label string
	Value string
}

// Lines formats b for display, one line per component.
func (b Breakdown) Lines() []Line {
	return []Line{
		{"Base modules", money(b.Base)},
		{"Finish factor", fmt.Sprintf("×%.2f", b.FinishFactor)},
		{"Countertop factor", fmt.Sprintf("×%.2f", b.TopFactor)},
		{"Upper cabinets", money(b.UpperCost)},
		{"Hood", money(b.HoodCost)},
		{"Subtotal", money(b.Subtotal)},
	}
}

func money(v float64) string {
	return fmt.Sprintf("€%.0f", v)
}
