package planner

import "github.com/matzehuels/kitchenrun/pkg/catalog"

// UpperCabinet is a wall cabinet mirrored from a lower module.
type UpperCabinet struct {
	Source catalog.Module `json:"source"`
	X      float64        `json:"x"`
	Width  float64        `json:"width"`
}

// Upper is the wall cabinet row. Start and Width bound the row precisely so
// a single continuous facade skin can be mapped across it.
type Upper struct {
	Cabinets []UpperCabinet `json:"cabinets"`
	Start    float64        `json:"start"`
	Width    float64        `json:"width"`
}

// Empty reports whether the row has no cabinets.
func (u Upper) Empty() bool { return len(u.Cabinets) == 0 }

// UV returns the horizontal texture coordinate range [u0, u1] that cabinet i
// occupies on the row skin.
func (u Upper) UV(i int) (u0, u1 float64) {
	if u.Width <= 0 || i < 0 || i >= len(u.Cabinets) {
		return 0, 0
	}
	c := u.Cabinets[i]
	return (c.X - u.Start) / u.Width, (c.X + c.Width - u.Start) / u.Width
}

// UpperRow projects the non-filler lower placements into the wall cabinet
// row: one cabinet per real module, same x, same width. Filler gaps below
// produce nothing above.
func UpperRow(placements []Placement) Upper {
	var u Upper
	for _, p := range placements {
		if p.IsFiller() {
			continue
		}
		u.Cabinets = append(u.Cabinets, UpperCabinet{Source: p.Module, X: p.X, Width: p.Module.Width})
	}
	if len(u.Cabinets) == 0 {
		return u
	}
	first, last := u.Cabinets[0], u.Cabinets[len(u.Cabinets)-1]
	u.Start = first.X
	u.Width = last.X + last.Width - first.X
	return u
}
