package planner

import "github.com/matzehuels/kitchenrun/pkg/catalog"

// NoBaseIndex is the BaseIndex of filler placements.
const NoBaseIndex = -1

// Placement is a module resolved to its left-edge offset within the row.
type Placement struct {
	Module catalog.Module `json:"module"`

	// X is the distance from the row origin to the module's left edge.
	X float64 `json:"x"`

	// BaseIndex is the module's ordinal among non-filler modules, or
	// NoBaseIndex for fillers.
	BaseIndex int `json:"base_index"`
}

// Center returns the module's center along the row.
func (p Placement) Center() float64 { return p.X + p.Module.Width/2 }

// Right returns the module's right edge.
func (p Placement) Right() float64 { return p.X + p.Module.Width }

// IsFiller reports whether the placement holds a filler.
func (p Placement) IsFiller() bool { return p.BaseIndex == NoBaseIndex }

// ComputePlacements assigns left-edge offsets to every module of lineup by
// a left-to-right running sum. The fold state never escapes: each call
// starts from the row origin.
func ComputePlacements(lineup []catalog.Module) []Placement {
	type acc struct {
		x    float64
		base int
	}
	out := make([]Placement, 0, len(lineup))
	st := acc{}
	for _, m := range lineup {
		p := Placement{Module: m, X: st.x, BaseIndex: NoBaseIndex}
		if !m.IsFiller() {
			p.BaseIndex = st.base
			st.base++
		}
		out = append(out, p)
		st.x += m.Width
	}
	return out
}

// SinkCenter returns the center of the first sink module. ok is false when
// the run has no sink, in which case the countertop has no cutout.
func SinkCenter(placements []Placement) (center float64, ok bool) {
	return roleCenter(placements, catalog.KindSink)
}

// HoodCenter returns the center of the first hob module, or total/2 when
// the run has no hob. The hood is always drawn somewhere.
func HoodCenter(placements []Placement, total float64) float64 {
	if c, ok := roleCenter(placements, catalog.KindHob); ok {
		return c
	}
	return total / 2
}

func roleCenter(placements []Placement, kind catalog.Kind) (float64, bool) {
	for _, p := range placements {
		if p.Module.Kind == kind {
			return p.Center(), true
		}
	}
	return 0, false
}

// BasePlacements returns the placements of non-filler modules, indexed by
// BaseIndex.
func BasePlacements(placements []Placement) []Placement {
	out := make([]Placement, 0, len(placements))
	for _, p := range placements {
		if !p.IsFiller() {
			out = append(out, p)
		}
	}
	return out
}
