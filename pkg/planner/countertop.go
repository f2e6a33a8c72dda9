package planner

import (
	"math"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
)

// minSlab is the smallest slab dimension worth emitting.
const minSlab = 1e-4

// Cutout is the sink opening in the countertop, centered at CenterX along
// the run and centered front to back.
type Cutout struct {
	CenterX float64 `json:"center_x"`
	Width   float64 `json:"width"`
	Depth   float64 `json:"depth"`
}

// SinkCutout returns the cutout for the first sink in placements, or nil
// when there is no sink.
func SinkCutout(placements []Placement) *Cutout {
	cx, ok := SinkCenter(placements)
	if !ok {
		return nil
	}
	return &Cutout{CenterX: cx, Width: catalog.CutoutWidth, Depth: catalog.CutoutDepth}
}

// Slab is one rectangular countertop piece. X is the center along the run,
// Z the center front to back (0 is the middle of the top, negative is the
// wall side).
type Slab struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Length float64 `json:"length"`
	Depth  float64 `json:"depth"`
}

// CountertopSegments splits a countertop of the given length and depth into
// the slabs surrounding cut. Without a cutout the top is one slab. With a
// cutout it is up to four: left and right of the opening at full depth,
// and the front and back strips spanning the opening. Slabs narrower than
// 0.1 mm are dropped.
func CountertopSegments(length, depth float64, cut *Cutout) []Slab {
	if cut == nil {
		return []Slab{{Name: "top", X: length / 2, Z: 0, Length: length, Depth: depth}}
	}

	front := (depth - cut.Depth) / 2
	back := depth - cut.Depth - front
	leftLen := math.Max(0, cut.CenterX-cut.Width/2)
	rightLen := math.Max(0, length-(cut.CenterX+cut.Width/2))
	frontDepth := math.Max(0, front)
	backDepth := math.Max(0, back)

	var out []Slab
	if leftLen > minSlab {
		out = append(out, Slab{Name: "left", X: leftLen / 2, Z: 0, Length: leftLen, Depth: depth})
	}
	if rightLen > minSlab {
		out = append(out, Slab{Name: "right", X: length - rightLen/2, Z: 0, Length: rightLen, Depth: depth})
	}
	if frontDepth > minSlab {
		out = append(out, Slab{Name: "front", X: cut.CenterX, Z: -depth/2 + frontDepth/2, Length: cut.Width, Depth: frontDepth})
	}
	if backDepth > minSlab {
		out = append(out, Slab{Name: "back", X: cut.CenterX, Z: depth/2 - backDepth/2, Length: cut.Width, Depth: backDepth})
	}
	return out
}
