package reorder

import (
	"github.com/matzehuels/kitchenrun/pkg/planner"
)

// State is the phase of a spatial drag.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Snapshot is captured on pointer-down and stays fixed for the whole drag.
type Snapshot struct {
	// Index is the dragged module's base index.
	Index int `json:"index"`

	Width float64 `json:"width"`

	// Offset is the pointer's distance from the module center at grab time.
	Offset float64 `json:"offset"`

	// X is the module's committed left edge.
	X float64 `json:"x"`

	// Total is the run length the drag is clamped against.
	Total float64 `json:"total"`
}

// Result is a reorder outcome: move the module at base index From to To.
type Result struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Changed reports whether applying r alters the order.
func (r Result) Changed() bool { return r.From != r.To }

// Controller is the spatial drag state machine. The zero value is Idle.
//
// A Controller only ever reads placements; it never patches them. Callers
// commit a [Result] with [Move] and recompute placements afterwards.
type Controller struct {
	state State
	snap  Snapshot
	live  float64
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.state == Dragging }

// CameraEnabled reports whether orbit controls may run. They are disabled
// for the whole drag.
func (c *Controller) CameraEnabled() bool { return c.state == Idle }

// Snapshot returns the active drag's snapshot.
func (c *Controller) Snapshot() (Snapshot, bool) {
	return c.snap, c.state == Dragging
}

// LiveX returns the dragged module's displayed left edge.
func (c *Controller) LiveX() (float64, bool) {
	return c.live, c.state == Dragging
}

// Begin starts a drag of the module at base index i, grabbed at xLocal on
// the row axis. Begin is ignored while a drag is active or when i does not
// name a non-filler placement.
func (c *Controller) Begin(placements []planner.Placement, i int, xLocal float64) bool {
	if c.state == Dragging {
		return false
	}
	p, ok := basePlacement(placements, i)
	if !ok {
		return false
	}
	c.snap = Snapshot{
		Index:  i,
		Width:  p.Module.Width,
		Offset: xLocal - p.Center(),
		X:      p.X,
		Total:  runTotal(placements),
	}
	c.live = p.X
	c.state = Dragging
	return true
}

// Move slides the dragged module so the grab point follows xLocal. The
// left edge is clamped to [planner.DragBounds] and quantized to
// [planner.GridStep]. Move is ignored while Idle.
func (c *Controller) Move(xLocal float64) bool {
	if c.state != Dragging {
		return false
	}
	c.live = dragX(c.snap, xLocal)
	return true
}

// End finishes the drag and returns where the module lands.
//
// Centers of all non-filler modules are ranked using their committed x,
// the dragged module's own committed slot included. The dragged module's
// live center is counted against that ranking; when the count passes the
// original index the module's own slot is subtracted back out. The result
// is clamped to the valid base index range.
func (c *Controller) End(placements []planner.Placement) (Result, bool) {
	if c.state != Dragging {
		return Result{}, false
	}
	snap, live := c.snap, c.live
	c.reset()

	base := planner.BasePlacements(placements)
	n := len(base)
	if n == 0 || snap.Index >= n {
		return Result{}, false
	}
	center := live + snap.Width/2

	count := 0
	for _, p := range base {
		if p.Center() < center {
			count++
		}
	}
	to := count
	if count > snap.Index {
		to--
	}
	to = max(0, min(n-1, to))
	return Result{From: snap.Index, To: to}, true
}

// Abandon drops the drag; the module reverts to its committed position.
func (c *Controller) Abandon() bool {
	if c.state != Dragging {
		return false
	}
	c.reset()
	return true
}

// Display returns placements with the dragged module moved to its live x.
// Every other placement keeps its committed x. The input is not modified.
func (c *Controller) Display(placements []planner.Placement) []planner.Placement {
	out := make([]planner.Placement, len(placements))
	copy(out, placements)
	if c.state != Dragging {
		return out
	}
	for i := range out {
		if out[i].BaseIndex == c.snap.Index {
			out[i].X = c.live
			break
		}
	}
	return out
}

func (c *Controller) reset() {
	c.state = Idle
	c.snap = Snapshot{}
	c.live = 0
}

func dragX(s Snapshot, xLocal float64) float64 {
	lo, hi := planner.DragBounds(s.Width, s.Total)
	x := planner.Clamp(xLocal-s.Offset-s.Width/2, lo, hi)
	// Snapping can step past a bound that is not itself on the grid.
	return planner.Clamp(planner.Snap(x, planner.GridStep), lo, hi)
}

func basePlacement(placements []planner.Placement, i int) (planner.Placement, bool) {
	if i < 0 {
		return planner.Placement{}, false
	}
	for _, p := range placements {
		if p.BaseIndex == i {
			return p, true
		}
	}
	return planner.Placement{}, false
}

func runTotal(placements []planner.Placement) float64 {
	if len(placements) == 0 {
		return 0
	}
	return placements[len(placements)-1].Right()
}
