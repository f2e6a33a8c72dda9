package planner

import "math"

// GridStep is the quantization step for dragged module positions.
const GridStep = 0.1

// Snap rounds x to the nearest multiple of step, halves rounding up.
func Snap(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Floor(x/step+0.5) * step
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// DragBounds returns the range a dragged module's left edge may occupy in
// a run of the given total: half the module may overhang either end.
func DragBounds(width, total float64) (lo, hi float64) {
	return -width / 2, math.Max(0, total-width/2)
}
