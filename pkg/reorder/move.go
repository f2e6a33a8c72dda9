package reorder

import "slices"

// Move returns a copy of order with the element at from re-inserted at to.
// The input is never modified. Out-of-range indices yield an unchanged copy.
func Move[T any](order []T, from, to int) []T {
	out := slices.Clone(order)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}
