// Package reorder turns user gestures into permutations of a run's module
// order.
//
// Two independent gesture paths share one outcome:
//
//   - [Controller] handles spatial drags. A pointer-down on a module starts
//     a drag, pointer moves slide only that module along the row (clamped
//     and snapped to [planner.GridStep]), and a pointer-up ranks the module
//     against the committed centers of the others to find its new slot.
//   - [ListDrag] handles list drag-and-drop: remember the source index on
//     drag-start, splice on drop.
//
// Neither path touches a plan. Both report a source and destination index
// which callers apply with [Move], then rebuild the plan from scratch.
//
// Fillers never take part in reordering; every index in this package is a
// base index as assigned by [planner.ComputePlacements].
package reorder
