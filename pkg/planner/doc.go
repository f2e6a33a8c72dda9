// Package planner turns an ordered list of cabinet modules into a
// positioned kitchen run.
//
// # Plans
//
// [ComputePlan] takes the user's modules in left-to-right order and a target
// run length in meters. Fillers already present in the input are stripped;
// the remaining fixed width is compared against the target and the gap,
// if any, is closed with synthesized filler pieces of at most
// [MaxFillerWidth] each. Fillers always trail the real modules:
//
//	fixed = 1.2, target = 1.95  =>  delta = 0.75
//	lineup = [m0 m1 ... | F8 F8 F8 F8 F8 F8 F8 F8 F8 F3]
//
// A target shorter than the fixed width is not an error: no fillers are
// added and the run is simply longer than requested.
//
// # Placements
//
// [ComputePlacements] folds over a lineup and assigns each module its
// left-edge offset from the row origin. Real modules also receive their
// ordinal among real modules ([Placement.BaseIndex]), which is how drag
// gestures targeting a module map back to the user's order. Placements are
// always recomputed from scratch; a reorder invalidates every downstream
// offset.
//
// # Derived geometry
//
// From the placements the planner derives the sink cutout center
// ([SinkCenter]), the range hood center ([HoodCenter], which falls back to
// the middle of the run), the wall cabinet row ([UpperRow]) and the
// countertop slabs around the cutout ([CountertopSegments]). [Build]
// computes all of it in one call and returns a [Run].
//
// Everything in this package is a pure function of its inputs and safe for
// concurrent use.
package planner
