// Package render turns a configured kitchen into output artifacts.
//
// The presentation of a run lives in the [sink] subpackage:
//
//   - [sink.RenderJSON]: a scene document with the plan, placements, role
//     centers, upper row, countertop slabs and price breakdown
//   - [sink.RenderSVG]: a front elevation of the run
//
// Both take a [kitchen.Snapshot] and never recompute the layout; whatever
// the snapshot says is what gets drawn.
//
//	snap := k.Snapshot()
//	svg := sink.RenderSVG(snap, sink.WithCatalog(k.Catalog()))
//	doc, err := sink.RenderJSON(snap)
package render
