// Package sink provides output format renderers for configured kitchens.
//
// # Overview
//
// A "sink" transforms a [kitchen.Snapshot] into a final output format:
//
//   - SVG: a front elevation of the run
//   - JSON: the scene data for external presentation layers
//
// Sinks draw what the snapshot holds. They never recompute a plan, so a
// snapshot taken mid-drag renders the dragged module at its live position.
//
// # SVG Output
//
// [RenderSVG] draws base modules, fillers, the countertop band with the sink
// cutout marked, and, when the selection shows them, the upper row and the
// range hood:
//
//	svg := sink.RenderSVG(snap,
//	    sink.WithCatalog(c),
//	    sink.WithPrice(),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the plan, every placement, the role centers, the
// countertop slabs and the price breakdown. Fillers have a null base_index
// and a run without a sink has a null sink_center.
package sink
