// Package pkg provides the core libraries for kitchenrun.
//
// # Overview
//
// Kitchenrun lays out a straight run of kitchen base modules against a
// target wall length, fills the remaining gap with narrow fillers, positions
// the sink cutout, upper cabinets and range hood, prices the result and lets
// a user reorder modules by list drag or by sliding them along the run.
//
// # Architecture
//
//	Module ids + Selection
//	         ↓
//	    [catalog] (resolve ids to module templates)
//	         ↓
//	    [planner] (fillers, placements, countertop, upper row)
//	         ↓
//	    [pricing] (breakdown and subtotal)
//	         ↓
//	    [render/sink] (SVG elevation, JSON scene)
//
// [kitchen] owns the mutable state of one configuration and derives a
// snapshot of all of the above on demand. [reorder] holds the two
// reordering gestures it drives.
//
// # Main Packages
//
// [catalog] - Module templates and selection options, built in or loaded
// from TOML.
//
// [planner] - Pure layout: the filler plan, placements, role centers,
// countertop slabs around the sink cutout and the upper cabinet row.
//
// [pricing] - The price breakdown for a lineup and selection.
//
// [reorder] - The list drag and the spatial drag controller, including
// grid snapping and rank computation.
//
// [kitchen] - The configurator: order, selection and gesture state.
//
// [pipeline] - Plan → price → render with cached artifacts, shared by the
// CLI, the HTTP API and the terminal UI.
//
// [cache] - File, Redis and null artifact caches.
//
// [session] - In-memory configurator sessions for the HTTP API.
//
// [config] - TOML and environment configuration.
//
// [observability] - Hooks for metrics and tracing.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/planner/...  # Specific package
//	go test -run Example       # Examples only
package pkg
