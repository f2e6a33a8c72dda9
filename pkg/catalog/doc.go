// Package catalog holds the static data a kitchen run is assembled from.
//
// # Modules
//
// A [Module] is a lower cabinet archetype: base cabinet, drawer unit, sink
// unit, dishwasher, hob unit or filler. Every module carries its physical
// dimensions in meters, a price in euros, and a [Kind]. The kind is a closed
// set ([KindStandard], [KindSink], [KindHob], [KindFiller]) so consumers
// switch on it instead of probing optional role strings.
//
// Catalog modules are templates. Lineups copy them by value; filler pieces
// are synthesized copies of the catalog's filler template with a computed
// width and display name.
//
// # Options
//
// Besides modules the catalog lists the finish options the configurator
// offers: facades (each with a matte or gloss [Finish]), countertops (each
// with a price multiplier) and carcass colors.
//
// # Overrides
//
// [Default] returns the built-in catalog. [Load] reads a TOML file whose
// tables replace the built-in ones:
//
//	[[modules]]
//	id = "base60"
//	name = "Base 60 cm"
//	kind = "standard"
//	width = 0.6
//	depth = 0.6
//	height = 0.9
//	price = 220
//
//	[[countertops]]
//	id = "slate"
//	name = "Dark Slate"
//	hex = "#222629"
//	price_multiplier = 1.1
//
// Loaded catalogs are validated: every module needs positive dimensions,
// ids must be unique, and exactly one filler template must exist.
package catalog
