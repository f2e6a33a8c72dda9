package catalog

import (
	"slices"

	"github.com/matzehuels/kitchenrun/pkg/errors"
)

// FillerID is the id of the filler template in the built-in catalog.
const FillerID = "filler"

// Catalog is the full set of modules and finish options offered to the
// user.
type Catalog struct {
	Modules     []Module     `json:"modules" toml:"modules"`
	Facades     []Facade     `json:"facades" toml:"facades"`
	Countertops []Countertop `json:"countertops" toml:"countertops"`
	Carcasses   []Carcass    `json:"carcasses" toml:"carcasses"`
}

// Default returns the built-in catalog. Each call returns a fresh copy that
// the caller may modify.
func Default() *Catalog {
	return &Catalog{
		Modules: []Module{
			{ID: "base60", Name: "Base 60 cm", Kind: KindStandard, Width: 0.6, Depth: 0.6, Height: 0.9, Price: 220},
			{ID: "drawer40", Name: "Drawer 40 cm", Kind: KindStandard, Width: 0.4, Depth: 0.6, Height: 0.9, Price: 260},
			{ID: "sink80", Name: "Sink 80 cm", Kind: KindSink, Width: 0.8, Depth: 0.6, Height: 0.9, Price: 300},
			{ID: "dish60", Name: "Dishwasher 60", Kind: KindStandard, Width: 0.6, Depth: 0.6, Height: 0.9, Price: 180},
			{ID: "hob60", Name: "Hob 60 cm", Kind: KindHob, Width: 0.6, Depth: 0.6, Height: 0.9, Price: 240},
			{ID: FillerID, Name: "Filler (auto)", Kind: KindFiller, Width: 0.05, Depth: 0.6, Height: 0.9, Price: 40},
		},
		Facades: []Facade{
			{ID: "graphite", Label: "Graphite", Value: "#3c4043", Finish: FinishMatte},
			{ID: "snow", Label: "Snow", Value: "#f5f5f5", Finish: FinishMatte},
			{ID: "navy", Label: "Navy", Value: "#22324b", Finish: FinishMatte},
			{ID: "forest", Label: "Forest", Value: "#2f4f4f", Finish: FinishMatte},
			{ID: "wine", Label: "Wine", Value: "#6b2336", Finish: FinishMatte},
			{ID: "oak", Label: "Oak veneer", Value: "/textures/oak.jpg", Finish: FinishMatte},
			{ID: "concrete", Label: "Concrete matte", Value: "/textures/concrete.jpg", Finish: FinishMatte},
			{ID: "wood_gloss", Label: "Wood texture · gloss", Value: "/textures/wood.jpg", Finish: FinishGloss},
		},
		Countertops: []Countertop{
			{ID: "white", Name: "White Quartz", Hex: "#efefef", PriceMultiplier: Factor(1.0)},
			{ID: "oak", Name: "Oak", Hex: "#caa472", PriceMultiplier: Factor(0.9)},
			{ID: "slate", Name: "Dark Slate", Hex: "#222629", PriceMultiplier: Factor(1.1)},
		},
		Carcasses: []Carcass{
			{ID: "carc_white", Label: "White", Value: "#e9ecef"},
			{ID: "carc_light", Label: "Light grey", Value: "#dcdfe3"},
			{ID: "carc_graphite", Label: "Graphite", Value: "#3c4043"},
			{ID: "carc_antr", Label: "Anthracite", Value: "#2b2f33"},
			{ID: "carc_black", Label: "Black", Value: "#1b1b1b"},
		},
	}
}

// Module returns the module template with the given id.
func (c *Catalog) Module(id string) (Module, bool) {
	i := slices.IndexFunc(c.Modules, func(m Module) bool { return m.ID == id })
	if i < 0 {
		return Module{}, false
	}
	return c.Modules[i], true
}

// Filler returns the filler template: the first module of KindFiller.
func (c *Catalog) Filler() (Module, bool) {
	i := slices.IndexFunc(c.Modules, func(m Module) bool { return m.IsFiller() })
	if i < 0 {
		return Module{}, false
	}
	return c.Modules[i], true
}

// Placeable returns the modules a user may add to a run, i.e. every module
// except filler templates.
func (c *Catalog) Placeable() []Module {
	return WithoutFillers(c.Modules)
}

// Facade returns the facade option with the given id.
func (c *Catalog) Facade(id string) (Facade, bool) {
	i := slices.IndexFunc(c.Facades, func(f Facade) bool { return f.ID == id })
	if i < 0 {
		return Facade{}, false
	}
	return c.Facades[i], true
}

// Countertop returns the countertop option with the given id.
func (c *Catalog) Countertop(id string) (Countertop, bool) {
	i := slices.IndexFunc(c.Countertops, func(t Countertop) bool { return t.ID == id })
	if i < 0 {
		return Countertop{}, false
	}
	return c.Countertops[i], true
}

// Carcass returns the carcass option with the given id.
func (c *Catalog) Carcass(id string) (Carcass, bool) {
	i := slices.IndexFunc(c.Carcasses, func(k Carcass) bool { return k.ID == id })
	if i < 0 {
		return Carcass{}, false
	}
	return c.Carcasses[i], true
}

// Resolve maps module ids to catalog templates, preserving order. Filler
// ids are rejected: fillers are synthesized by the planner, never placed.
func (c *Catalog) Resolve(ids []string) ([]Module, error) {
	out := make([]Module, 0, len(ids))
	for _, id := range ids {
		m, ok := c.Module(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeModuleNotFound, "unknown module %q", id)
		}
		if m.IsFiller() {
			return nil, errors.New(errors.ErrCodeInvalidModule, "module %q is a filler and cannot be placed", id)
		}
		out = append(out, m)
	}
	return out, nil
}

// Validate checks catalog-wide invariants.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Modules))
	fillers := 0
	for _, m := range c.Modules {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.ID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate module id %q", m.ID)
		}
		seen[m.ID] = true
		if m.IsFiller() {
			fillers++
		}
	}
	if fillers != 1 {
		return errors.New(errors.ErrCodeInvalidCatalog, "catalog needs exactly one filler template, found %d", fillers)
	}

	if err := uniqueIDs("facade", c.Facades, func(f Facade) string { return f.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("countertop", c.Countertops, func(t Countertop) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("carcass", c.Carcasses, func(k Carcass) string { return k.ID }); err != nil {
		return err
	}
	for _, t := range c.Countertops {
		if t.PriceMultiplier != nil && *t.PriceMultiplier < 0 {
			return errors.New(errors.ErrCodeInvalidCatalog, "countertop %q has negative price multiplier", t.ID)
		}
	}
	return nil
}

func uniqueIDs[T any](what string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := id(it)
		if err := errors.ValidateID(k); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "%s id", what)
		}
		if seen[k] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate %s id %q", what, k)
		}
		seen[k] = true
	}
	return nil
}
