package sink

import (
	"encoding/json"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/planner"
	"github.com/matzehuels/kitchenrun/pkg/pricing"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	catalog *catalog.Catalog
	compact bool
}

// WithJSONCatalog resolves the selection ids against c so the document
// carries option labels and colors.
func WithJSONCatalog(c *catalog.Catalog) JSONOption {
	return func(r *jsonRenderer) { r.catalog = c }
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonScene struct {
	TargetLength float64 `json:"target_length"`
	Total        float64 `json:"total"`
	Delta        float64 `json:"delta"`
	FillerCount  int     `json:"filler_count"`
	Overflow     bool    `json:"overflow,omitempty"`

	Modules    []jsonModule `json:"modules"`
	SinkCenter *float64     `json:"sink_center"`
	HoodCenter float64      `json:"hood_center"`

	Cutout     *planner.Cutout `json:"cutout"`
	Countertop []planner.Slab  `json:"countertop"`
	Upper      *jsonUpper      `json:"upper,omitempty"`
	Hood       *kitchen.Hood   `json:"hood,omitempty"`
	Drag       *jsonDrag       `json:"drag,omitempty"`

	Selection kitchen.Selection `json:"selection"`
	Options   *jsonOptions      `json:"options,omitempty"`
	Price     pricing.Breakdown `json:"price"`
}

type jsonModule struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Role      string  `json:"role,omitempty"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Height    float64 `json:"height"`
	Price     float64 `json:"price"`
	BaseIndex *int    `json:"base_index"`
}

type jsonUpper struct {
	Start    float64       `json:"start"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Depth    float64       `json:"depth"`
	Cabinets []jsonCabinet `json:"cabinets"`
}

type jsonCabinet struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	U0    float64 `json:"u0"`
	U1    float64 `json:"u1"`
}

type jsonDrag struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
}

type jsonOptions struct {
	Facade     *catalog.Facade     `json:"facade,omitempty"`
	Countertop *catalog.Countertop `json:"countertop,omitempty"`
	Carcass    *catalog.Carcass    `json:"carcass,omitempty"`
	Finish     catalog.Finish      `json:"finish"`
}

// RenderJSON exports a snapshot as a pretty-printed scene document.
//
// Placements are listed in lineup order with their committed x. Fillers
// carry a null base_index. A run without a sink has a null sink_center and
// cutout. During a drag the live position is reported under "drag".
func RenderJSON(s kitchen.Snapshot, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	plan := s.Run.Plan
	out := jsonScene{
		TargetLength: s.Selection.TargetLength,
		Total:        plan.Total,
		Delta:        plan.Delta,
		FillerCount:  plan.FillerCount(),
		Overflow:     s.Overflow,
		Modules:      buildJSONModules(s.Run.Placements),
		HoodCenter:   s.Run.HoodCenter,
		Cutout:       s.Run.Cutout,
		Countertop:   s.Run.Countertop,
		Hood:         s.Hood,
		Selection:    s.Selection,
		Price:        s.Price,
	}
	if c, ok := s.Run.SinkCenter(); ok {
		out.SinkCenter = &c
	}
	if s.Upper != nil {
		out.Upper = buildJSONUpper(*s.Upper)
	}
	if s.Drag != nil {
		out.Drag = &jsonDrag{Index: s.Drag.Index, X: liveX(s)}
	}
	if r.catalog != nil {
		out.Options = buildJSONOptions(r.catalog, s.Selection)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONModules(placements []planner.Placement) []jsonModule {
	mods := make([]jsonModule, 0, len(placements))
	for _, p := range placements {
		m := jsonModule{
			ID:     p.Module.ID,
			Name:   p.Module.Name,
			Kind:   p.Module.Kind.String(),
			Role:   p.Module.Role(),
			X:      p.X,
			Width:  p.Module.Width,
			Depth:  p.Module.Depth,
			Height: p.Module.Height,
			Price:  p.Module.Price,
		}
		if !p.IsFiller() {
			i := p.BaseIndex
			m.BaseIndex = &i
		}
		mods = append(mods, m)
	}
	return mods
}

func buildJSONUpper(u planner.Upper) *jsonUpper {
	out := &jsonUpper{
		Start:    u.Start,
		Width:    u.Width,
		Height:   catalog.UpperHeight,
		Depth:    catalog.UpperDepth,
		Cabinets: make([]jsonCabinet, len(u.Cabinets)),
	}
	for i, c := range u.Cabinets {
		u0, u1 := u.UV(i)
		out.Cabinets[i] = jsonCabinet{X: c.X, Width: c.Width, U0: u0, U1: u1}
	}
	return out
}

func buildJSONOptions(c *catalog.Catalog, sel kitchen.Selection) *jsonOptions {
	o := &jsonOptions{Finish: sel.FinishIn(c)}
	if f, ok := c.Facade(sel.FacadeID); ok {
		o.Facade = &f
	}
	if t, ok := c.Countertop(sel.CountertopID); ok {
		o.Countertop = &t
	}
	if k, ok := c.Carcass(sel.CarcassID); ok {
		o.Carcass = &k
	}
	return o
}

func liveX(s kitchen.Snapshot) float64 {
	for _, p := range s.Display {
		if p.BaseIndex == s.Drag.Index {
			return p.X
		}
	}
	return s.Drag.X
}
