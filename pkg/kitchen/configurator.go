// Package kitchen holds the state of one kitchen being configured.
//
// A [Configurator] owns the ordered list of non-filler modules, the user's
// [Selection] and the transient gesture state of both reorder paths.
// Everything else is derived: [Configurator.Snapshot] rebuilds the plan,
// placements and price from scratch on every call.
//
// A Configurator is not safe for concurrent use. Events are expected one
// at a time, as a UI event loop or a locked session delivers them.
package kitchen

import (
	"math"
	"slices"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/planner"
	"github.com/matzehuels/kitchenrun/pkg/pricing"
	"github.com/matzehuels/kitchenrun/pkg/reorder"
)

// Configurator is the top-level configurator state.
type Configurator struct {
	catalog *catalog.Catalog
	order   []catalog.Module
	sel     Selection
	opts    []planner.Option

	drag reorder.Controller
	list reorder.ListDrag
}

// New creates a configurator over c starting with the modules named by
// ids. A nil catalog means [catalog.Default].
func New(c *catalog.Catalog, ids []string, sel Selection) (*Configurator, error) {
	if c == nil {
		c = catalog.Default()
	}
	order, err := c.Resolve(ids)
	if err != nil {
		return nil, err
	}
	if err := sel.Validate(c); err != nil {
		return nil, err
	}
	k := &Configurator{
		catalog: c,
		order:   order,
		sel:     sel.Normalize(),
	}
	if tpl, ok := c.Filler(); ok {
		k.opts = append(k.opts, planner.WithFillerTemplate(tpl))
	}
	return k, nil
}

// NewDefault creates a configurator with [DefaultModules] and
// [DefaultSelection] over c.
func NewDefault(c *catalog.Catalog) (*Configurator, error) {
	if c == nil {
		c = catalog.Default()
	}
	ids := slices.DeleteFunc(slices.Clone(DefaultModules), func(id string) bool {
		_, ok := c.Module(id)
		return !ok
	})
	return New(c, ids, DefaultSelection(c))
}

// Catalog returns the catalog the configurator draws modules from.
func (k *Configurator) Catalog() *catalog.Catalog { return k.catalog }

// Order returns a copy of the non-filler module order.
func (k *Configurator) Order() []catalog.Module { return slices.Clone(k.order) }

// Selection returns the current selection.
func (k *Configurator) Selection() Selection { return k.sel }

// SetSelection replaces the selection. The target length is clamped. A
// spatial drag in progress is abandoned since its bounds came from the old
// run.
func (k *Configurator) SetSelection(s Selection) error {
	if err := s.Validate(k.catalog); err != nil {
		return err
	}
	k.drag.Abandon()
	k.sel = s.Normalize()
	return nil
}

// SetTargetLength changes only the target length, clamped to the allowed
// range.
func (k *Configurator) SetTargetLength(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidLength, "target length must be finite")
	}
	k.drag.Abandon()
	k.sel.TargetLength = ClampLength(v)
	return nil
}

// Add appends the catalog module id to the end of the order.
func (k *Configurator) Add(id string) error {
	mods, err := k.catalog.Resolve([]string{id})
	if err != nil {
		return err
	}
	k.interrupt()
	k.order = append(k.order, mods...)
	return nil
}

// Remove deletes the module at base index i.
func (k *Configurator) Remove(i int) error {
	if err := errors.ValidateIndex(i, len(k.order)); err != nil {
		return err
	}
	k.interrupt()
	k.order = slices.Delete(slices.Clone(k.order), i, i+1)
	return nil
}

// Reorder moves the module at base index from to base index to in one
// step. from == to is a no-op.
func (k *Configurator) Reorder(from, to int) error {
	if err := errors.ValidateIndex(from, len(k.order)); err != nil {
		return err
	}
	if err := errors.ValidateIndex(to, len(k.order)); err != nil {
		return err
	}
	k.interrupt()
	k.order = reorder.Move(k.order, from, to)
	return nil
}

// StartListDrag begins a list drag of the item at from.
func (k *Configurator) StartListDrag(from int) error {
	if err := errors.ValidateIndex(from, len(k.order)); err != nil {
		return err
	}
	k.list.Start(from)
	return nil
}

// DropListDrag ends a list drag over item to. It reports whether the
// order changed. A committed drop abandons any spatial drag.
func (k *Configurator) DropListDrag(to int) (bool, error) {
	if !k.list.Active() {
		return false, nil
	}
	if err := errors.ValidateIndex(to, len(k.order)); err != nil {
		k.list.Cancel()
		return false, err
	}
	r, ok := k.list.Drop(to)
	if !ok {
		return false, nil
	}
	k.drag.Abandon()
	k.order = reorder.Move(k.order, r.From, r.To)
	return true, nil
}

// Pointer feeds a pointer event to the spatial drag controller against the
// committed placements. It reports whether the event committed a new
// order. A committed change cancels any list drag.
func (k *Configurator) Pointer(ev reorder.Event) bool {
	placements := k.Run().Placements
	r, ok := k.drag.Apply(placements, ev)
	if !ok || !r.Changed() {
		return false
	}
	k.list.Cancel()
	k.order = reorder.Move(k.order, r.From, r.To)
	return true
}

// Dragging reports whether a spatial drag is in progress.
func (k *Configurator) Dragging() bool { return k.drag.Dragging() }

// CameraEnabled reports whether orbit controls may run.
func (k *Configurator) CameraEnabled() bool { return k.drag.CameraEnabled() }

// ListDragFrom returns the source index of an active list drag.
func (k *Configurator) ListDragFrom() (int, bool) { return k.list.From() }

// Run computes the committed layout.
func (k *Configurator) Run() planner.Run {
	return planner.Build(k.order, k.sel.TargetLength, k.opts...)
}

// Price computes the price of the committed layout.
func (k *Configurator) Price() pricing.Breakdown {
	return pricing.Price(k.Run().Plan.Lineup, k.sel.PricingOptions(k.catalog))
}

// interrupt drops any in-flight gesture. Structural edits supersede it.
func (k *Configurator) interrupt() {
	k.drag.Abandon()
	k.list.Cancel()
}

// Hood is the range hood canopy position along the row.
type Hood struct {
	Center float64 `json:"center"`
	Width  float64 `json:"width"`
}

// Snapshot is everything a presentation layer needs for one frame.
type Snapshot struct {
	Selection Selection   `json:"selection"`
	Run       planner.Run `json:"run"`

	// Display equals Run.Placements except for a module being dragged,
	// which sits at its live position.
	Display []planner.Placement `json:"display"`

	Price pricing.Breakdown `json:"price"`

	// Hood is nil when the hood is hidden.
	Hood *Hood `json:"hood,omitempty"`

	// Upper is nil when the upper row is hidden.
	Upper *planner.Upper `json:"upper,omitempty"`

	// Drag is set while a spatial drag is in progress.
	Drag *reorder.Snapshot `json:"drag,omitempty"`

	// Overflow reports that the chosen modules alone are longer than the
	// target length. No fillers were added.
	Overflow bool `json:"overflow,omitempty"`
}

// Snapshot recomputes every derived value from the current state.
func (k *Configurator) Snapshot() Snapshot {
	run := k.Run()
	s := Snapshot{
		Selection: k.sel,
		Run:       run,
		Display:   k.drag.Display(run.Placements),
		Price:     pricing.Price(run.Plan.Lineup, k.sel.PricingOptions(k.catalog)),
		Overflow:  run.Plan.Total > k.sel.TargetLength+1e-9,
	}
	if k.sel.ShowHood {
		s.Hood = &Hood{Center: run.HoodCenter, Width: catalog.HoodWidth}
	}
	if k.sel.ShowUpper {
		u := run.Upper
		s.Upper = &u
	}
	if snap, ok := k.drag.Snapshot(); ok {
		s.Drag = &snap
	}
	return s
}
