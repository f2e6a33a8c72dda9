package reorder

// ListDrag tracks a list drag-and-drop gesture. The zero value is idle.
type ListDrag struct {
	from   int
	active bool
}

// Start remembers from as the dragged item.
func (d *ListDrag) Start(from int) {
	d.from, d.active = from, true
}

// Active reports whether a drag is in progress.
func (d *ListDrag) Active() bool { return d.active }

// From returns the remembered source index, if any.
func (d *ListDrag) From() (int, bool) { return d.from, d.active }

// Cancel forgets the drag without reordering.
func (d *ListDrag) Cancel() { d.active = false }

// Drop ends the drag over item to. It returns the move to apply, or
// ok=false when no drag was in progress or to equals the source index.
// The remembered index is cleared either way.
func (d *ListDrag) Drop(to int) (r Result, ok bool) {
	if !d.active {
		return Result{}, false
	}
	from := d.from
	d.active = false
	if to == from {
		return Result{}, false
	}
	return Result{From: from, To: to}, true
}
