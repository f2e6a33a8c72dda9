package reorder

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kitchenrun/pkg/planner"
)

// EventKind identifies a pointer event delivered by the presentation layer.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
	LostCapture
	PointerMissed
	AbandonDrag
)

var eventNames = [...]string{
	PointerDown:   "down",
	PointerMove:   "move",
	PointerUp:     "up",
	PointerCancel: "cancel",
	LostCapture:   "lost-capture",
	PointerMissed: "missed",
	AbandonDrag:   "abandon",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// ParseEventKind maps a name produced by String back to its kind.
func ParseEventKind(s string) (EventKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range eventNames {
		if name == s {
			return EventKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown pointer event %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(b []byte) error {
	v, err := ParseEventKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Event is one pointer event projected onto the row's longitudinal axis.
type Event struct {
	Kind EventKind `json:"kind"`

	// Index is the base index under the pointer. Only PointerDown uses it.
	Index int `json:"index"`

	// X is the pointer position along the row axis.
	X float64 `json:"x"`

	// Projected is false when the pointer ray missed the reference plane;
	// X is meaningless then.
	Projected bool `json:"projected"`
}

// Apply feeds ev to the controller. It returns a Result when the event
// ended a drag that should be committed.
//
// Up, cancel, lost-capture and missed events all end the drag. An ending
// event without a valid projection abandons the gesture instead, as does
// AbandonDrag. Moves without a projection are dropped and the module stays
// at its last live position.
func (c *Controller) Apply(placements []planner.Placement, ev Event) (Result, bool) {
	switch ev.Kind {
	case PointerDown:
		if ev.Projected {
			c.Begin(placements, ev.Index, ev.X)
		}
	case PointerMove:
		if ev.Projected {
			c.Move(ev.X)
		}
	case PointerUp, PointerCancel, LostCapture, PointerMissed:
		if !c.Dragging() {
			return Result{}, false
		}
		if !ev.Projected {
			c.Abandon()
			return Result{}, false
		}
		c.Move(ev.X)
		return c.End(placements)
	case AbandonDrag:
		c.Abandon()
	}
	return Result{}, false
}
