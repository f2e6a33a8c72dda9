package catalog

import (
	"fmt"
	"strings"
)

// Kind classifies a module. Sink and hob modules drive the countertop
// cutout and the range hood position; fillers are synthesized by the
// planner to close the gap to the target run length.
type Kind int

const (
	KindStandard Kind = iota
	KindSink
	KindHob
	KindFiller
)

var kindNames = [...]string{
	KindStandard: "standard",
	KindSink:     "sink",
	KindHob:      "hob",
	KindFiller:   "filler",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Role returns the semantic role tag of the kind: "sink", "hob", or ""
// for kinds without a role.
func (k Kind) Role() string {
	switch k {
	case KindSink, KindHob:
		return k.String()
	}
	return ""
}

// ParseKind converts a kind name to a Kind. The empty string maps to
// KindStandard so catalog entries may omit the field.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return KindStandard, nil
	case "sink":
		return KindSink, nil
	case "hob":
		return KindHob, nil
	case "filler":
		return KindFiller, nil
	}
	return KindStandard, fmt.Errorf("unknown module kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is used by both the
// TOML catalog loader and JSON request decoding.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
