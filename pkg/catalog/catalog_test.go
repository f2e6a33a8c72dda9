package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/kitchenrun/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a.Modules[0].Width = 99
	b := Default()
	if b.Modules[0].Width == 99 {
		t.Error("Default() should return an independent copy")
	}
}

func TestKindRoles(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		role string
	}{
		{KindStandard, "standard", ""},
		{KindSink, "sink", "sink"},
		{KindHob, "hob", "hob"},
		{KindFiller, "filler", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.Role(); got != tt.role {
				t.Errorf("Role() = %q, want %q", got, tt.role)
			}
			parsed, err := ParseKind(tt.name)
			if err != nil || parsed != tt.kind {
				t.Errorf("ParseKind(%q) = %v, %v", tt.name, parsed, err)
			}
		})
	}

	if _, err := ParseKind("oven"); err == nil {
		t.Error("ParseKind(oven) should fail")
	}
	if k, err := ParseKind(""); err != nil || k != KindStandard {
		t.Errorf("ParseKind(\"\") = %v, %v; want standard", k, err)
	}
}

func TestFillerName(t *testing.T) {
	tests := []struct {
		width float64
		want  string
	}{
		{0.08, "Filler 8cm"},
		{0.03, "Filler 3cm"},
		{0.004, "Filler 0cm"},
	}

	for _, tt := range tests {
		if got := FillerName(tt.width); got != tt.want {
			t.Errorf("FillerName(%v) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestAsFillerKeepsTemplateFields(t *testing.T) {
	tpl, ok := Default().Filler()
	if !ok {
		t.Fatal("default catalog has no filler")
	}
	f := tpl.AsFiller(0.03)
	if !f.IsFiller() || f.Width != 0.03 || f.Name != "Filler 3cm" {
		t.Errorf("AsFiller = %+v", f)
	}
	if f.Price != tpl.Price || f.Depth != tpl.Depth || f.Height != tpl.Height {
		t.Errorf("AsFiller should keep price and dimensions: %+v", f)
	}
	if tpl.Width != 0.05 {
		t.Error("AsFiller must not modify the template")
	}
}

func TestWidths(t *testing.T) {
	c := Default()
	base, _ := c.Module("base60")
	sink, _ := c.Module("sink80")
	filler, _ := c.Filler()

	mods := []Module{base, filler.AsFiller(0.08), sink}
	if got := FixedWidth(mods); !approx(got, 1.4) {
		t.Errorf("FixedWidth = %v, want 1.4", got)
	}
	if got := TotalWidth(mods); !approx(got, 1.48) {
		t.Errorf("TotalWidth = %v, want 1.48", got)
	}
	if got := WithoutFillers(mods); len(got) != 2 || got[0].ID != "base60" || got[1].ID != "sink80" {
		t.Errorf("WithoutFillers = %v", got)
	}
}

func TestResolve(t *testing.T) {
	c := Default()

	mods, err := c.Resolve([]string{"sink80", "base60", "hob60"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(mods) != 3 || mods[0].Kind != KindSink || mods[2].Kind != KindHob {
		t.Errorf("Resolve = %v", mods)
	}

	if _, err := c.Resolve([]string{"oven90"}); !errors.Is(err, errors.ErrCodeModuleNotFound) {
		t.Errorf("unknown id error = %v", err)
	}
	if _, err := c.Resolve([]string{FillerID}); !errors.Is(err, errors.ErrCodeInvalidModule) {
		t.Errorf("filler id error = %v", err)
	}
}

func TestLookups(t *testing.T) {
	c := Default()
	if top, ok := c.Countertop("slate"); !ok || top.Multiplier() != 1.1 {
		t.Errorf("Countertop(slate) = %+v, %v", top, ok)
	}
	if _, ok := c.Countertop("marble"); ok {
		t.Error("Countertop(marble) should be missing")
	}
	if f, ok := c.Facade("wood_gloss"); !ok || !f.Finish.IsGloss() {
		t.Errorf("Facade(wood_gloss) = %+v, %v", f, ok)
	}
	if _, ok := c.Carcass("carc_black"); !ok {
		t.Error("Carcass(carc_black) should exist")
	}
	for _, m := range c.Placeable() {
		if m.IsFiller() {
			t.Errorf("Placeable returned filler %s", m.ID)
		}
	}
}

func TestCountertopMultiplierDefault(t *testing.T) {
	if got := (Countertop{}).Multiplier(); got != 1.0 {
		t.Errorf("unset multiplier = %v, want 1.0", got)
	}
	if got := (Countertop{PriceMultiplier: Factor(0)}).Multiplier(); got != 0 {
		t.Errorf("explicit zero multiplier = %v, want 0", got)
	}
}

func TestDecodeCountertopMultiplier(t *testing.T) {
	src := `
[[countertops]]
id = "free"
name = "Free sample"
hex = "#ffffff"
price_multiplier = 0.0

[[countertops]]
id = "plain"
name = "Plain"
hex = "#dddddd"
`
	c, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if top, ok := c.Countertop("free"); !ok || top.PriceMultiplier == nil || top.Multiplier() != 0 {
		t.Errorf("Countertop(free) = %+v, %v, want an explicit zero multiplier", top, ok)
	}
	if top, ok := c.Countertop("plain"); !ok || top.PriceMultiplier != nil || top.Multiplier() != 1.0 {
		t.Errorf("Countertop(plain) = %+v, %v, want an unset multiplier", top, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
		code   errors.Code
	}{
		{"zero width", func(c *Catalog) { c.Modules[0].Width = 0 }, errors.ErrCodeInvalidModule},
		{"duplicate module", func(c *Catalog) { c.Modules[1].ID = c.Modules[0].ID }, errors.ErrCodeInvalidCatalog},
		{"no filler", func(c *Catalog) { c.Modules = c.Modules[:5] }, errors.ErrCodeInvalidCatalog},
		{"two fillers", func(c *Catalog) { c.Modules[0].Kind = KindFiller }, errors.ErrCodeInvalidCatalog},
		{"duplicate countertop", func(c *Catalog) { c.Countertops[1].ID = "white" }, errors.ErrCodeInvalidCatalog},
		{"negative multiplier", func(c *Catalog) { c.Countertops[0].PriceMultiplier = Factor(-1) }, errors.ErrCodeInvalidCatalog},
		{"bad facade id", func(c *Catalog) { c.Facades[0].ID = "a b" }, errors.ErrCodeInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDecodeOverlay(t *testing.T) {
	src := `
[[modules]]
id = "base45"
name = "Base 45 cm"
width = 0.45
depth = 0.6
height = 0.9
price = 190

[[modules]]
id = "sink60"
name = "Sink 60 cm"
kind = "sink"
width = 0.6
depth = 0.6
height = 0.9
price = 280

[[modules]]
id = "filler"
name = "Filler"
kind = "filler"
width = 0.05
depth = 0.6
height = 0.9
price = 35
`
	c, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(c.Modules) != 3 {
		t.Fatalf("modules = %d, want 3", len(c.Modules))
	}
	if m, _ := c.Module("sink60"); m.Kind != KindSink {
		t.Errorf("sink60 kind = %v", m.Kind)
	}
	if m, _ := c.Module("base45"); m.Kind != KindStandard {
		t.Errorf("base45 kind = %v, want standard", m.Kind)
	}
	if len(c.Countertops) != len(Default().Countertops) {
		t.Error("countertops should keep defaults when absent from file")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `[[modules]`},
		{"unknown key", "colour = \"red\"\n"},
		{"bad kind", "[[modules]]\nid = \"x\"\nkind = \"oven\"\nwidth = 1.0\ndepth = 1.0\nheight = 1.0\n"},
		{"bad finish", "[[facades]]\nid = \"x\"\nfinish = \"satin\"\n"},
		{"no filler", "[[modules]]\nid = \"x\"\nwidth = 1.0\ndepth = 1.0\nheight = 1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.src)); !errors.Is(err, errors.ErrCodeInvalidCatalog) && !errors.Is(err, errors.ErrCodeInvalidModule) {
				t.Errorf("Decode() error = %v, want catalog validation error", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Modules) != len(Default().Modules) {
		t.Errorf("modules = %d, want %d", len(c.Modules), len(Default().Modules))
	}
	if m, _ := c.Module("hob60"); m.Kind != KindHob {
		t.Errorf("hob60 kind after round trip = %v", m.Kind)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) = %v, want NOT_FOUND", err)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestLoadExampleCatalog(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "catalog.toml"))
	if err != nil {
		t.Fatalf("Load(example) = %v", err)
	}
	if _, err := c.Resolve([]string{"base45", "sink90", "hob60"}); err != nil {
		t.Errorf("Resolve = %v", err)
	}
	if len(c.Facades) != len(Default().Facades) {
		t.Error("facades absent from the file should keep their defaults")
	}
}
