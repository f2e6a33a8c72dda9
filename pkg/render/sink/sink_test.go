package sink

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/reorder"
)

func snapshot(t *testing.T, edit func(*kitchen.Configurator)) (kitchen.Snapshot, *catalog.Catalog) {
	t.Helper()
	k, err := kitchen.NewDefault(nil)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	if edit != nil {
		edit(k)
	}
	return k.Snapshot(), k.Catalog()
}

func TestRenderJSON(t *testing.T) {
	s, c := snapshot(t, nil)
	data, err := RenderJSON(s, WithJSONCatalog(c))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonScene
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.FillerCount != 5 || len(out.Modules) != 9 {
		t.Errorf("fillers = %d, modules = %d, want 5, 9", out.FillerCount, len(out.Modules))
	}
	for i, m := range out.Modules {
		isFiller := m.Kind == catalog.KindFiller.String()
		if isFiller != (m.BaseIndex == nil) {
			t.Errorf("module %d (%s): base_index = %v", i, m.Kind, m.BaseIndex)
		}
		if !isFiller && *m.BaseIndex != i {
			t.Errorf("module %d: base_index = %d", i, *m.BaseIndex)
		}
	}
	if out.SinkCenter == nil || math.Abs(*out.SinkCenter-1.0) > 1e-9 {
		t.Errorf("sink_center = %v, want 1.0", out.SinkCenter)
	}
	if out.Modules[1].Role != "sink" || out.Modules[3].Role != "hob" {
		t.Errorf("roles = %q, %q", out.Modules[1].Role, out.Modules[3].Role)
	}
	if len(out.Countertop) != 4 {
		t.Errorf("countertop slabs = %d, want 4", len(out.Countertop))
	}
	if out.Upper == nil || len(out.Upper.Cabinets) != 4 || out.Upper.Height != catalog.UpperHeight {
		t.Errorf("upper = %+v", out.Upper)
	}
	if out.Price.Subtotal != 1933 {
		t.Errorf("price subtotal = %v", out.Price.Subtotal)
	}
	if out.Options == nil || out.Options.Facade == nil || out.Options.Facade.ID != "graphite" {
		t.Errorf("options = %+v", out.Options)
	}
	if out.Drag != nil {
		t.Errorf("drag = %+v, want none", out.Drag)
	}
}

func TestRenderJSONNoSink(t *testing.T) {
	s, _ := snapshot(t, func(k *kitchen.Configurator) { k.Remove(1) })
	data, err := RenderJSON(s, WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}
	raw := string(data)
	for _, want := range []string{`"sink_center":null`, `"cutout":null`} {
		if !strings.Contains(raw, want) {
			t.Errorf("missing %s in %s", want, raw)
		}
	}
	if strings.Contains(raw, "\n") {
		t.Error("compact output should be a single line")
	}
}

func TestRenderJSONDrag(t *testing.T) {
	s, _ := snapshot(t, func(k *kitchen.Configurator) {
		k.Pointer(reorder.Event{Kind: reorder.PointerDown, Index: 0, X: 0.3, Projected: true})
		k.Pointer(reorder.Event{Kind: reorder.PointerMove, X: 1.8, Projected: true})
	})
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	var out jsonScene
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Drag == nil || out.Drag.Index != 0 || math.Abs(out.Drag.X-1.5) > 1e-9 {
		t.Errorf("drag = %+v, want index 0 at 1.5", out.Drag)
	}
	if out.Modules[0].X != 0 {
		t.Errorf("committed x = %v, want 0", out.Modules[0].X)
	}
}

func TestRenderSVG(t *testing.T) {
	s, c := snapshot(t, nil)
	svg := string(RenderSVG(s, WithCatalog(c), WithPrice()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document: %.60s", svg)
	}
	tests := []struct {
		needle string
		want   int
	}{
		{`class="module"`, 4},
		{`class="filler"`, 5},
		{`class="upper"`, 4},
		{`class="hood"`, 2},
		{`class="cutout"`, 1},
		{`fill="#3c4043"`, 8},
		{"Subtotal €1933", 1},
		{"3.00 m", 1},
	}
	for _, tt := range tests {
		if got := strings.Count(svg, tt.needle); got != tt.want {
			t.Errorf("count(%s) = %d, want %d", tt.needle, got, tt.want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	s, c := snapshot(t, func(k *kitchen.Configurator) {
		sel := k.Selection()
		sel.FacadeID = "oak"
		sel.ShowHood = false
		sel.ShowUpper = false
		k.SetSelection(sel)
	})
	svg := string(RenderSVG(s, WithCatalog(c), WithoutLabels(), WithoutDimension()))

	if strings.Contains(svg, `class="hood"`) || strings.Contains(svg, `class="upper"`) {
		t.Error("hidden hood/upper drawn")
	}
	if strings.Contains(svg, `class="label"`) || strings.Contains(svg, `class="dim"`) {
		t.Error("labels/dimension drawn")
	}
	if !strings.Contains(svg, defaultPalette.facade) {
		t.Error("texture facade should fall back to the default color")
	}
}

func TestRenderSVGDragOnTop(t *testing.T) {
	s, _ := snapshot(t, func(k *kitchen.Configurator) {
		k.Pointer(reorder.Event{Kind: reorder.PointerDown, Index: 0, X: 0.3, Projected: true})
		k.Pointer(reorder.Event{Kind: reorder.PointerMove, X: 1.8, Projected: true})
	})
	svg := string(RenderSVG(s))
	if strings.Count(svg, "dragging") != 2 { // CSS rule plus the element
		t.Errorf("dragging class count = %d", strings.Count(svg, "dragging"))
	}
	last := strings.LastIndex(svg, "<rect id=\"module-")
	if !strings.Contains(svg[last:], `data-base-index="0"`) {
		t.Error("dragged module should be drawn last")
	}
}

func TestIsColor(t *testing.T) {
	for v, want := range map[string]bool{"#fff": true, "#3c4043": true, "/textures/oak.jpg": false, "red": false, "": false} {
		if got := isColor(v); got != want {
			t.Errorf("isColor(%q) = %v", v, got)
		}
	}
}
