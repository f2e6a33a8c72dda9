package cli

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
)

var keyTypes = map[string]tea.KeyType{
	"enter": tea.KeyEnter,
	"esc":   tea.KeyEsc,
	"up":    tea.KeyUp,
	"down":  tea.KeyDown,
	"left":  tea.KeyLeft,
	"right": tea.KeyRight,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := keyTypes[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestModel(t *testing.T) ConfiguratorModel {
	t.Helper()
	k, err := kitchen.NewDefault(nil)
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	return NewConfiguratorModel(context.Background(), k, runner, filepath.Join(t.TempDir(), "kitchen.svg"))
}

func press(t *testing.T, m ConfiguratorModel, keys ...string) ConfiguratorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(ConfiguratorModel)
	}
	return m
}

func orderIDs(m ConfiguratorModel) []string {
	var ids []string
	for _, mod := range m.k.Order() {
		ids = append(ids, mod.ID)
	}
	return ids
}

func TestConfiguratorListDrag(t *testing.T) {
	m := press(t, newTestModel(t), " ", "down", "down")
	if from, ok := m.k.ListDragFrom(); !ok || from != 0 {
		t.Fatalf("ListDragFrom = %d, %v", from, ok)
	}
	if !strings.Contains(m.View(), "moving #0") {
		t.Error("view should show the list drag")
	}

	m = press(t, m, " ")
	want := []string{"sink80", "dish60", "base60", "hob60"}
	if got := orderIDs(m); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
}

func TestConfiguratorListDragCancel(t *testing.T) {
	m := press(t, newTestModel(t), " ", "down", "esc")
	if _, ok := m.k.ListDragFrom(); ok {
		t.Error("esc should cancel the list drag")
	}
	if got := orderIDs(m); !slices.Equal(got, kitchen.DefaultModules) {
		t.Errorf("order = %v, want unchanged", got)
	}
}

func TestConfiguratorSlide(t *testing.T) {
	m := press(t, newTestModel(t), "s")
	if !m.k.Dragging() {
		t.Fatal("s should start a slide")
	}
	for i := 0; i < 15; i++ {
		m = press(t, m, "right")
	}

	snap := m.k.Snapshot()
	if snap.Drag == nil || math.Abs(snap.Display[0].X-1.5) > 1e-9 {
		t.Fatalf("drag = %+v, display x = %v", snap.Drag, snap.Display[0].X)
	}
	if !strings.Contains(m.View(), "sliding #0") {
		t.Error("view should show the slide")
	}

	m = press(t, m, "enter")
	want := []string{"sink80", "dish60", "base60", "hob60"}
	if got := orderIDs(m); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if m.Cursor != 2 || m.k.Dragging() {
		t.Errorf("cursor = %d, dragging = %v", m.Cursor, m.k.Dragging())
	}
}

func TestConfiguratorSlideAbandon(t *testing.T) {
	m := press(t, newTestModel(t), "s", "right", "right", "right", "esc")
	if m.k.Dragging() {
		t.Error("esc should abandon the slide")
	}
	if got := orderIDs(m); !slices.Equal(got, kitchen.DefaultModules) {
		t.Errorf("order = %v, want unchanged", got)
	}
}

func TestConfiguratorEdits(t *testing.T) {
	m := press(t, newTestModel(t), "+")
	if got := m.k.Selection().TargetLength; math.Abs(got-3.1) > 1e-9 {
		t.Errorf("length = %v, want 3.1", got)
	}
	m = press(t, m, "-", "-")
	if got := m.k.Selection().TargetLength; math.Abs(got-2.9) > 1e-9 {
		t.Errorf("length = %v, want 2.9", got)
	}

	m = press(t, m, "]", "a")
	if got := orderIDs(m); len(got) != 5 || got[4] != "drawer40" {
		t.Fatalf("order = %v, want drawer40 appended", got)
	}
	if m.Cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.Cursor)
	}

	m = press(t, m, "x")
	if got := orderIDs(m); !slices.Equal(got, kitchen.DefaultModules) {
		t.Errorf("order = %v", got)
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3 after removing the last module", m.Cursor)
	}
}

func TestConfiguratorSelection(t *testing.T) {
	m := press(t, newTestModel(t), "u", "o", "f", "c", "b", "g")
	sel := m.k.Selection()
	want := kitchen.Selection{
		FacadeID:     "snow",
		CountertopID: "oak",
		CarcassID:    "carc_light",
		Finish:       catalog.FinishGloss,
		TargetLength: kitchen.DefaultLength,
	}
	if sel != want {
		t.Errorf("selection = %+v, want %+v", sel, want)
	}
	if s := m.k.Snapshot(); s.Upper != nil || s.Hood != nil {
		t.Error("upper and hood should be hidden")
	}
}

func TestConfiguratorView(t *testing.T) {
	v := newTestModel(t).View()
	for _, want := range []string{"Kitchen Run", "€1933", "Sink 80 cm", "add: "} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestConfiguratorSave(t *testing.T) {
	m := newTestModel(t)
	msg := m.save()()
	saved, ok := msg.(savedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("save() = %#v", msg)
	}
	data, err := os.ReadFile(saved.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("saved file is not SVG: %.40s", data)
	}

	next, _ := m.Update(saved)
	if !strings.Contains(next.(ConfiguratorModel).status, saved.path) {
		t.Error("status should name the written file")
	}
}

func TestMovedTo(t *testing.T) {
	mods := func(ids ...string) []catalog.Module {
		out := make([]catalog.Module, len(ids))
		for i, id := range ids {
			out[i] = catalog.Module{ID: id}
		}
		return out
	}
	before := mods("a", "b", "c", "d")
	tests := []struct {
		after []catalog.Module
		from  int
		want  int
	}{
		{mods("b", "c", "a", "d"), 0, 2},
		{mods("a", "d", "b", "c"), 3, 1},
		{mods("a", "b", "c", "d"), 2, 2},
	}
	for _, tt := range tests {
		if got := movedTo(before, tt.after, tt.from); got != tt.want {
			t.Errorf("movedTo(%v, %d) = %d, want %d", tt.after, tt.from, got, tt.want)
		}
	}
}
