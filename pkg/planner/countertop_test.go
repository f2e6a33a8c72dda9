package planner

import (
	"math"
	"testing"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
)

func TestCountertopSegmentsNoCutout(t *testing.T) {
	got := CountertopSegments(2.4, 0.63, nil)
	if len(got) != 1 {
		t.Fatalf("slabs = %d, want 1", len(got))
	}
	if s := got[0]; s.X != 1.2 || s.Length != 2.4 || s.Depth != 0.63 || s.Z != 0 {
		t.Errorf("slab = %+v", s)
	}
}

func TestCountertopSegmentsAroundCutout(t *testing.T) {
	cut := &Cutout{CenterX: 1.0, Width: 0.54, Depth: 0.44}
	slabs := CountertopSegments(2.4, 0.63, cut)

	byName := map[string]Slab{}
	for _, s := range slabs {
		byName[s.Name] = s
	}
	if len(byName) != 4 {
		t.Fatalf("slabs = %v, want left/right/front/back", slabs)
	}

	left := byName["left"]
	if math.Abs(left.Length-0.73) > tol || math.Abs(left.X-0.365) > tol {
		t.Errorf("left = %+v", left)
	}
	right := byName["right"]
	if math.Abs(right.Length-1.13) > tol || math.Abs(right.X-(2.4-0.565)) > tol {
		t.Errorf("right = %+v", right)
	}
	front, back := byName["front"], byName["back"]
	if math.Abs(front.Depth-0.095) > tol || math.Abs(back.Depth-0.095) > tol {
		t.Errorf("front/back depth = %v/%v, want 0.095", front.Depth, back.Depth)
	}
	if front.Z >= 0 || back.Z <= 0 {
		t.Errorf("front.Z = %v, back.Z = %v", front.Z, back.Z)
	}
	if front.Length != cut.Width || front.X != cut.CenterX {
		t.Errorf("front = %+v", front)
	}

	var area float64
	for _, s := range slabs {
		area += s.Length * s.Depth
	}
	want := 2.4*0.63 - cut.Width*cut.Depth
	if math.Abs(area-want) > 1e-9 {
		t.Errorf("slab area = %v, want %v", area, want)
	}
}

func TestCountertopSegmentsCutoutAtEdge(t *testing.T) {
	cut := &Cutout{CenterX: 0.27, Width: 0.54, Depth: 0.44}
	for _, s := range CountertopSegments(1.2, 0.63, cut) {
		if s.Name == "left" {
			t.Errorf("cutout flush with left end should drop the left slab: %+v", s)
		}
	}
}

func TestCountertopSegmentsFromBuild(t *testing.T) {
	mods := []catalog.Module{std("a", 0.6), mod("s", 0.8, catalog.KindSink)}
	r := Build(mods, 2.0)
	if r.Cutout == nil {
		t.Fatal("expected cutout")
	}
	if len(r.Countertop) != 4 {
		t.Errorf("countertop slabs = %d, want 4", len(r.Countertop))
	}
	if c, ok := r.SinkCenter(); !ok || math.Abs(c-1.0) > tol {
		t.Errorf("SinkCenter = %v, %v", c, ok)
	}
}

func TestSnapClamp(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0.04, 0},
		{0.05, 0.1},
		{0.26, 0.3},
		{-0.25, -0.2},
		{1.749, 1.7},
	}
	for _, tt := range tests {
		if got := Snap(tt.x, GridStep); math.Abs(got-tt.want) > tol {
			t.Errorf("Snap(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if got := Snap(0.123, 0); got != 0.123 {
		t.Errorf("Snap with zero step = %v", got)
	}

	if got := Clamp(-1, -0.3, 1.7); got != -0.3 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(5, -0.3, 1.7); got != 1.7 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(0.5, -0.3, 1.7); got != 0.5 {
		t.Errorf("Clamp mid = %v", got)
	}
}

func TestDragBounds(t *testing.T) {
	lo, hi := DragBounds(0.6, 2.0)
	if lo != -0.3 || math.Abs(hi-1.7) > tol {
		t.Errorf("DragBounds(0.6, 2.0) = %v, %v", lo, hi)
	}
	lo, hi = DragBounds(0.8, 0.2)
	if lo != -0.4 || hi != 0 {
		t.Errorf("DragBounds in a short run = %v, %v, want -0.4, 0", lo, hi)
	}
}
