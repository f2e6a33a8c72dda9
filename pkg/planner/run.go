package planner

import "github.com/matzehuels/kitchenrun/pkg/catalog"

// Run is everything the presentation layer needs to draw one kitchen run.
type Run struct {
	Plan       Plan        `json:"plan"`
	Placements []Placement `json:"placements"`

	// Cutout is nil when the run has no sink.
	Cutout *Cutout `json:"cutout,omitempty"`

	HoodCenter float64 `json:"hood_center"`
	Upper      Upper   `json:"upper"`
	Countertop []Slab  `json:"countertop"`
}

// SinkCenter returns the cutout center, if any.
func (r Run) SinkCenter() (float64, bool) {
	if r.Cutout == nil {
		return 0, false
	}
	return r.Cutout.CenterX, true
}

// Build computes the plan, placements and every derived position for
// modules laid out against targetLength.
func Build(modules []catalog.Module, targetLength float64, opts ...Option) Run {
	plan := ComputePlan(modules, targetLength, opts...)
	placements := ComputePlacements(plan.Lineup)
	cut := SinkCutout(placements)
	return Run{
		Plan:       plan,
		Placements: placements,
		Cutout:     cut,
		HoodCenter: HoodCenter(placements, plan.Total),
		Upper:      UpperRow(placements),
		Countertop: CountertopSegments(plan.Total, catalog.TopDepth, cut),
	}
}
