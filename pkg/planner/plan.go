package planner

import (
	"math"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
)

// MaxFillerWidth is the widest filler piece the planner synthesizes (8 cm).
const MaxFillerWidth = 0.08

// fillerEps absorbs floating-point noise: a delta below it is treated as
// zero, and an exact multiple of the chunk size does not spawn a vanishing
// extra filler.
const fillerEps = 1e-9

// Plan is a finalized lineup together with its total width and the length
// the fillers cover.
type Plan struct {
	// Lineup is the non-filler modules in user order followed by the
	// synthesized fillers.
	Lineup []catalog.Module `json:"lineup"`

	// Total is the sum of all lineup widths.
	Total float64 `json:"total"`

	// Delta is max(0, target - fixed width), the length fillers must cover.
	Delta float64 `json:"delta"`
}

// FillerCount returns the number of filler pieces in the lineup.
func (p Plan) FillerCount() int {
	n := 0
	for _, m := range p.Lineup {
		if m.IsFiller() {
			n++
		}
	}
	return n
}

// Modules returns the non-filler part of the lineup.
func (p Plan) Modules() []catalog.Module {
	return catalog.WithoutFillers(p.Lineup)
}

// Option configures [ComputePlan].
type Option func(*planConfig)

type planConfig struct {
	filler   catalog.Module
	maxChunk float64
}

// WithFillerTemplate sets the module that synthesized fillers are copied
// from. Its width is replaced; every other field is kept.
func WithFillerTemplate(m catalog.Module) Option {
	return func(c *planConfig) { c.filler = m }
}

// WithMaxFillerWidth overrides [MaxFillerWidth]. Non-positive values are
// ignored.
func WithMaxFillerWidth(w float64) Option {
	return func(c *planConfig) {
		if w > 0 {
			c.maxChunk = w
		}
	}
}

func newPlanConfig(opts []Option) planConfig {
	c := planConfig{maxChunk: MaxFillerWidth}
	if tpl, ok := catalog.Default().Filler(); ok {
		c.filler = tpl
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ComputePlan builds the lineup for modules and targetLength.
//
// Fillers in modules are ignored. The result is deterministic: identical
// inputs yield identical plans.
func ComputePlan(modules []catalog.Module, targetLength float64, opts ...Option) Plan {
	cfg := newPlanConfig(opts)

	fixed := catalog.WithoutFillers(modules)
	delta := math.Max(0, targetLength-catalog.FixedWidth(fixed))
	if delta < fillerEps {
		delta = 0
	}

	lineup := fixed
	if delta > 0 {
		lineup = append(lineup, fillers(cfg, delta)...)
	}

	return Plan{
		Lineup: lineup,
		Total:  catalog.TotalWidth(lineup),
		Delta:  delta,
	}
}

// fillers synthesizes ceil(delta/maxChunk) pieces; all are maxChunk wide
// except the last, which takes the remainder.
func fillers(cfg planConfig, delta float64) []catalog.Module {
	n := int(math.Ceil(delta/cfg.maxChunk - fillerEps))
	if n < 1 {
		n = 1
	}
	out := make([]catalog.Module, n)
	for i := range out {
		w := math.Min(cfg.maxChunk, delta-float64(i)*cfg.maxChunk)
		out[i] = cfg.filler.AsFiller(w)
	}
	return out
}
