package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/matzehuels/kitchenrun/pkg/catalog"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/planner"
)

const (
	// DefaultScale is the drawing scale in pixels per meter.
	DefaultScale = 200.0

	margin = 40.0

	// sceneHeight is the tallest thing drawn: the top of the hood chimney.
	sceneHeight = catalog.HoodY + catalog.HoodChimneyHeight + 0.1
)

const elevationCSS = `
    .module { stroke: #333; stroke-width: 1; }
    .filler { stroke: #777; stroke-width: 0.5; }
    .dragging { opacity: 0.8; stroke: #d9480f; stroke-width: 2; stroke-dasharray: 4 2; }
    .upper { stroke: #333; stroke-width: 1; }
    .top { stroke: #222; stroke-width: 0.5; }
    .cutout { fill: none; stroke: #555; stroke-dasharray: 3 2; }
    .hood { fill: #c9ccd1; stroke: #444; stroke-width: 1; }
    .label { font-family: sans-serif; font-size: 11px; fill: #111; text-anchor: middle; }
    .dim { font-family: sans-serif; font-size: 12px; fill: #444; text-anchor: middle; }
    .price { font-family: sans-serif; font-size: 13px; fill: #111; }`

// palette holds the fill colors of the drawing.
type palette struct {
	facade  string
	carcass string
	top     string
}

var defaultPalette = palette{facade: "#9aa0a6", carcass: "#e9ecef", top: "#efefef"}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	catalog   *catalog.Catalog
	scale     float64
	labels    bool
	price     bool
	dimension bool
}

// WithCatalog resolves facade, countertop and carcass colors from c.
// Texture facades fall back to a neutral color.
func WithCatalog(c *catalog.Catalog) SVGOption { return func(r *svgRenderer) { r.catalog = c } }

// WithScale sets pixels per meter. Non-positive values are ignored.
func WithScale(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.scale = px
		}
	}
}

// WithoutLabels omits module names.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithPrice adds the subtotal in the top-left corner.
func WithPrice() SVGOption { return func(r *svgRenderer) { r.price = true } }

// WithoutDimension omits the total length line under the run.
func WithoutDimension() SVGOption { return func(r *svgRenderer) { r.dimension = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale, labels: true, dimension: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frame maps scene meters to SVG pixels. Scene y grows upward from the
// floor; SVG y grows downward.
type frame struct {
	minX  float64
	scale float64
}

func (f frame) x(m float64) float64 { return margin + (m-f.minX)*f.scale }
func (f frame) y(m float64) float64 { return margin + (sceneHeight-m)*f.scale }
func (f frame) w(m float64) float64 { return m * f.scale }

// RenderSVG draws a front elevation of the snapshot: base modules at their
// displayed positions, the countertop with the sink cutout marked, and the
// upper row and hood when shown.
func RenderSVG(s kitchen.Snapshot, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	pal := resolvePalette(r.catalog, s.Selection)

	minX, maxX := extent(s)
	f := frame{minX: minX, scale: r.scale}
	width := 2*margin + (maxX-minX)*r.scale
	height := 2*margin + sceneHeight*r.scale + 30

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", elevationCSS)

	fmt.Fprintf(&buf, `  <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" />`+"\n", f.y(0), width, f.y(0))

	if s.Upper != nil {
		renderUpper(&buf, f, *s.Upper, pal)
	}
	if s.Hood != nil {
		renderHood(&buf, f, *s.Hood)
	}
	renderCountertop(&buf, f, s.Run, pal)
	renderModules(&buf, f, s, pal, r.labels)

	if r.dimension {
		renderDimension(&buf, f, s.Run.Plan.Total)
	}
	if r.price {
		fmt.Fprintf(&buf, `  <text class="price" x="%.1f" y="%.1f">Subtotal €%.0f</text>`+"\n",
			margin, margin-14, s.Price.Subtotal)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func extent(s kitchen.Snapshot) (lo, hi float64) {
	lo, hi = 0, s.Run.Plan.Total
	for _, p := range s.Display {
		lo = math.Min(lo, p.X)
		hi = math.Max(hi, p.Right())
	}
	if s.Hood != nil {
		lo = math.Min(lo, s.Hood.Center-s.Hood.Width/2)
		hi = math.Max(hi, s.Hood.Center+s.Hood.Width/2)
	}
	return lo, hi
}

func renderModules(buf *bytes.Buffer, f frame, s kitchen.Snapshot, pal palette, labels bool) {
	dragged := planner.NoBaseIndex
	if s.Drag != nil {
		dragged = s.Drag.Index
	}

	// The dragged module is drawn last so it stays on top.
	top := -1
	for i, p := range s.Display {
		if !p.IsFiller() && p.BaseIndex == dragged {
			top = i
			continue
		}
		renderModule(buf, f, i, p, pal, labels, false)
	}
	if top >= 0 {
		renderModule(buf, f, top, s.Display[top], pal, labels, true)
	}
}

func renderModule(buf *bytes.Buffer, f frame, i int, p planner.Placement, pal palette, labels, dragging bool) {
	h := p.Module.Height
	class, fill := "module", pal.facade
	if p.IsFiller() {
		class, fill = "filler", pal.carcass
	}
	if dragging {
		class += " dragging"
	}

	fmt.Fprintf(buf, `  <rect id="module-%d" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" data-id="%s" data-base-index="%d" />`+"\n",
		i, class, f.x(p.X), f.y(h), f.w(p.Module.Width), f.w(h), fill,
		html.EscapeString(p.Module.ID), p.BaseIndex)

	if labels && !p.IsFiller() {
		fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f">%s</text>`+"\n",
			f.x(p.Center()), f.y(h/2), html.EscapeString(p.Module.Name))
	}
}

func renderCountertop(buf *bytes.Buffer, f frame, run planner.Run, pal palette) {
	if len(run.Placements) == 0 {
		return
	}
	base := maxHeight(run.Placements)
	fmt.Fprintf(buf, `  <rect class="top" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" />`+"\n",
		f.x(0), f.y(base+catalog.TopThickness), f.w(run.Plan.Total), f.w(catalog.TopThickness), pal.top)

	if run.Cutout != nil {
		c := run.Cutout
		fmt.Fprintf(buf, `  <rect class="cutout" x="%.1f" y="%.1f" width="%.1f" height="%.1f" />`+"\n",
			f.x(c.CenterX-c.Width/2), f.y(base+catalog.TopThickness), f.w(c.Width), f.w(catalog.TopThickness))
	}
}

func renderUpper(buf *bytes.Buffer, f frame, u planner.Upper, pal palette) {
	top := catalog.UpperCenterY + catalog.UpperHeight/2
	for i, c := range u.Cabinets {
		fmt.Fprintf(buf, `  <rect id="upper-%d" class="upper" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" />`+"\n",
			i, f.x(c.X), f.y(top), f.w(c.Width), f.w(catalog.UpperHeight), pal.facade)
	}
}

func renderHood(buf *bytes.Buffer, f frame, h kitchen.Hood) {
	const canopy = 0.06
	fmt.Fprintf(buf, `  <rect class="hood" x="%.1f" y="%.1f" width="%.1f" height="%.1f" />`+"\n",
		f.x(h.Center-h.Width/2), f.y(catalog.HoodY+canopy), f.w(h.Width), f.w(canopy))
	fmt.Fprintf(buf, `  <rect class="hood" x="%.1f" y="%.1f" width="%.1f" height="%.1f" />`+"\n",
		f.x(h.Center-catalog.HoodChimneyWidth/2), f.y(catalog.HoodY+catalog.HoodChimneyHeight),
		f.w(catalog.HoodChimneyWidth), f.w(catalog.HoodChimneyHeight-canopy))
}

func renderDimension(buf *bytes.Buffer, f frame, total float64) {
	y := f.y(0) + 18
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444" />`+"\n",
		f.x(0), y, f.x(total), y)
	fmt.Fprintf(buf, `  <text class="dim" x="%.1f" y="%.1f">%.2f m</text>`+"\n",
		f.x(total/2), y+16, total)
}

func maxHeight(placements []planner.Placement) float64 {
	var h float64
	for _, p := range placements {
		h = math.Max(h, p.Module.Height)
	}
	return h
}

func resolvePalette(c *catalog.Catalog, sel kitchen.Selection) palette {
	pal := defaultPalette
	if c == nil {
		return pal
	}
	if f, ok := c.Facade(sel.FacadeID); ok && isColor(f.Value) {
		pal.facade = f.Value
	}
	if k, ok := c.Carcass(sel.CarcassID); ok && isColor(k.Value) {
		pal.carcass = k.Value
	}
	if t, ok := c.Countertop(sel.CountertopID); ok && isColor(t.Hex) {
		pal.top = t.Hex
	}
	return pal
}

func isColor(v string) bool {
	return strings.HasPrefix(v, "#") && (len(v) == 4 || len(v) == 7)
}
