package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"

	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
)

// svgDecimals is the coordinate precision in the emitted SVG. Six
// decimal places of a millimeter frame resolve to one nanometer, below
// the finest catalog spacing.
const svgDecimals = 6

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	desc       string
	background string
}

// WithSVGTitle sets the document title element, shown as a tooltip by
// most viewers.
func WithSVGTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithSVGDescription sets the document description element.
func WithSVGDescription(d string) SVGOption { return func(r *svgRenderer) { r.desc = d } }

// WithSVGBackground fills the plate area with a color before any
// primitive is drawn. Without it the background is transparent.
func WithSVGBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG serializes the plan as an SVG document in real millimeter
// units: the viewBox spans the plate, so one user unit is one
// millimeter at print size.
func RenderSVG(p *plan.Plan, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := p.Plate.WidthMM, p.Plate.HeightMM
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Decimals = svgDecimals
	canvas.Startunit(w, h, "mm", fmt.Sprintf(`viewBox="0 0 %g %g"`, w, h))

	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.desc != "" {
		canvas.Desc(r.desc)
	}
	if r.background != "" {
		canvas.Rect(0, 0, w, h, fmt.Sprintf(`fill="%s"`, r.background))
	}

	for _, prim := range p.Primitives {
		writePrimitive(canvas, prim)
	}

	canvas.End()
	return buf.Bytes()
}

func writePrimitive(canvas *svg.SVG, p pattern.Primitive) {
	switch {
	case p.Circle != nil:
		c := p.Circle
		if c.Filled {
			canvas.Circle(c.Center.X, c.Center.Y, c.Radius, `fill="black"`)
		} else {
			canvas.Circle(c.Center.X, c.Center.Y, c.Radius,
				`fill="none"`, `stroke="black"`, strokeWidth(c.Stroke))
		}

	case p.Rect != nil:
		rc := p.Rect
		if rc.Filled {
			canvas.Rect(rc.Origin.X, rc.Origin.Y, rc.W, rc.H, fill(rc.Color))
		} else {
			attrs := []string{`fill="none"`, stroke(rc.Color), strokeWidth(rc.Stroke)}
			if rc.Dashed {
				attrs = append(attrs, `stroke-dasharray="1,1"`)
			}
			canvas.Rect(rc.Origin.X, rc.Origin.Y, rc.W, rc.H, attrs...)
		}

	case p.Line != nil:
		l := p.Line
		canvas.Line(l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, `stroke="black"`, strokeWidth(l.Width))

	case p.Text != nil:
		t := p.Text
		canvas.Text(t.Pos.X, t.Pos.Y, t.Content,
			fill(t.Color), fmt.Sprintf(`font-size="%g"`, t.Size), `font-family="sans-serif"`)
	}
}

func fill(color string) string {
	if color == "" {
		color = "black"
	}
	return fmt.Sprintf(`fill="%s"`, color)
}

func stroke(color string) string {
	if color == "" {
		color = "black"
	}
	return fmt.Sprintf(`stroke="%s"`, color)
}

func strokeWidth(w float64) string {
	return fmt.Sprintf(`stroke-width="%g"`, w)
}
