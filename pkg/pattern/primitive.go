package pattern

import (
	"math"

	"github.com/plateforge/plateforge/pkg/geom"
)

// Primitive is one drawable shape. Exactly one of the variant fields is
// set; sinks dispatch on it with a single switch. Primitives are immutable
// once emitted and are consumed in order by a canvas sink.
type Primitive struct {
	Circle *Circle `json:"circle,omitempty" bson:"circle,omitempty"`
	Rect   *Rect   `json:"rect,omitempty" bson:"rect,omitempty"`
	Line   *Line   `json:"line,omitempty" bson:"line,omitempty"`
	Text   *Text   `json:"text,omitempty" bson:"text,omitempty"`
}

// Circle is a filled dot or an outline ring, depending on Filled.
type Circle struct {
	Center geom.Point `json:"center" bson:"center"`
	Radius float64    `json:"radius" bson:"radius"`
	Filled bool       `json:"filled" bson:"filled"`
	Stroke float64    `json:"stroke,omitempty" bson:"stroke,omitempty"` // outline width when not filled
}

// Rect is an axis-aligned rectangle, filled or outline-only.
type Rect struct {
	Origin geom.Point `json:"origin" bson:"origin"`
	W      float64    `json:"w" bson:"w"`
	H      float64    `json:"h" bson:"h"`
	Filled bool       `json:"filled" bson:"filled"`
	Stroke float64    `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Dashed bool       `json:"dashed,omitempty" bson:"dashed,omitempty"`
	Color  string     `json:"color,omitempty" bson:"color,omitempty"` // outline color, default black
}

// Line is a straight stroke of the given width.
type Line struct {
	P1    geom.Point `json:"p1" bson:"p1"`
	P2    geom.Point `json:"p2" bson:"p2"`
	Width float64    `json:"width" bson:"width"`
}

// Text is a label anchored at the left end of its baseline.
type Text struct {
	Pos     geom.Point `json:"pos" bson:"pos"`
	Content string     `json:"content" bson:"content"`
	Color   string     `json:"color,omitempty" bson:"color,omitempty"`
	Size    float64    `json:"size,omitempty" bson:"size,omitempty"` // font size in mm
}

// NewDot returns a filled circle primitive.
func NewDot(center geom.Point, radius float64) Primitive {
	return Primitive{Circle: &Circle{Center: center, Radius: radius, Filled: true}}
}

// NewRing returns an unfilled circle outline.
func NewRing(center geom.Point, radius, stroke float64) Primitive {
	return Primitive{Circle: &Circle{Center: center, Radius: radius, Stroke: stroke}}
}

// NewFilledRect returns a filled rectangle.
func NewFilledRect(origin geom.Point, w, h float64) Primitive {
	return Primitive{Rect: &Rect{Origin: origin, W: w, H: h, Filled: true}}
}

// NewOutline returns an unfilled rectangle tracing r.
func NewOutline(r geom.Rect, stroke float64, dashed bool, color string) Primitive {
	return Primitive{Rect: &Rect{
		Origin: geom.Pt(r.X, r.Y),
		W:      r.W,
		H:      r.H,
		Stroke: stroke,
		Dashed: dashed,
		Color:  color,
	}}
}

// NewLine returns a line stroke between p1 and p2.
func NewLine(p1, p2 geom.Point, width float64) Primitive {
	return Primitive{Line: &Line{P1: p1, P2: p2, Width: width}}
}

// NewText returns a text label.
func NewText(pos geom.Point, content, color string, size float64) Primitive {
	return Primitive{Text: &Text{Pos: pos, Content: content, Color: color, Size: size}}
}

// Bounds returns the axis-aligned bounding box of the primitive.
// Text extent depends on the sink's font metrics, so only the anchor
// point is covered.
func (p Primitive) Bounds() geom.Rect {
	switch {
	case p.Circle != nil:
		c := p.Circle
		return geom.NewRect(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
	case p.Rect != nil:
		r := p.Rect
		return geom.NewRect(r.Origin.X, r.Origin.Y, r.W, r.H)
	case p.Line != nil:
		l := p.Line
		x0, x1 := math.Min(l.P1.X, l.P2.X), math.Max(l.P1.X, l.P2.X)
		y0, y1 := math.Min(l.P1.Y, l.P2.Y), math.Max(l.P1.Y, l.P2.Y)
		return geom.NewRect(x0, y0, x1-x0, y1-y0)
	case p.Text != nil:
		return geom.NewRect(p.Text.Pos.X, p.Text.Pos.Y, 0, 0)
	}
	return geom.Rect{}
}
