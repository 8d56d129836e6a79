package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/plateforge/plateforge/pkg/pattern"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/plate"
)

// The DXF sink emits the R12 dialect, restricted to the CIRCLE, SOLID,
// POLYLINE and TEXT entities. DXF is y-up, so all coordinates are
// flipped about the plate height on the way out.

// plateLayer holds the plate outline; each section gets its own layer
// so CAM software can toggle patterns individually.
const plateLayer = "PLATE"

// SectionLayer returns the DXF layer name for a 1-based section
// number.
func SectionLayer(number int) string {
	return fmt.Sprintf("SECTION_%d", number)
}

// DXFOption configures DXF rendering via [RenderDXF].
type DXFOption func(*dxfRenderer)

type dxfRenderer struct {
	flat bool
}

// WithDXFFlat puts every entity on the plate layer instead of one
// layer per section.
func WithDXFFlat() DXFOption { return func(r *dxfRenderer) { r.flat = true } }

// RenderDXF serializes the plan as an AutoCAD R12 DXF document in
// millimeter coordinates. Filled rectangles become SOLID entities,
// outlines and lines become closed and open POLYLINEs carrying their
// stroke width, circles and text map directly.
func RenderDXF(p *plan.Plan, opts ...DXFOption) []byte {
	r := dxfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w := &dxfWriter{flipH: p.Plate.HeightMM}

	w.header(p.Plate.WidthMM, p.Plate.HeightMM)
	w.layerTable()

	w.tag(0, "SECTION")
	w.tag(2, "ENTITIES")
	for i, prim := range p.Primitives {
		w.layer = plateLayer
		if !r.flat {
			if n := sectionOf(p, i); n != 0 {
				w.layer = SectionLayer(n)
			}
		}
		w.entity(prim)
	}
	w.tag(0, "ENDSEC")
	w.tag(0, "EOF")

	return w.buf.Bytes()
}

// sectionOf returns the 1-based section owning primitive index i, or 0
// for the plate frame.
func sectionOf(p *plan.Plan, i int) int {
	for _, s := range p.Sections {
		if i >= s.Offset && i < s.Offset+s.Count {
			return s.Number
		}
	}
	return 0
}

type dxfWriter struct {
	buf   bytes.Buffer
	flipH float64
	layer string
}

// tag writes one group code / value pair.
func (w *dxfWriter) tag(code int, value string) {
	w.buf.WriteString(strconv.Itoa(code))
	w.buf.WriteByte('\n')
	w.buf.WriteString(value)
	w.buf.WriteByte('\n')
}

func (w *dxfWriter) num(code int, v float64) {
	w.tag(code, strconv.FormatFloat(v, 'f', -1, 64))
}

// point writes an x/y pair on the given base group codes, flipping y
// into the y-up CAD frame.
func (w *dxfWriter) point(base int, x, y float64) {
	w.num(base, x)
	w.num(base+10, w.flipH-y)
}

func (w *dxfWriter) header(width, height float64) {
	w.tag(0, "SECTION")
	w.tag(2, "HEADER")
	w.tag(9, "$ACADVER")
	w.tag(1, "AC1009")
	w.tag(9, "$EXTMIN")
	w.num(10, 0)
	w.num(20, 0)
	w.tag(9, "$EXTMAX")
	w.num(10, width)
	w.num(20, height)
	w.tag(0, "ENDSEC")
}

func (w *dxfWriter) layerTable() {
	w.tag(0, "SECTION")
	w.tag(2, "TABLES")
	w.tag(0, "TABLE")
	w.tag(2, "LAYER")
	w.tag(70, strconv.Itoa(1+plate.SectionCount))
	w.layerEntry(plateLayer)
	for n := 1; n <= plate.SectionCount; n++ {
		w.layerEntry(SectionLayer(n))
	}
	w.tag(0, "ENDTAB")
	w.tag(0, "ENDSEC")
}

func (w *dxfWriter) layerEntry(name string) {
	w.tag(0, "LAYER")
	w.tag(2, name)
	w.tag(70, "0")
	w.tag(62, "7")
	w.tag(6, "CONTINUOUS")
}

func (w *dxfWriter) entity(p pattern.Primitive) {
	switch {
	case p.Circle != nil:
		c := p.Circle
		w.tag(0, "CIRCLE")
		w.tag(8, w.layer)
		w.point(10, c.Center.X, c.Center.Y)
		w.num(40, c.Radius)

	case p.Rect != nil:
		r := p.Rect
		if r.Filled {
			// SOLID corners go as parallel edge pairs, not perimeter
			// order, or the quad renders as a bowtie.
			w.tag(0, "SOLID")
			w.tag(8, w.layer)
			w.point(10, r.Origin.X, r.Origin.Y+r.H)
			w.point(11, r.Origin.X+r.W, r.Origin.Y+r.H)
			w.point(12, r.Origin.X, r.Origin.Y)
			w.point(13, r.Origin.X+r.W, r.Origin.Y)
			return
		}
		w.polyline(r.Stroke, true,
			[]float64{r.Origin.X, r.Origin.X + r.W, r.Origin.X + r.W, r.Origin.X},
			[]float64{r.Origin.Y, r.Origin.Y, r.Origin.Y + r.H, r.Origin.Y + r.H})

	case p.Line != nil:
		l := p.Line
		w.polyline(l.Width, false,
			[]float64{l.P1.X, l.P2.X},
			[]float64{l.P1.Y, l.P2.Y})

	case p.Text != nil:
		t := p.Text
		w.tag(0, "TEXT")
		w.tag(8, w.layer)
		w.point(10, t.Pos.X, t.Pos.Y)
		w.num(40, t.Size)
		w.tag(1, t.Content)
	}
}

// polyline writes an R12 POLYLINE with constant width, closed when
// requested.
func (w *dxfWriter) polyline(width float64, closed bool, xs, ys []float64) {
	w.tag(0, "POLYLINE")
	w.tag(8, w.layer)
	w.tag(66, "1")
	if closed {
		w.tag(70, "1")
	} else {
		w.tag(70, "0")
	}
	w.num(40, width)
	w.num(41, width)
	for i := range xs {
		w.tag(0, "VERTEX")
		w.tag(8, w.layer)
		w.point(10, xs[i], ys[i])
	}
	w.tag(0, "SEQEND")
}
