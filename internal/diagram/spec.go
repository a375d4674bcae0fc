package diagram

import (
	"strings"
)

// ============================================================
// Shapes
// ============================================================

// Label is the text drawn inside a shape. A nil At centers the text in the
// shape; otherwise At is the absolute anchor point.
type Label struct {
	Text  string
	Style TextStyle
	At    *Point
}

func (l Label) validate() error {
	if strings.TrimSpace(l.Text) == "" {
		return invalidStyle("label text is empty")
	}
	if l.At != nil && !l.At.finite() {
		return invalidGeometry("label anchor %v is not finite", *l.At)
	}
	return l.Style.validate()
}

// ShapeSpec is one rounded rectangle with an optional label.
type ShapeSpec struct {
	bounds Rect
	style  BoxStyle
	label  *Label
}

func NewShape(bounds Rect, style BoxStyle, label *Label) (ShapeSpec, error) {
	if !bounds.Min().finite() || !isFinite(bounds.Width) || !isFinite(bounds.Height) {
		return ShapeSpec{}, invalidGeometry("shape bounds %v are not finite", bounds)
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return ShapeSpec{}, invalidGeometry("shape size %vx%v must be positive", bounds.Width, bounds.Height)
	}
	if !isFinite(style.Radius) || style.Radius < 0 || style.Radius > min(bounds.Width, bounds.Height)/2 {
		return ShapeSpec{}, invalidGeometry("corner radius %v does not fit a %vx%v shape", style.Radius, bounds.Width, bounds.Height)
	}
	if err := style.validate(); err != nil {
		return ShapeSpec{}, err
	}

	s := ShapeSpec{bounds: bounds, style: style}
	if label != nil {
		if err := label.validate(); err != nil {
			return ShapeSpec{}, err
		}
		l := *label
		if label.At != nil {
			at := *label.At
			l.At = &at
		}
		s.label = &l
	}
	return s, nil
}

func (s ShapeSpec) Bounds() Rect { return s.bounds }
func (s ShapeSpec) Style() BoxStyle { return s.style }

// Label returns a copy of the label; ok is false for unlabeled shapes.
func (s ShapeSpec) Label() (Label, bool) {
	if s.label == nil {
		return Label{}, false
	}
	l := *s.label
	if s.label.At != nil {
		at := *s.label.At
		l.At = &at
	}
	return l, true
}

// labelAnchor is where the label text is anchored on the canvas.
func (s ShapeSpec) labelAnchor() Point {
	if s.label != nil && s.label.At != nil {
		return *s.label.At
	}
	return s.bounds.Center()
}

// ============================================================
// Arrows
// ============================================================

// Endpoint is either a literal canvas point or an attachment to a shape.
type Endpoint struct {
	point    Point
	handle   Handle
	side     Side
	anchored bool
}

func At(x, y float64) Endpoint {
	return Endpoint{point: Point{X: x, Y: y}}
}

func AtPoint(p Point) Endpoint {
	return Endpoint{point: p}
}

func AnchorTo(h Handle, side Side) Endpoint {
	return Endpoint{handle: h, side: side, anchored: true}
}

// ArrowSpec is a directed straight connector.
type ArrowSpec struct {
	from  Endpoint
	to    Endpoint
	style ArrowStyle
}

func NewArrow(from, to Endpoint, style ArrowStyle) (ArrowSpec, error) {
	for _, e := range []Endpoint{from, to} {
		if e.anchored {
			if e.side < SideAuto || e.side > SideRight {
				return ArrowSpec{}, invalidGeometry("unknown side %d", e.side)
			}
			continue
		}
		if !e.point.finite() {
			return ArrowSpec{}, invalidGeometry("arrow endpoint %v is not finite", e.point)
		}
	}

	switch {
	case !from.anchored && !to.anchored && from.point == to.point:
		return ArrowSpec{}, invalidGeometry("arrow starts and ends at %v", from.point)
	case from.anchored && to.anchored && from.handle == to.handle:
		return ArrowSpec{}, invalidGeometry("arrow starts and ends on the same shape")
	}

	if err := style.validate(); err != nil {
		return ArrowSpec{}, err
	}
	return ArrowSpec{from: from, to: to, style: style}, nil
}

func (a ArrowSpec) From() Endpoint { return a.from }
func (a ArrowSpec) To() Endpoint { return a.to }
func (a ArrowSpec) Style() ArrowStyle { return a.style }

// ============================================================
// Legend
// ============================================================

type LegendEntry struct {
	color Color
	label string
}

func NewLegendEntry(c Color, label string) (LegendEntry, error) {
	if strings.TrimSpace(label) == "" {
		return LegendEntry{}, invalidStyle("legend label is empty")
	}
	if c.IsNone() {
		return LegendEntry{}, invalidStyle("legend entry %q has no color", label)
	}
	if err := c.validate("legend color"); err != nil {
		return LegendEntry{}, err
	}
	return LegendEntry{color: c, label: label}, nil
}

func (e LegendEntry) Color() Color { return e.color }
func (e LegendEntry) Label() string { return e.label }

// LegendSpec is the key of a diagram. Entries keep their display order.
type LegendSpec struct {
	topLeft Point
	style   LegendStyle
	entries []LegendEntry
}

func NewLegend(topLeft Point, style LegendStyle, entries ...LegendEntry) (LegendSpec, error) {
	if !topLeft.finite() {
		return LegendSpec{}, invalidGeometry("legend position %v is not finite", topLeft)
	}
	if len(entries) == 0 {
		return LegendSpec{}, invalidStyle("legend has no entries")
	}
	if err := style.validate(); err != nil {
		return LegendSpec{}, err
	}
	for _, e := range entries {
		if e.label == "" {
			return LegendSpec{}, invalidStyle("legend entry was not built with NewLegendEntry")
		}
	}
	return LegendSpec{
		topLeft: topLeft,
		style:   style,
		entries: append([]LegendEntry(nil), entries...),
	}, nil
}

func (l LegendSpec) TopLeft() Point { return l.topLeft }
func (l LegendSpec) Style() LegendStyle { return l.style }
func (l LegendSpec) Len() int { return len(l.entries) }

func (l LegendSpec) Entries() []LegendEntry {
	return append([]LegendEntry(nil), l.entries...)
}

// ============================================================
// Annotations
// ============================================================

// AnnotationSpec is a free text block, optionally on a background box.
type AnnotationSpec struct {
	at         Point
	text       string
	style      TextStyle
	background *Background
}

func NewAnnotation(at Point, text string, style TextStyle, background *Background) (AnnotationSpec, error) {
	if !at.finite() {
		return AnnotationSpec{}, invalidGeometry("annotation anchor %v is not finite", at)
	}
	if strings.TrimSpace(text) == "" {
		return AnnotationSpec{}, invalidStyle("annotation text is empty")
	}
	if err := style.validate(); err != nil {
		return AnnotationSpec{}, err
	}

	a := AnnotationSpec{at: at, text: text, style: style}
	if background != nil {
		if err := background.validate(); err != nil {
			return AnnotationSpec{}, err
		}
		bg := *background
		a.background = &bg
	}
	return a, nil
}

func (a AnnotationSpec) At() Point { return a.at }
func (a AnnotationSpec) Text() string { return a.text }
func (a AnnotationSpec) Style() TextStyle { return a.style }

func (a AnnotationSpec) Background() (Background, bool) {
	if a.background == nil {
		return Background{}, false
	}
	return *a.background, true
}
