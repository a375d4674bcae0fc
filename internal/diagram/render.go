package diagram

import (
	"errors"
	"fmt"
)

// ============================================================
// Render
// ============================================================

type resolvedArrow struct {
	from  Point
	to    Point
	style ArrowStyle
}

// renderPlan is a fully validated diagram ready to be replayed on a surface.
type renderPlan struct {
	shapes      []ShapeSpec
	arrows      []resolvedArrow
	legend      *LegendSpec
	annotations []AnnotationSpec
}

// Render draws the diagram onto a surface for c and flushes it to path.
// Layering is fixed: background, shapes with their labels, arrows, legend,
// annotations; each group in insertion order. Every arrow is resolved before
// the surface is opened, so a failed validation issues no draw commands.
func (b *Builder) Render(c Canvas, path string) error {
	if err := c.validate(); err != nil {
		return &RenderError{Path: path, Err: err}
	}
	if b.open == nil {
		return &RenderError{Path: path, Err: errors.New("builder has no surface opener")}
	}

	plan, err := b.plan()
	if err != nil {
		return &RenderError{Path: path, Err: err}
	}

	surface, err := b.open(c, path)
	if err != nil {
		return &RenderError{Path: path, Err: fmt.Errorf("open surface: %w", err)}
	}

	plan.draw(surface, c)

	if err := surface.Flush(path); err != nil {
		return &RenderError{Path: path, Err: err}
	}
	return nil
}

func (b *Builder) plan() (*renderPlan, error) {
	for i, s := range b.shapes {
		if s.bounds.Width <= 0 || s.bounds.Height <= 0 {
			return nil, invalidGeometry("shape %d was not built with NewShape", i)
		}
	}

	arrows := make([]resolvedArrow, 0, len(b.arrows))
	for i, a := range b.arrows {
		if a.style.Width <= 0 {
			return nil, invalidGeometry("arrow %d was not built with NewArrow", i)
		}
		from, to, err := b.resolveArrow(a)
		if err != nil {
			return nil, fmt.Errorf("arrow %d: %w", i, err)
		}
		arrows = append(arrows, resolvedArrow{from: from, to: to, style: a.style})
	}

	return &renderPlan{
		shapes:      b.shapes,
		arrows:      arrows,
		legend:      b.legend,
		annotations: b.annotations,
	}, nil
}

func (p *renderPlan) draw(s Surface, c Canvas) {
	s.DrawRoundedRect(c.Bounds(), BoxStyle{Fill: c.Background(), Opacity: 1})

	for _, shape := range p.shapes {
		s.DrawRoundedRect(shape.bounds, shape.style)
		if shape.label != nil {
			s.DrawText(shape.labelAnchor(), shape.label.Text, shape.label.Style)
		}
	}

	for _, a := range p.arrows {
		s.DrawArrow(a.from, a.to, a.style)
	}

	if p.legend != nil {
		drawLegend(s, c, *p.legend)
	}

	for _, a := range p.annotations {
		drawAnnotation(s, c, a)
	}
}

// ============================================================
// Legend & annotations
// ============================================================

func drawLegend(s Surface, c Canvas, l LegendSpec) {
	fs := l.style.FontSize
	pad := c.PointsToUnits(0.6 * fs)
	row := c.PointsToUnits(1.5 * fs)
	swatchW := c.PointsToUnits(2 * fs)
	swatchH := c.PointsToUnits(0.8 * fs)
	gap := c.PointsToUnits(0.6 * fs)
	text := TextStyle{Size: fs, HAlign: AlignLeft, VAlign: AlignMiddle}

	var textW float64
	for _, e := range l.entries {
		w, _ := TextExtent(e.label, text)
		textW = max(textW, c.PointsToUnits(w))
	}

	w := pad + swatchW + gap + textW + pad
	h := 2*pad + float64(len(l.entries))*row
	frame := Rect{X: l.topLeft.X, Y: l.topLeft.Y - h, Width: w, Height: h}
	s.DrawRoundedRect(frame, fitRadius(l.style.Frame, frame))

	for i, e := range l.entries {
		mid := l.topLeft.Y - pad - float64(i)*row - row/2
		swatch := Rect{X: frame.X + pad, Y: mid - swatchH/2, Width: swatchW, Height: swatchH}
		s.DrawRoundedRect(swatch, BoxStyle{Fill: e.color, Opacity: l.style.SwatchOpacity})
		s.DrawText(Point{X: swatch.X + swatchW + gap, Y: mid}, e.label, text)
	}
}

func drawAnnotation(s Surface, c Canvas, a AnnotationSpec) {
	if a.background != nil {
		box := textBox(c, a.at, a.text, a.style)
		pad := c.PointsToUnits(a.background.Padding)
		bg := Rect{
			X:      box.X - pad,
			Y:      box.Y - pad,
			Width:  box.Width + 2*pad,
			Height: box.Height + 2*pad,
		}
		s.DrawRoundedRect(bg, fitRadius(a.background.Style, bg))
	}
	s.DrawText(a.at, a.text, a.style)
}

// fitRadius shrinks the corner radius of computed boxes to what the box can hold.
func fitRadius(style BoxStyle, r Rect) BoxStyle {
	style.Radius = min(style.Radius, min(r.Width, r.Height)/2)
	return style
}
