// Package catalog holds the built-in diagrams served by the CLI and the render service.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

var ErrUnknownDiagram = errors.New("unknown diagram")

// Diagram is a named recipe that fills a builder and returns the canvas to render on.
type Diagram struct {
	Name        string
	Title       string
	Description string
	Build       func(b *diagram.Builder) (diagram.Canvas, error)
}

var registry = map[string]Diagram{}

func register(d Diagram) {
	if _, dup := registry[d.Name]; dup {
		panic("catalog: duplicate diagram " + d.Name)
	}
	registry[d.Name] = d
}

// Lookup returns the diagram registered under name.
func Lookup(name string) (Diagram, error) {
	d, ok := registry[name]
	if !ok {
		return Diagram{}, fmt.Errorf("%w: %q", ErrUnknownDiagram, name)
	}
	return d, nil
}

// List returns every diagram sorted by name.
func List() []Diagram {
	out := make([]Diagram, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Render builds d with a fresh builder and writes it to path.
// A positive dpi overrides the resolution the diagram asks for.
func (d Diagram) Render(open diagram.Opener, path string, dpi float64) error {
	b := diagram.NewBuilder(open)
	c, err := d.Build(b)
	if err != nil {
		return fmt.Errorf("build %s: %w", d.Name, err)
	}
	if dpi > 0 {
		if c, err = c.WithDPI(dpi); err != nil {
			return err
		}
	}
	return b.Render(c, path)
}

// ============================================================
// Build helpers
// ============================================================

// sketch keeps the first construction error so recipes read as plain data.
type sketch struct {
	b   *diagram.Builder
	err error
}

func (s *sketch) shape(bounds diagram.Rect, style diagram.BoxStyle, label *diagram.Label) diagram.Handle {
	if s.err != nil {
		return diagram.Handle{}
	}
	spec, err := diagram.NewShape(bounds, style, label)
	if err != nil {
		s.err = err
		return diagram.Handle{}
	}
	return s.b.AddShape(spec)
}

func (s *sketch) arrow(from, to diagram.Endpoint, style diagram.ArrowStyle) {
	if s.err != nil {
		return
	}
	spec, err := diagram.NewArrow(from, to, style)
	if err != nil {
		s.err = err
		return
	}
	s.b.AddArrow(spec)
}

func (s *sketch) text(at diagram.Point, text string, style diagram.TextStyle, bg *diagram.Background) {
	if s.err != nil {
		return
	}
	spec, err := diagram.NewAnnotation(at, text, style, bg)
	if err != nil {
		s.err = err
		return
	}
	s.b.AddAnnotation(spec)
}

type swatch struct {
	color diagram.Color
	label string
}

func (s *sketch) legend(topLeft diagram.Point, style diagram.LegendStyle, items ...swatch) {
	if s.err != nil {
		return
	}
	entries := make([]diagram.LegendEntry, 0, len(items))
	for _, it := range items {
		e, err := diagram.NewLegendEntry(it.color, it.label)
		if err != nil {
			s.err = err
			return
		}
		entries = append(entries, e)
	}
	l, err := diagram.NewLegend(topLeft, style, entries...)
	if err != nil {
		s.err = err
		return
	}
	s.b.SetLegend(l)
}

// padded grows a box by pad on every side and rounds its corners by the same amount.
func padded(x, y, w, h, pad float64, fill, border diagram.Color, opacity float64) (diagram.Rect, diagram.BoxStyle) {
	return diagram.R(x-pad, y-pad, w+2*pad, h+2*pad), diagram.Box(fill, border, pad, opacity)
}

func label(text string, size float64, bold bool, ink diagram.Color, at *diagram.Point) *diagram.Label {
	return &diagram.Label{
		Text:  text,
		Style: diagram.TextStyle{Size: size, Bold: bold, Color: ink},
		At:    at,
	}
}

func at(x, y float64) *diagram.Point {
	p := diagram.Pt(x, y)
	return &p
}
