// Package vector draws diagrams as SVG documents with ajstarks/svgo.
package vector

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

const fontFamily = "DejaVu Sans, Arial, sans-serif"

// Surface writes SVG elements into an in-memory document.
type Surface struct {
	canvas diagram.Canvas
	buf    bytes.Buffer
	doc    *svg.SVG
	closed bool
}

func New(c diagram.Canvas) (*Surface, error) {
	if err := c.CheckPixels(diagram.MaxPixels); err != nil {
		return nil, err
	}
	s := &Surface{canvas: c}
	s.doc = svg.New(&s.buf)

	w, h := c.PixelSize()
	s.doc.Start(w, h)
	return s, nil
}

func (s *Surface) DrawRoundedRect(bounds diagram.Rect, style diagram.BoxStyle) {
	x, y := s.canvas.ToPixels(diagram.Point{X: bounds.X, Y: bounds.Y + bounds.Height})
	w := s.canvas.UnitsToPixels(bounds.Width)
	h := s.canvas.UnitsToPixels(bounds.Height)
	r := round(s.canvas.UnitsToPixels(style.Radius))

	css := []string{
		"fill:" + style.Fill.Hex(),
		"fill-opacity:" + formatFloat(style.Fill.Alpha()*style.Opacity),
	}
	if lw := style.StrokeWidth(); lw > 0 {
		css = append(css,
			"stroke:"+style.Border.Hex(),
			"stroke-opacity:"+formatFloat(style.Border.Alpha()*style.Opacity),
			"stroke-width:"+formatFloat(s.canvas.PointsToPixels(lw)),
		)
	}

	if r == 0 {
		s.doc.Rect(round(x), round(y), round(w), round(h), strings.Join(css, ";"))
		return
	}
	s.doc.Roundrect(round(x), round(y), round(w), round(h), r, r, strings.Join(css, ";"))
}

func (s *Surface) DrawText(at diagram.Point, text string, style diagram.TextStyle) {
	x, y := s.canvas.ToPixels(at)
	size := s.canvas.PointsToPixels(style.Size)
	lines := diagram.SplitLines(text)
	lineH := size * diagram.LineSpacing
	blockH := lineH * float64(len(lines))

	var top float64
	switch style.VAlign {
	case diagram.AlignTop:
		top = y
	case diagram.AlignBottom:
		top = y - blockH
	default:
		top = y - blockH/2
	}

	anchor := "middle"
	switch style.HAlign {
	case diagram.AlignLeft:
		anchor = "start"
	case diagram.AlignRight:
		anchor = "end"
	}

	weight := "normal"
	if style.Bold {
		weight = "bold"
	}

	ink := style.Ink()
	css := fmt.Sprintf("font-family:%s;font-size:%spx;font-weight:%s;fill:%s;fill-opacity:%s;text-anchor:%s;dominant-baseline:central",
		fontFamily, formatFloat(size), weight, ink.Hex(), formatFloat(ink.Alpha()), anchor)
	for i, line := range lines {
		if line == "" {
			continue
		}
		s.doc.Text(round(x), round(top+(float64(i)+0.5)*lineH), line, css)
	}
}

func (s *Surface) DrawArrow(from, to diagram.Point, style diagram.ArrowStyle) {
	x1, y1 := s.canvas.ToPixels(from)
	x2, y2 := s.canvas.ToPixels(to)

	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	head := math.Min(s.canvas.PointsToPixels(style.HeadSize), length)
	bx, by := x2-ux*head, y2-uy*head
	opacity := formatFloat(style.Color.Alpha() * style.Opacity)

	s.doc.Line(round(x1), round(y1), round(bx), round(by), fmt.Sprintf("stroke:%s;stroke-opacity:%s;stroke-width:%s",
		style.Color.Hex(), opacity, formatFloat(s.canvas.PointsToPixels(style.Width))))

	if head > 0 {
		half := head * 0.4
		xs := []int{round(x2), round(bx - uy*half), round(bx + uy*half)}
		ys := []int{round(y2), round(by + ux*half), round(by - ux*half)}
		s.doc.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%s", style.Color.Hex(), opacity))
	}
}

// Bytes closes the document and returns it.
func (s *Surface) Bytes() []byte {
	if !s.closed {
		s.doc.End()
		s.closed = true
	}
	return s.buf.Bytes()
}

func (s *Surface) Flush(path string) error {
	return os.WriteFile(path, s.Bytes(), 0o644)
}

// ============================================================
// Formatting helpers
// ============================================================

func round(v float64) int {
	return int(math.Round(v))
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*1000)/1000, 'f', -1, 64)
}
