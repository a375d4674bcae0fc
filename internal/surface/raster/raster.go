// Package raster draws diagrams into bitmap images with fogleman/gg.
package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

// Encoding is the image file format written by Flush.
type Encoding int

const (
	PNG Encoding = iota
	JPEG
)

const jpegQuality = 92

// ============================================================
// Fonts
// ============================================================

var (
	fontsOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		boldFont, fontsErr = truetype.Parse(gobold.TTF)
	})
	return fontsErr
}

type faceKey struct {
	size float64
	bold bool
}

// ============================================================
// Surface
// ============================================================

// Surface accumulates draw calls on an in-memory image.
type Surface struct {
	canvas   diagram.Canvas
	encoding Encoding
	dc       *gg.Context
	faces    map[faceKey]font.Face
}

func New(c diagram.Canvas, encoding Encoding) (*Surface, error) {
	if err := c.CheckPixels(diagram.MaxPixels); err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	w, h := c.PixelSize()
	return &Surface{
		canvas:   c,
		encoding: encoding,
		dc:       gg.NewContext(w, h),
		faces:    make(map[faceKey]font.Face),
	}, nil
}

// Image exposes the drawing so far.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) DrawRoundedRect(bounds diagram.Rect, style diagram.BoxStyle) {
	x, y := s.canvas.ToPixels(diagram.Point{X: bounds.X, Y: bounds.Y + bounds.Height})
	w := s.canvas.UnitsToPixels(bounds.Width)
	h := s.canvas.UnitsToPixels(bounds.Height)
	r := s.canvas.UnitsToPixels(style.Radius)

	if !style.Fill.IsNone() {
		s.path(x, y, w, h, r)
		s.setColor(style.Fill, style.Opacity)
		s.dc.Fill()
	}

	if lw := style.StrokeWidth(); lw > 0 {
		s.path(x, y, w, h, r)
		s.setColor(style.Border, style.Opacity)
		s.dc.SetLineWidth(s.canvas.PointsToPixels(lw))
		s.dc.Stroke()
	}
}

func (s *Surface) path(x, y, w, h, r float64) {
	if r <= 0 {
		s.dc.DrawRectangle(x, y, w, h)
		return
	}
	s.dc.DrawRoundedRectangle(x, y, w, h, r)
}

func (s *Surface) DrawText(at diagram.Point, text string, style diagram.TextStyle) {
	s.dc.SetFontFace(s.face(style))
	s.setColor(style.Ink(), 1)

	x, y := s.canvas.ToPixels(at)
	lines := diagram.SplitLines(text)
	lineH := s.canvas.PointsToPixels(style.Size) * diagram.LineSpacing
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

	ax := 0.5
	switch style.HAlign {
	case diagram.AlignLeft:
		ax = 0
	case diagram.AlignRight:
		ax = 1
	}

	for i, line := range lines {
		s.dc.DrawStringAnchored(line, x, top+(float64(i)+0.5)*lineH, ax, 0.5)
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

	s.setColor(style.Color, style.Opacity)
	s.dc.SetLineWidth(s.canvas.PointsToPixels(style.Width))
	s.dc.DrawLine(x1, y1, bx, by)
	s.dc.Stroke()

	if head > 0 {
		half := head * 0.4
		s.dc.MoveTo(x2, y2)
		s.dc.LineTo(bx-uy*half, by+ux*half)
		s.dc.LineTo(bx+uy*half, by-ux*half)
		s.dc.ClosePath()
		s.dc.Fill()
	}
}

// Flush encodes the image to path.
func (s *Surface) Flush(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch s.encoding {
	case JPEG:
		return jpeg.Encode(f, s.opaque(), &jpeg.Options{Quality: jpegQuality})
	default:
		return s.dc.EncodePNG(f)
	}
}

// ============================================================
// Helpers
// ============================================================

// opaque flattens the drawing onto white for encoders without alpha.
func (s *Surface) opaque() image.Image {
	bg := gg.NewContext(s.dc.Width(), s.dc.Height())
	bg.SetRGB(1, 1, 1)
	bg.Clear()
	bg.DrawImage(s.dc.Image(), 0, 0)
	return bg.Image()
}

func (s *Surface) face(style diagram.TextStyle) font.Face {
	key := faceKey{size: style.Size, bold: style.Bold}
	if f, ok := s.faces[key]; ok {
		return f
	}

	ttf := regularFont
	if style.Bold {
		ttf = boldFont
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    style.Size,
		DPI:     s.canvas.DPI(),
		Hinting: font.HintingFull,
	})
	s.faces[key] = f
	return f
}

func (s *Surface) setColor(c diagram.Color, opacity float64) {
	rgba, err := c.RGBA()
	if err != nil {
		rgba.A = 0
	}
	s.dc.SetRGBA(
		float64(rgba.R)/255,
		float64(rgba.G)/255,
		float64(rgba.B)/255,
		float64(rgba.A)/255*opacity,
	)
}
