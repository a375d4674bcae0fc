package diagram

import (
	"fmt"
	"math"
)

// ============================================================
// Canvas
// ============================================================

const (
	DefaultUnitSize = 72.0  // points per canvas unit
	DefaultDPI      = 100.0 // output pixels per inch
	pointsPerInch   = 72.0

	// MaxPixels caps the image area a drawing surface allocates.
	MaxPixels = 1 << 28
)

// Canvas is the coordinate space of one diagram. It is immutable; the With
// methods return modified copies.
type Canvas struct {
	width      float64
	height     float64
	background Color
	unitSize   float64
	dpi        float64
}

type CanvasOption func(*Canvas)

// WithUnitSize sets how many points one canvas unit spans.
func WithUnitSize(points float64) CanvasOption {
	return func(c *Canvas) { c.unitSize = points }
}

// WithDPI sets the output resolution.
func WithDPI(dpi float64) CanvasOption {
	return func(c *Canvas) { c.dpi = dpi }
}

func NewCanvas(width, height float64, background Color, opts ...CanvasOption) (Canvas, error) {
	c := Canvas{
		width:      width,
		height:     height,
		background: background,
		unitSize:   DefaultUnitSize,
		dpi:        DefaultDPI,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if err := c.validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

func (c Canvas) validate() error {
	if !isFinite(c.width) || c.width <= 0 || !isFinite(c.height) || c.height <= 0 {
		return fmt.Errorf("%w: canvas %vx%v must have positive size", ErrInvalidDimension, c.width, c.height)
	}
	if !isFinite(c.unitSize) || c.unitSize <= 0 {
		return fmt.Errorf("%w: unit size %v must be positive", ErrInvalidDimension, c.unitSize)
	}
	if !isFinite(c.dpi) || c.dpi <= 0 {
		return fmt.Errorf("%w: dpi %v must be positive", ErrInvalidDimension, c.dpi)
	}
	if err := c.background.validate("background"); err != nil {
		return err
	}
	return nil
}

func (c Canvas) Width() float64 { return c.width }
func (c Canvas) Height() float64 { return c.height }
func (c Canvas) Background() Color { return c.background }
func (c Canvas) UnitSize() float64 { return c.unitSize }
func (c Canvas) DPI() float64 { return c.dpi }

// Bounds covers the whole canvas.
func (c Canvas) Bounds() Rect {
	return Rect{Width: c.width, Height: c.height}
}

// WithDPI returns a copy rendered at another resolution.
func (c Canvas) WithDPI(dpi float64) (Canvas, error) {
	c.dpi = dpi
	if err := c.validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

// ============================================================
// Unit conversion
// ============================================================

// PixelsPerUnit is the output scale of one canvas unit.
func (c Canvas) PixelsPerUnit() float64 {
	return c.unitSize * c.dpi / pointsPerInch
}

// PixelSize is the size of the output image in whole pixels.
func (c Canvas) PixelSize() (int, int) {
	ppu := c.PixelsPerUnit()
	return int(math.Ceil(c.width * ppu)), int(math.Ceil(c.height * ppu))
}

// CheckPixels fails with ErrCanvasTooLarge when the output image would cover
// more than limit pixels.
func (c Canvas) CheckPixels(limit int64) error {
	ppu := c.PixelsPerUnit()
	w, h := math.Ceil(c.width*ppu), math.Ceil(c.height*ppu)
	if w*h > float64(limit) {
		return fmt.Errorf("%w: %gx%g px exceeds %d px", ErrCanvasTooLarge, w, h, limit)
	}
	return nil
}

// ToPixels maps a canvas point to surface pixels, origin top-left.
func (c Canvas) ToPixels(p Point) (float64, float64) {
	ppu := c.PixelsPerUnit()
	return p.X * ppu, (c.height - p.Y) * ppu
}

// UnitsToPixels scales a canvas length.
func (c Canvas) UnitsToPixels(v float64) float64 {
	return v * c.PixelsPerUnit()
}

// PointsToPixels scales a typographic length (font size, line width).
func (c Canvas) PointsToPixels(pt float64) float64 {
	return pt * c.dpi / pointsPerInch
}

// PointsToUnits converts a typographic length into canvas units.
func (c Canvas) PointsToUnits(pt float64) float64 {
	return pt / c.unitSize
}
