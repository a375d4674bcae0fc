package diagram

// ============================================================
// Styles
// ============================================================

// DefaultBorderWidth is used when a painted border has no explicit width.
const DefaultBorderWidth = 1.0

type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// BoxStyle paints a rounded rectangle. Radius is in canvas units, BorderWidth
// in points. Opacity applies to both fill and border.
type BoxStyle struct {
	Radius      float64
	Fill        Color
	Border      Color
	BorderWidth float64
	Opacity     float64
}

// Box is a BoxStyle with the default border width.
func Box(fill, border Color, radius, opacity float64) BoxStyle {
	return BoxStyle{Radius: radius, Fill: fill, Border: border, Opacity: opacity}
}

// StrokeWidth is the border width in points, zero when the border is not painted.
func (s BoxStyle) StrokeWidth() float64 {
	if s.Border.IsNone() {
		return 0
	}
	if s.BorderWidth == 0 {
		return DefaultBorderWidth
	}
	return s.BorderWidth
}

func (s BoxStyle) validate() error {
	if !isFinite(s.Opacity) || s.Opacity < 0 || s.Opacity > 1 {
		return invalidStyle("opacity %v outside [0,1]", s.Opacity)
	}
	if !isFinite(s.BorderWidth) || s.BorderWidth < 0 {
		return invalidStyle("border width %v is negative", s.BorderWidth)
	}
	if err := s.Fill.validate("fill"); err != nil {
		return err
	}
	return s.Border.validate("border")
}

// TextStyle describes how a text block is placed relative to its anchor point.
// Size is in points. An empty Color draws black text.
type TextStyle struct {
	Size   float64
	Color  Color
	Bold   bool
	HAlign HAlign
	VAlign VAlign
}

// Ink is the color text is drawn with.
func (s TextStyle) Ink() Color {
	if s.Color.IsNone() {
		return Black
	}
	return s.Color
}

func (s TextStyle) validate() error {
	if !isFinite(s.Size) || s.Size <= 0 {
		return invalidStyle("font size %v must be positive", s.Size)
	}
	if s.HAlign < AlignCenter || s.HAlign > AlignRight {
		return invalidStyle("unknown horizontal alignment %d", s.HAlign)
	}
	if s.VAlign < AlignMiddle || s.VAlign > AlignBottom {
		return invalidStyle("unknown vertical alignment %d", s.VAlign)
	}
	return s.Color.validate("text color")
}

// ArrowStyle describes a straight connector. HeadSize and Width are in points.
type ArrowStyle struct {
	HeadSize float64
	Width    float64
	Color    Color
	Opacity  float64
}

// DefaultArrowStyle is a thin, slightly transparent black connector.
func DefaultArrowStyle() ArrowStyle {
	return ArrowStyle{HeadSize: 10, Width: 1.5, Color: Black, Opacity: 0.7}
}

func (s ArrowStyle) validate() error {
	if !isFinite(s.HeadSize) || s.HeadSize < 0 {
		return invalidStyle("arrowhead size %v is negative", s.HeadSize)
	}
	if !isFinite(s.Width) || s.Width <= 0 {
		return invalidStyle("arrow width %v must be positive", s.Width)
	}
	if !isFinite(s.Opacity) || s.Opacity < 0 || s.Opacity > 1 {
		return invalidStyle("opacity %v outside [0,1]", s.Opacity)
	}
	if s.Color.IsNone() {
		return invalidStyle("arrow color is required")
	}
	return s.Color.validate("arrow color")
}

// Background is the box drawn behind an annotation. Padding is in points.
type Background struct {
	Style   BoxStyle
	Padding float64
}

func (b Background) validate() error {
	if !isFinite(b.Padding) || b.Padding < 0 {
		return invalidStyle("padding %v is negative", b.Padding)
	}
	if b.Style.Radius < 0 {
		return invalidStyle("background radius %v is negative", b.Style.Radius)
	}
	return b.Style.validate()
}

// LegendStyle controls the legend key. FontSize is in points.
type LegendStyle struct {
	FontSize      float64
	SwatchOpacity float64
	Frame         BoxStyle
}

// DefaultLegendStyle mirrors a plotting library legend: small text on a light frame.
func DefaultLegendStyle() LegendStyle {
	return LegendStyle{
		FontSize:      8,
		SwatchOpacity: 0.8,
		Frame:         BoxStyle{Radius: 0.05, Fill: White, Border: "#cccccc", Opacity: 0.8},
	}
}

func (s LegendStyle) validate() error {
	if !isFinite(s.FontSize) || s.FontSize <= 0 {
		return invalidStyle("legend font size %v must be positive", s.FontSize)
	}
	if !isFinite(s.SwatchOpacity) || s.SwatchOpacity < 0 || s.SwatchOpacity > 1 {
		return invalidStyle("swatch opacity %v outside [0,1]", s.SwatchOpacity)
	}
	if s.Frame.Radius < 0 {
		return invalidStyle("legend frame radius %v is negative", s.Frame.Radius)
	}
	return s.Frame.validate()
}
