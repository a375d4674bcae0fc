package diagram_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

func TestNewShapeRejectsOpacityOutsideUnitRange(t *testing.T) {
	for _, opacity := range []float64{-0.01, 1.01, 2, -5, math.NaN()} {
		_, err := diagram.NewShape(diagram.R(1, 1, 2, 1), diagram.Box("#02569B", diagram.Black, 0.05, opacity), nil)
		assert.ErrorIs(t, err, diagram.ErrInvalidStyle, "opacity %v", opacity)
	}
	for _, opacity := range []float64{0, 0.5, 1} {
		_, err := diagram.NewShape(diagram.R(1, 1, 2, 1), diagram.Box("#02569B", diagram.Black, 0.05, opacity), nil)
		assert.NoError(t, err, "opacity %v", opacity)
	}
}

func TestNewShapeGeometry(t *testing.T) {
	style := diagram.Box(diagram.White, diagram.Black, 0, 1)

	_, err := diagram.NewShape(diagram.R(0, 0, 0, 1), style, nil)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)

	_, err = diagram.NewShape(diagram.R(0, 0, 1, -1), style, nil)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)

	_, err = diagram.NewShape(diagram.R(math.NaN(), 0, 1, 1), style, nil)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)

	tooRound := diagram.Box(diagram.White, diagram.Black, 0.6, 1)
	_, err = diagram.NewShape(diagram.R(0, 0, 2, 1), tooRound, nil)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)
}

func TestNewShapeValidatesLabel(t *testing.T) {
	style := diagram.Box(diagram.White, diagram.Black, 0, 1)

	_, err := diagram.NewShape(diagram.R(0, 0, 1, 1), style, &diagram.Label{Text: "  ", Style: diagram.TextStyle{Size: 8}})
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	_, err = diagram.NewShape(diagram.R(0, 0, 1, 1), style, &diagram.Label{Text: "A", Style: diagram.TextStyle{Size: 0}})
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	_, err = diagram.NewShape(diagram.R(0, 0, 1, 1), style, &diagram.Label{Text: "A", Style: diagram.TextStyle{Size: 8, Color: "#zzz"}})
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)
}

func TestShapeLabelIsCopied(t *testing.T) {
	at := diagram.Pt(2, 3)
	label := &diagram.Label{Text: "Supabase", Style: diagram.TextStyle{Size: 12, Bold: true}, At: &at}
	s, err := diagram.NewShape(diagram.R(0.5, 2.5, 3.5, 1.5), diagram.Box("#3ECF8E", diagram.Black, 0.05, 0.8), label)
	require.NoError(t, err)

	at.X = 99
	label.Text = "changed"

	got, ok := s.Label()
	require.True(t, ok)
	assert.Equal(t, "Supabase", got.Text)
	assert.Equal(t, diagram.Pt(2, 3), *got.At)
}

func TestNewArrowRejectsDegenerateArrows(t *testing.T) {
	style := diagram.DefaultArrowStyle()

	_, err := diagram.NewArrow(diagram.At(3, 1.5), diagram.At(3, 1.5), style)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)

	b := diagram.NewBuilder(nil)
	h := b.AddShape(mustShape(t, diagram.R(0, 0, 1, 1), "A"))
	_, err = diagram.NewArrow(diagram.AnchorTo(h, diagram.SideTop), diagram.AnchorTo(h, diagram.SideBottom), style)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)

	_, err = diagram.NewArrow(diagram.At(math.Inf(1), 0), diagram.At(1, 1), style)
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)
}

func TestNewArrowValidatesStyle(t *testing.T) {
	cases := map[string]diagram.ArrowStyle{
		"opacity": {HeadSize: 10, Width: 1, Color: diagram.Black, Opacity: 1.2},
		"width":   {HeadSize: 10, Width: 0, Color: diagram.Black, Opacity: 1},
		"head":    {HeadSize: -1, Width: 1, Color: diagram.Black, Opacity: 1},
		"color":   {HeadSize: 10, Width: 1, Opacity: 1},
	}
	for name, style := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := diagram.NewArrow(diagram.At(0, 0), diagram.At(1, 1), style)
			assert.ErrorIs(t, err, diagram.ErrInvalidStyle)
		})
	}
}

func TestLegendConstruction(t *testing.T) {
	_, err := diagram.NewLegendEntry("#02569B", "")
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	_, err = diagram.NewLegendEntry(diagram.NoColor, "Flutter Layer")
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	_, err = diagram.NewLegend(diagram.Pt(0, 9.5), diagram.DefaultLegendStyle())
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	first, err := diagram.NewLegendEntry("#02569B", "Flutter Layer")
	require.NoError(t, err)
	second, err := diagram.NewLegendEntry("#3ECF8E", "Supabase Backend")
	require.NoError(t, err)

	legend, err := diagram.NewLegend(diagram.Pt(0, 9.5), diagram.DefaultLegendStyle(), first, second)
	require.NoError(t, err)
	require.Equal(t, 2, legend.Len())

	entries := legend.Entries()
	assert.Equal(t, "Flutter Layer", entries[0].Label())
	assert.Equal(t, "Supabase Backend", entries[1].Label())

	entries[0] = second
	assert.Equal(t, "Flutter Layer", legend.Entries()[0].Label(), "entries are not shared")
}

func TestNewAnnotation(t *testing.T) {
	style := diagram.TextStyle{Size: 7}

	_, err := diagram.NewAnnotation(diagram.Pt(5.5, 4.3), "", style, nil)
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	bad := &diagram.Background{Style: diagram.Box("yellow", diagram.NoColor, 0.05, 1.7), Padding: 3}
	_, err = diagram.NewAnnotation(diagram.Pt(5.5, 4.3), "HTTPS/REST API", style, bad)
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	negative := &diagram.Background{Style: diagram.Box("yellow", diagram.NoColor, 0.05, 0.7), Padding: -1}
	_, err = diagram.NewAnnotation(diagram.Pt(5.5, 4.3), "HTTPS/REST API", style, negative)
	assert.ErrorIs(t, err, diagram.ErrInvalidStyle)

	a, err := diagram.NewAnnotation(diagram.Pt(5.5, 4.3), "HTTPS/REST API", style, nil)
	require.NoError(t, err)
	_, ok := a.Background()
	assert.False(t, ok)
}

func TestColorParsing(t *testing.T) {
	cases := []struct {
		in      diagram.Color
		hex     string
		wantErr bool
	}{
		{"#02569B", "#02569b", false},
		{"#fff", "#ffffff", false},
		{"#34495E80", "#34495e", false},
		{"lightgray", "#d3d3d3", false},
		{"Yellow", "#ffff00", false},
		{"none", "none", false},
		{"", "none", false},
		{"#12345", "", true},
		{"octarine", "", true},
	}
	for _, tc := range cases {
		_, err := tc.in.RGBA()
		if tc.wantErr {
			assert.Error(t, err, "color %q", tc.in)
			continue
		}
		require.NoError(t, err, "color %q", tc.in)
		assert.Equal(t, tc.hex, tc.in.Hex(), "color %q", tc.in)
	}

	assert.InDelta(t, 128.0/255, diagram.Color("#34495E80").Alpha(), 1e-9)
}

func mustShape(t *testing.T, bounds diagram.Rect, label string) diagram.ShapeSpec {
	t.Helper()
	var l *diagram.Label
	if label != "" {
		l = &diagram.Label{Text: label, Style: diagram.TextStyle{Size: 10, Bold: true}}
	}
	s, err := diagram.NewShape(bounds, diagram.Box("#02569B", diagram.Black, 0.05, 0.8), l)
	require.NoError(t, err)
	return s
}

func mustArrow(t *testing.T, from, to diagram.Endpoint) diagram.ArrowSpec {
	t.Helper()
	a, err := diagram.NewArrow(from, to, diagram.DefaultArrowStyle())
	require.NoError(t, err)
	return a
}
