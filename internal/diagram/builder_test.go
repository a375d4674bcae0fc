package diagram_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
	"github.com/v0idhrt/boxdiagram/internal/diagram/diagramtest"
)

func newCanvas(t *testing.T) diagram.Canvas {
	t.Helper()
	c, err := diagram.NewCanvas(10, 10, diagram.White)
	require.NoError(t, err)
	return c
}

// shapesAndArrows lists the rect and arrow commands after the background rect.
func shapesAndArrows(t *testing.T, r *diagramtest.Recorder) []diagramtest.Command {
	t.Helper()
	cmds := r.Only(diagramtest.KindRect, diagramtest.KindArrow)
	require.NotEmpty(t, cmds)
	require.Equal(t, r.Canvas.Bounds(), cmds[0].Bounds, "first command paints the background")
	return cmds[1:]
}

func TestRenderTwoBoxesAndArrow(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)

	a := mustShape(t, diagram.R(1, 1, 2, 1), "A")
	bb := mustShape(t, diagram.R(5, 5, 2, 1), "B")
	b.AddShape(a)
	b.AddShape(bb)
	b.AddArrow(mustArrow(t, diagram.At(3, 1.5), diagram.At(5, 5.5)))

	require.NoError(t, b.Render(newCanvas(t), "out.png"))

	rec := opener.Last()
	require.NotNil(t, rec)

	cmds := shapesAndArrows(t, rec)
	require.Len(t, cmds, 3)
	assert.Equal(t, diagramtest.KindRect, cmds[0].Kind)
	assert.Equal(t, a.Bounds(), cmds[0].Bounds)
	assert.Equal(t, diagramtest.KindRect, cmds[1].Kind)
	assert.Equal(t, bb.Bounds(), cmds[1].Bounds)
	assert.Equal(t, diagramtest.KindArrow, cmds[2].Kind)
	assert.Equal(t, diagram.Pt(3, 1.5), cmds[2].From)
	assert.Equal(t, diagram.Pt(5, 5.5), cmds[2].To)

	last := rec.Commands[len(rec.Commands)-1]
	assert.Equal(t, diagramtest.KindFlush, last.Kind)
	assert.Equal(t, "out.png", last.Path)

	texts := rec.Only(diagramtest.KindText)
	require.Len(t, texts, 2)
	assert.Equal(t, "A", texts[0].Text)
	assert.Equal(t, diagram.Pt(2, 1.5), texts[0].At, "labels are centered by default")
	assert.Equal(t, "B", texts[1].Text)
}

func TestRenderDrawsArrowsAfterShapes(t *testing.T) {
	orders := map[string]func(b *diagram.Builder, s diagram.ShapeSpec, a diagram.ArrowSpec){
		"shape first": func(b *diagram.Builder, s diagram.ShapeSpec, a diagram.ArrowSpec) {
			b.AddShape(s)
			b.AddArrow(a)
		},
		"arrow first": func(b *diagram.Builder, s diagram.ShapeSpec, a diagram.ArrowSpec) {
			b.AddArrow(a)
			b.AddShape(s)
		},
	}

	for name, add := range orders {
		t.Run(name, func(t *testing.T) {
			opener := &diagramtest.Opener{}
			b := diagram.NewBuilder(opener.Open)
			add(b, mustShape(t, diagram.R(1, 1, 2, 1), "S"), mustArrow(t, diagram.At(0, 0), diagram.At(9, 9)))

			require.NoError(t, b.Render(newCanvas(t), "order.svg"))

			cmds := shapesAndArrows(t, opener.Last())
			require.Len(t, cmds, 2)
			assert.Equal(t, diagramtest.KindRect, cmds[0].Kind)
			assert.Equal(t, diagramtest.KindArrow, cmds[1].Kind)
		})
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)
	h1 := b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), "A"))
	h2 := b.AddShape(mustShape(t, diagram.R(5, 5, 2, 1), "B"))
	b.AddArrow(mustArrow(t, diagram.AnchorTo(h1, diagram.SideAuto), diagram.AnchorTo(h2, diagram.SideAuto)))
	annotation, err := diagram.NewAnnotation(diagram.Pt(5, 9.5), "Title", diagram.TextStyle{Size: 20, Bold: true}, nil)
	require.NoError(t, err)
	b.AddAnnotation(annotation)

	c := newCanvas(t)
	require.NoError(t, b.Render(c, "first.png"))
	require.NoError(t, b.Render(c, "second.png"))
	require.Len(t, opener.Recorders, 2)

	first := opener.Recorders[0].Commands
	second := opener.Recorders[1].Commands
	require.Equal(t, len(first), len(second))
	assert.Equal(t, first[:len(first)-1], second[:len(second)-1])
	assert.Equal(t, "first.png", first[len(first)-1].Path)
	assert.Equal(t, "second.png", second[len(second)-1].Path)
}

func TestRenderRejectsForeignHandleBeforeDrawing(t *testing.T) {
	other := diagram.NewBuilder(nil)
	foreign := other.AddShape(mustShape(t, diagram.R(0, 0, 1, 1), "X"))

	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)
	b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), "A"))
	b.AddArrow(mustArrow(t, diagram.AnchorTo(foreign, diagram.SideCenter), diagram.At(5, 5)))

	err := b.Render(newCanvas(t), "out.png")
	require.Error(t, err)

	var renderErr *diagram.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "out.png", renderErr.Path)
	assert.ErrorIs(t, err, diagram.ErrUnknownHandle)
	assert.Empty(t, opener.Recorders, "no surface is opened when validation fails")
}

func TestRenderRejectsZeroHandle(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)
	b.AddArrow(mustArrow(t, diagram.AnchorTo(diagram.Handle{}, diagram.SideTop), diagram.At(5, 5)))

	err := b.Render(newCanvas(t), "out.png")
	assert.ErrorIs(t, err, diagram.ErrUnknownHandle)
	assert.Empty(t, opener.Recorders)
}

func TestRenderWrapsFlushFailure(t *testing.T) {
	denied := errors.New("permission denied")
	opener := &diagramtest.Opener{FlushErr: denied}
	b := diagram.NewBuilder(opener.Open)
	b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), "A"))

	err := b.Render(newCanvas(t), "/root/forbidden.png")
	var renderErr *diagram.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, "/root/forbidden.png", renderErr.Path)

	opener.FlushErr = nil
	require.NoError(t, b.Render(newCanvas(t), "ok.png"), "the builder is untouched by a failed render")
}

func TestRenderWrapsOpenFailure(t *testing.T) {
	opener := &diagramtest.Opener{OpenErr: errors.New("unsupported format")}
	b := diagram.NewBuilder(opener.Open)

	err := b.Render(newCanvas(t), "out.bmp")
	var renderErr *diagram.RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestRenderWithoutOpener(t *testing.T) {
	err := diagram.NewBuilder(nil).Render(newCanvas(t), "out.png")
	var renderErr *diagram.RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestAnchoredArrowsClipToShapeBorders(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)
	a := b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), "A"))
	bb := b.AddShape(mustShape(t, diagram.R(5, 5, 2, 1), "B"))
	b.AddArrow(mustArrow(t, diagram.AnchorTo(a, diagram.SideAuto), diagram.AnchorTo(bb, diagram.SideAuto)))
	b.AddArrow(mustArrow(t, diagram.AnchorTo(a, diagram.SideTop), diagram.AnchorTo(bb, diagram.SideLeft)))

	require.NoError(t, b.Render(newCanvas(t), "anchored.png"))

	arrows := opener.Last().Only(diagramtest.KindArrow)
	require.Len(t, arrows, 2)
	assert.InDelta(t, 2.5, arrows[0].From.X, 1e-9)
	assert.InDelta(t, 2.0, arrows[0].From.Y, 1e-9)
	assert.InDelta(t, 5.5, arrows[0].To.X, 1e-9)
	assert.InDelta(t, 5.0, arrows[0].To.Y, 1e-9)

	assert.Equal(t, diagram.Pt(2, 2), arrows[1].From)
	assert.Equal(t, diagram.Pt(5, 5.5), arrows[1].To)
}

func TestAnchorQueries(t *testing.T) {
	b := diagram.NewBuilder(nil)
	h := b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), "A"))

	cases := map[diagram.Side]diagram.Point{
		diagram.SideCenter: diagram.Pt(2, 1.5),
		diagram.SideAuto:   diagram.Pt(2, 1.5),
		diagram.SideTop:    diagram.Pt(2, 2),
		diagram.SideBottom: diagram.Pt(2, 1),
		diagram.SideLeft:   diagram.Pt(1, 1.5),
		diagram.SideRight:  diagram.Pt(3, 1.5),
	}
	for side, want := range cases {
		got, err := b.Anchor(h, side)
		require.NoError(t, err, side.String())
		assert.Equal(t, want, got, side.String())
	}

	_, err := diagram.NewBuilder(nil).Anchor(h, diagram.SideTop)
	assert.ErrorIs(t, err, diagram.ErrUnknownHandle)
}

func TestAnchoredArrowCollapsingFails(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)
	h := b.AddShape(mustShape(t, diagram.R(1, 1, 2, 2), "A"))
	b.AddArrow(mustArrow(t, diagram.AnchorTo(h, diagram.SideAuto), diagram.At(2, 2)))

	err := b.Render(newCanvas(t), "out.png")
	assert.ErrorIs(t, err, diagram.ErrInvalidGeometry)
	assert.Empty(t, opener.Recorders)
}

func TestLegendAndAnnotationsAreDrawnLast(t *testing.T) {
	opener := &diagramtest.Opener{}
	b := diagram.NewBuilder(opener.Open)

	bg := &diagram.Background{Style: diagram.Box("yellow", diagram.NoColor, 0.05, 0.7), Padding: 3}
	protocol, err := diagram.NewAnnotation(diagram.Pt(5.5, 4.3), "HTTPS/REST API", diagram.TextStyle{Size: 7}, bg)
	require.NoError(t, err)
	b.AddAnnotation(protocol)

	entry, err := diagram.NewLegendEntry("#02569B", "Flutter Layer")
	require.NoError(t, err)
	stale, err := diagram.NewLegend(diagram.Pt(0, 5), diagram.DefaultLegendStyle(), entry, entry)
	require.NoError(t, err)
	b.SetLegend(stale)
	legend, err := diagram.NewLegend(diagram.Pt(0, 9.5), diagram.DefaultLegendStyle(), entry)
	require.NoError(t, err)
	b.SetLegend(legend)

	b.AddShape(mustShape(t, diagram.R(1, 1, 2, 1), ""))
	b.AddArrow(mustArrow(t, diagram.At(0, 0), diagram.At(1, 1)))

	require.NoError(t, b.Render(newCanvas(t), "out.svg"))

	var kinds []diagramtest.Kind
	for _, c := range opener.Last().Commands {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []diagramtest.Kind{
		diagramtest.KindRect,  // background
		diagramtest.KindRect,  // shape
		diagramtest.KindArrow, // arrow
		diagramtest.KindRect,  // legend frame
		diagramtest.KindRect,  // swatch
		diagramtest.KindText,  // legend label
		diagramtest.KindRect,  // annotation background
		diagramtest.KindText,  // annotation
		diagramtest.KindFlush,
	}, kinds)

	cmds := opener.Last().Commands
	frame := cmds[3].Bounds
	assert.Equal(t, 0.0, frame.X)
	assert.InDelta(t, 9.5, frame.Y+frame.Height, 1e-9, "legend hangs from its top-left corner")

	bgRect := cmds[6].Bounds
	assert.Less(t, bgRect.X, 5.5)
	assert.Greater(t, bgRect.X+bgRect.Width, 5.5)
	assert.Less(t, bgRect.Y, 4.3)
	assert.Greater(t, bgRect.Y+bgRect.Height, 4.3)
}
