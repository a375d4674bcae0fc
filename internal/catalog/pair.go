package catalog

import "github.com/v0idhrt/boxdiagram/internal/diagram"

func init() {
	register(Diagram{
		Name:        "pair",
		Title:       "Two boxes",
		Description: "Two labeled boxes joined by a connector clipped to their borders.",
		Build:       buildPair,
	})
}

func buildPair(b *diagram.Builder) (diagram.Canvas, error) {
	s := &sketch{b: b}
	style := diagram.Box("#02569B", diagram.Black, 0.05, 0.8)

	a := s.shape(diagram.R(1, 1, 2, 1), style, label("A", 10, true, diagram.White, nil))
	z := s.shape(diagram.R(5, 5, 2, 1), style, label("B", 10, true, diagram.White, nil))
	s.arrow(diagram.AnchorTo(a, diagram.SideAuto), diagram.AnchorTo(z, diagram.SideAuto), diagram.DefaultArrowStyle())
	if s.err != nil {
		return diagram.Canvas{}, s.err
	}
	return diagram.NewCanvas(10, 10, diagram.White)
}
