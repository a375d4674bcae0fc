package diagram

// Surface receives draw commands in canvas coordinates and persists the
// drawing when flushed. Implementations own all rasterization details.
type Surface interface {
	DrawRoundedRect(bounds Rect, style BoxStyle)
	DrawText(at Point, text string, style TextStyle)
	DrawArrow(from, to Point, style ArrowStyle)
	Flush(path string) error
}

// Opener creates the surface a canvas is rendered onto. path is the eventual
// output file so implementations can pick a format from it.
type Opener func(c Canvas, path string) (Surface, error)
