package diagram

import (
	"errors"
	"fmt"
)

// ============================================================
// Errors
// ============================================================

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidGeometry  = errors.New("invalid geometry")
	ErrInvalidStyle     = errors.New("invalid style")
	ErrUnknownHandle    = errors.New("unknown shape handle")
	ErrCanvasTooLarge   = errors.New("canvas too large")
)

// RenderError reports a failed Render call. Err is either ErrUnknownHandle,
// ErrInvalidGeometry (an anchored arrow collapsed to a point) or the error
// returned by the drawing surface.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func invalidStyle(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStyle, fmt.Sprintf(format, args...))
}

func invalidGeometry(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}
