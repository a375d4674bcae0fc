// Package diagramtest provides a recording drawing surface for tests.
package diagramtest

import (
	"fmt"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

type Kind string

const (
	KindRect  Kind = "rect"
	KindText  Kind = "text"
	KindArrow Kind = "arrow"
	KindFlush Kind = "flush"
)

// Command is one recorded surface call.
type Command struct {
	Kind   Kind
	Bounds diagram.Rect
	Box    diagram.BoxStyle
	At     diagram.Point
	Text   string
	Font   diagram.TextStyle
	From   diagram.Point
	To     diagram.Point
	Arrow  diagram.ArrowStyle
	Path   string
}

func (c Command) String() string {
	switch c.Kind {
	case KindRect:
		return fmt.Sprintf("rect(%v)", c.Bounds)
	case KindText:
		return fmt.Sprintf("text(%q@%v)", c.Text, c.At)
	case KindArrow:
		return fmt.Sprintf("arrow(%v->%v)", c.From, c.To)
	default:
		return fmt.Sprintf("flush(%s)", c.Path)
	}
}

// Recorder is a diagram.Surface that keeps every call.
type Recorder struct {
	Canvas   diagram.Canvas
	Commands []Command
	FlushErr error
}

func (r *Recorder) DrawRoundedRect(bounds diagram.Rect, style diagram.BoxStyle) {
	r.Commands = append(r.Commands, Command{Kind: KindRect, Bounds: bounds, Box: style})
}

func (r *Recorder) DrawText(at diagram.Point, text string, style diagram.TextStyle) {
	r.Commands = append(r.Commands, Command{Kind: KindText, At: at, Text: text, Font: style})
}

func (r *Recorder) DrawArrow(from, to diagram.Point, style diagram.ArrowStyle) {
	r.Commands = append(r.Commands, Command{Kind: KindArrow, From: from, To: to, Arrow: style})
}

func (r *Recorder) Flush(path string) error {
	r.Commands = append(r.Commands, Command{Kind: KindFlush, Path: path})
	return r.FlushErr
}

// Only filters the recorded commands down to the given kinds.
func (r *Recorder) Only(kinds ...Kind) []Command {
	var out []Command
	for _, c := range r.Commands {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Opener hands out recorders and remembers them in opening order.
type Opener struct {
	Recorders []*Recorder
	FlushErr  error
	OpenErr   error
}

func (o *Opener) Open(c diagram.Canvas, path string) (diagram.Surface, error) {
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	r := &Recorder{Canvas: c, FlushErr: o.FlushErr}
	o.Recorders = append(o.Recorders, r)
	return r, nil
}

// Last is the most recently opened recorder, nil when nothing was opened.
func (o *Opener) Last() *Recorder {
	if len(o.Recorders) == 0 {
		return nil
	}
	return o.Recorders[len(o.Recorders)-1]
}
