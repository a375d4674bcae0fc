package diagram

import (
	"strings"
	"unicode/utf8"
)

// ============================================================
// Text metrics
// ============================================================

const (
	// LineSpacing is the distance between baselines relative to the font size.
	LineSpacing = 1.2

	regularAdvance = 0.55
	boldAdvance    = 0.6
)

// SplitLines splits a text block into its lines.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// TextExtent estimates the size of a text block in points. It is used for
// layout decisions (legend frames, annotation backgrounds) that must not depend
// on the fonts a particular surface has available.
func TextExtent(text string, style TextStyle) (float64, float64) {
	advance := regularAdvance
	if style.Bold {
		advance = boldAdvance
	}

	lines := SplitLines(text)
	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return float64(longest) * style.Size * advance, float64(len(lines)) * style.Size * LineSpacing
}

// textBox is the canvas area a text block occupies once aligned on at.
func textBox(c Canvas, at Point, text string, style TextStyle) Rect {
	wPt, hPt := TextExtent(text, style)
	w := c.PointsToUnits(wPt)
	h := c.PointsToUnits(hPt)

	r := Rect{Width: w, Height: h}
	switch style.HAlign {
	case AlignLeft:
		r.X = at.X
	case AlignRight:
		r.X = at.X - w
	default:
		r.X = at.X - w/2
	}
	switch style.VAlign {
	case AlignTop:
		r.Y = at.Y - h
	case AlignBottom:
		r.Y = at.Y
	default:
		r.Y = at.Y - h/2
	}
	return r
}
