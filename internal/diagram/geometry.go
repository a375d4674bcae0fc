package diagram

import "math"

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Rect is an axis aligned rectangle; (X, Y) is its bottom-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func R(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Side selects the point of a shape an arrow endpoint attaches to.
type Side int

const (
	// SideAuto clips the connector at the shape boundary, facing the other endpoint.
	SideAuto Side = iota
	SideCenter
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideAuto:
		return "auto"
	case SideCenter:
		return "center"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// pointOn returns the fixed attachment point for side. SideAuto resolves to the
// center; callers clip it with boundaryToward.
func (r Rect) pointOn(side Side) Point {
	c := r.Center()
	switch side {
	case SideTop:
		return Point{X: c.X, Y: r.Y + r.Height}
	case SideBottom:
		return Point{X: c.X, Y: r.Y}
	case SideLeft:
		return Point{X: r.X, Y: c.Y}
	case SideRight:
		return Point{X: r.X + r.Width, Y: c.Y}
	default:
		return c
	}
}

// boundaryToward intersects the ray from the center of r toward target with the
// border of r. ok is false when target coincides with the center.
func (r Rect) boundaryToward(target Point) (Point, bool) {
	c := r.Center()
	dx := target.X - c.X
	dy := target.Y - c.Y
	if dx == 0 && dy == 0 {
		return c, false
	}

	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, (r.Width/2)/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, (r.Height/2)/math.Abs(dy))
	}
	return Point{X: c.X + dx*t, Y: c.Y + dy*t}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
