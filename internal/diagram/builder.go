package diagram

import (
	"fmt"

	"github.com/google/uuid"
)

// ============================================================
// Handles
// ============================================================

// Handle refers to a shape added to a particular Builder.
type Handle struct {
	owner uuid.UUID
	index int
}

func (h Handle) IsZero() bool {
	return h.owner == uuid.Nil
}

func (h Handle) String() string {
	if h.IsZero() {
		return "shape(nil)"
	}
	return fmt.Sprintf("shape(%s#%d)", h.owner, h.index)
}

// ============================================================
// Builder
// ============================================================

// Builder collects the elements of one diagram and renders them. Elements are
// append-only and never modified once added, so Render can be called any
// number of times. A Builder is not safe for concurrent use.
type Builder struct {
	id          uuid.UUID
	open        Opener
	shapes      []ShapeSpec
	arrows      []ArrowSpec
	legend      *LegendSpec
	annotations []AnnotationSpec
}

func NewBuilder(open Opener) *Builder {
	return &Builder{
		id:   uuid.New(),
		open: open,
	}
}

func (b *Builder) AddShape(s ShapeSpec) Handle {
	b.shapes = append(b.shapes, s)
	return Handle{owner: b.id, index: len(b.shapes) - 1}
}

func (b *Builder) AddArrow(a ArrowSpec) {
	b.arrows = append(b.arrows, a)
}

// SetLegend replaces any previously set legend.
func (b *Builder) SetLegend(l LegendSpec) {
	b.legend = &l
}

func (b *Builder) AddAnnotation(a AnnotationSpec) {
	b.annotations = append(b.annotations, a)
}

// Counts reports how many shapes, arrows and annotations were added.
func (b *Builder) Counts() (shapes, arrows, annotations int) {
	return len(b.shapes), len(b.arrows), len(b.annotations)
}

func (b *Builder) HasLegend() bool { return b.legend != nil }

// Shape looks up a shape by handle.
func (b *Builder) Shape(h Handle) (ShapeSpec, error) {
	if h.owner != b.id || h.index < 0 || h.index >= len(b.shapes) {
		return ShapeSpec{}, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return b.shapes[h.index], nil
}

// Anchor returns the attachment point of a shape. SideAuto yields the center.
func (b *Builder) Anchor(h Handle, side Side) (Point, error) {
	s, err := b.Shape(h)
	if err != nil {
		return Point{}, err
	}
	if side < SideAuto || side > SideRight {
		return Point{}, invalidGeometry("unknown side %d", side)
	}
	return s.bounds.pointOn(side), nil
}

// ============================================================
// Endpoint resolution
// ============================================================

// reference is the point an endpoint aims at before boundary clipping.
func (b *Builder) reference(e Endpoint) (Point, error) {
	if !e.anchored {
		return e.point, nil
	}
	return b.Anchor(e.handle, e.side)
}

func (b *Builder) resolveEndpoint(e, other Endpoint) (Point, error) {
	if !e.anchored || e.side != SideAuto {
		return b.reference(e)
	}

	s, err := b.Shape(e.handle)
	if err != nil {
		return Point{}, err
	}
	target, err := b.reference(other)
	if err != nil {
		return Point{}, err
	}
	p, ok := s.bounds.boundaryToward(target)
	if !ok {
		return Point{}, invalidGeometry("arrow endpoint %s points at its own center", e.handle)
	}
	return p, nil
}

func (b *Builder) resolveArrow(a ArrowSpec) (Point, Point, error) {
	from, err := b.resolveEndpoint(a.from, a.to)
	if err != nil {
		return Point{}, Point{}, err
	}
	to, err := b.resolveEndpoint(a.to, a.from)
	if err != nil {
		return Point{}, Point{}, err
	}
	if from == to {
		return Point{}, Point{}, invalidGeometry("arrow collapses to the point %v", from)
	}
	return from, to, nil
}
