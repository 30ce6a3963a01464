package pathplanner

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Tag marks how the planner may treat a Position.
type Tag int

const (
	// TagFree positions may be moved by smoothing.
	TagFree Tag = 0
	// TagPinned positions keep their exact coordinates through every stage.
	TagPinned Tag = 1
)

// Position is a point on the ground plane carrying a tag and an opaque payload.
// The payload is never read by the geometry code.
type Position[T any] struct {
	X    float64
	Y    float64
	Tag  Tag
	Data T
}

// MakeTagged creates a Position with the given tag and a zero payload.
func MakeTagged[T any](tag Tag, x, y float64) Position[T] {
	return Position[T]{X: x, Y: y, Tag: tag}
}

// Point returns the coordinates as an r2.Point.
func (p Position[T]) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Pinned reports whether the position is an immutable anchor.
func (p Position[T]) Pinned() bool {
	return p.Tag == TagPinned
}

// movedTo returns a copy of p at pt, keeping its tag and payload.
func (p Position[T]) movedTo(pt r2.Point) Position[T] {
	p.X, p.Y = pt.X, pt.Y
	return p
}

// Path is an ordered sequence of positions; the order is the direction of travel.
type Path[T any] []Position[T]

// Clone returns a copy of the path backed by a new slice.
func (p Path[T]) Clone() Path[T] {
	if p == nil {
		return nil
	}
	out := make(Path[T], len(p))
	copy(out, p)
	return out
}

// Points returns the coordinates of every position.
func (p Path[T]) Points() []r2.Point {
	return lo.Map(p, func(pos Position[T], _ int) r2.Point { return pos.Point() })
}

// Length returns the polyline length of the path.
func (p Path[T]) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i].Point().Sub(p[i-1].Point()).Norm()
	}
	return total
}

// Pin tags the positions at the given indices as pinned. Negative indices count back
// from the end, so Pin(-2, -1) pins the last two positions.
func (p Path[T]) Pin(indices ...int) error {
	for _, idx := range indices {
		i := idx
		if i < 0 {
			i += len(p)
		}
		if i < 0 || i >= len(p) {
			return errors.Errorf("pin index %d out of range for path of %d positions", idx, len(p))
		}
		p[i].Tag = TagPinned
	}
	return nil
}
