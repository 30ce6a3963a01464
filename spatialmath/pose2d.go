// Package spatialmath defines planar poses and the vector helpers the planner builds on.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Pose2D is a position on the ground plane plus a heading in radians, measured
// counter-clockwise from the +X axis.
type Pose2D struct {
	Point r2.Point
	Theta float64
}

// NewPose2D creates a pose at (x, y) with the given heading.
func NewPose2D(x, y, theta float64) Pose2D {
	return Pose2D{Point: r2.Point{X: x, Y: y}, Theta: theta}
}

// PoseFacing returns a pose at from whose heading points toward to.
// If the points coincide the heading is zero.
func PoseFacing(from, to r2.Point) Pose2D {
	d := to.Sub(from)
	if d.Norm() == 0 {
		return Pose2D{Point: from}
	}
	return Pose2D{Point: from, Theta: math.Atan2(d.Y, d.X)}
}

// Heading returns the unit vector the pose is facing.
func (p Pose2D) Heading() r2.Point {
	return r2.Point{X: math.Cos(p.Theta), Y: math.Sin(p.Theta)}
}

// Advance performs one first-order Euler step: the position moves v*dt along the current
// heading, then the heading turns by w*dt.
func (p Pose2D) Advance(v, w, dt float64) Pose2D {
	return Pose2D{
		Point: p.Point.Add(p.Heading().Mul(v * dt)),
		Theta: p.Theta + w*dt,
	}
}

// LeftNormal returns the unit vector perpendicular to dir, rotated counter-clockwise.
// The second return is false if dir has zero length.
func LeftNormal(dir r2.Point) (r2.Point, bool) {
	if dir.Norm() == 0 {
		return r2.Point{}, false
	}
	return dir.Normalize().Ortho(), true
}

// TurningAngle returns the signed angle from direction a to direction b in (-pi, pi].
// Positive values are counter-clockwise (left) turns.
func TurningAngle(a, b r2.Point) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// R2AlmostEqual reports whether two points lie within epsilon of each other.
func R2AlmostEqual(a, b r2.Point, epsilon float64) bool {
	return a.Sub(b).Norm() <= epsilon
}
