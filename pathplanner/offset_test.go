package pathplanner

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestOffsetStraight(t *testing.T) {
	center := Path[string]{
		{X: 0, Y: 0, Tag: TagPinned, Data: "a"},
		{X: 1, Y: 0, Data: "b"},
		{X: 2, Y: 0, Data: "c"},
	}
	left, right, err := Offset(center, 0.2)
	test.That(t, err, test.ShouldBeNil)
	for i := range center {
		test.That(t, left[i].X, test.ShouldAlmostEqual, center[i].X)
		test.That(t, left[i].Y, test.ShouldAlmostEqual, 0.1)
		test.That(t, right[i].X, test.ShouldAlmostEqual, center[i].X)
		test.That(t, right[i].Y, test.ShouldAlmostEqual, -0.1)
		test.That(t, left[i].Data, test.ShouldEqual, center[i].Data)
		test.That(t, right[i].Tag, test.ShouldEqual, center[i].Tag)
	}
}

func TestOffsetSymmetry(t *testing.T) {
	var center Path[int]
	for i := 0; i <= 30; i++ {
		theta := float64(i) * 0.1
		center = append(center, Position[int]{X: 3 * math.Cos(theta), Y: 2 * math.Sin(theta)})
	}
	left, right, err := Offset(center, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, left, test.ShouldHaveLength, len(center))
	test.That(t, right, test.ShouldHaveLength, len(center))

	for i := range center {
		c := center[i].Point()
		toLeft := left[i].Point().Sub(c)
		toRight := right[i].Point().Sub(c)
		test.That(t, toLeft.Norm(), test.ShouldAlmostEqual, 0.5, 1e-9)
		test.That(t, toRight.Norm(), test.ShouldAlmostEqual, 0.5, 1e-9)
		// collinear through the center, on opposite sides
		test.That(t, toLeft.Cross(toRight), test.ShouldAlmostEqual, 0., 1e-9)
		test.That(t, toLeft.Dot(toRight), test.ShouldAlmostEqual, -0.25, 1e-9)
	}

	// counter-clockwise travel keeps the left wheel inside the ellipse
	test.That(t, left[5].Point().Norm(), test.ShouldBeLessThan, center[5].Point().Norm())
}

func TestOffsetRepeatedPoints(t *testing.T) {
	center := Path[int]{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 2}}
	left, right, err := Offset(center, 2)
	test.That(t, err, test.ShouldBeNil)
	for i := range center {
		test.That(t, left[i].X, test.ShouldAlmostEqual, -1.)
		test.That(t, right[i].X, test.ShouldAlmostEqual, 1.)
		test.That(t, left[i].Y, test.ShouldAlmostEqual, center[i].Y)
	}
}

func TestOffsetErrors(t *testing.T) {
	_, _, err := Offset(Path[int]{}, 1)
	test.That(t, errors.Is(err, ErrEmptyPath), test.ShouldBeTrue)

	_, _, err = Offset(Path[int]{{X: 0}, {X: 1}}, -1)
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = Offset(Path[int]{{X: 2, Y: 2}}, 1)
	test.That(t, errors.Is(err, ErrZeroLengthPath), test.ShouldBeTrue)

	_, _, err = Offset(Path[int]{{X: 2, Y: 2}, {X: 2, Y: 2}}, 1)
	test.That(t, errors.Is(err, ErrZeroLengthPath), test.ShouldBeTrue)
}
