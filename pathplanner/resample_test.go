package pathplanner

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestResampleSpacing(t *testing.T) {
	path := Path[int]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2.5, Y: 0}, {X: 4.25, Y: 0}}
	out, curvature, err := Resample(path, 0.3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldHaveLength, len(out))

	// ceil(4.25/0.3) regular steps plus the origin
	test.That(t, out, test.ShouldHaveLength, 16)
	for i := 1; i < len(out)-1; i++ {
		step := out[i].Point().Sub(out[i-1].Point()).Norm()
		test.That(t, step, test.ShouldAlmostEqual, 0.3, 1e-9)
		test.That(t, out[i].X, test.ShouldAlmostEqual, float64(i)*0.3, 1e-9)
	}
	final := out[len(out)-1].Point().Sub(out[len(out)-2].Point()).Norm()
	test.That(t, final, test.ShouldBeLessThanOrEqualTo, 0.3+1e-9)
	test.That(t, out[len(out)-1], test.ShouldResemble, path[len(path)-1])
	for _, k := range curvature {
		test.That(t, k, test.ShouldEqual, 0.)
	}
}

func TestResampleVertices(t *testing.T) {
	path := Path[string]{
		{X: 0, Y: 0, Tag: TagPinned, Data: "start"},
		{X: 2, Y: 0, Tag: TagPinned, Data: "corner"},
		{X: 2, Y: 3, Tag: TagPinned, Data: "turn"},
		{X: 5, Y: 3, Tag: TagPinned, Data: "end"},
	}
	out, _, err := Resample(path, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 17)

	test.That(t, out[0], test.ShouldResemble, path[0])
	test.That(t, out[4], test.ShouldResemble, path[1])
	test.That(t, out[10], test.ShouldResemble, path[2])
	test.That(t, out[16], test.ShouldResemble, path[3])

	test.That(t, out[5].Tag, test.ShouldEqual, TagFree)
	test.That(t, out[5].Data, test.ShouldEqual, "")
	test.That(t, out[5].X, test.ShouldAlmostEqual, 2.)
	test.That(t, out[5].Y, test.ShouldAlmostEqual, 0.5)
}

func TestResampleSkipsDuplicateVertices(t *testing.T) {
	path := Path[int]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	out, curvature, err := Resample(path, 0.25)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 9)
	for i, pos := range out {
		test.That(t, pos.X, test.ShouldAlmostEqual, float64(i)*0.25, 1e-9)
		test.That(t, curvature[i], test.ShouldEqual, 0.)
	}
}

func TestResampleErrors(t *testing.T) {
	_, _, err := Resample(Path[int]{}, 1)
	test.That(t, errors.Is(err, ErrEmptyPath), test.ShouldBeTrue)

	_, _, err = Resample(Path[int]{{X: 0}, {X: 1}}, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "resampling step")

	_, _, err = Resample(Path[int]{{X: 0}, {X: 1}}, math.NaN())
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = Resample(Path[int]{{X: 1, Y: 1}, {X: 1, Y: 1}}, 0.1)
	test.That(t, errors.Is(err, ErrZeroLengthPath), test.ShouldBeTrue)
}

func TestCurvature(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		const radius = 2.
		var counterClockwise, clockwise Path[int]
		for i := 0; i <= 20; i++ {
			theta := float64(i) * math.Pi / 40
			counterClockwise = append(counterClockwise, Position[int]{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
			clockwise = append(clockwise, Position[int]{X: radius * math.Cos(theta), Y: -radius * math.Sin(theta)})
		}
		left := Curvature(counterClockwise)
		right := Curvature(clockwise)
		for i := range left {
			test.That(t, left[i], test.ShouldAlmostEqual, 1/radius, 1e-9)
			test.That(t, right[i], test.ShouldAlmostEqual, -1/radius, 1e-9)
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		test.That(t, Curvature(Path[int]{{X: 0}, {X: 1}}), test.ShouldResemble, []float64{0, 0})
		kappa := Curvature(Path[int]{{X: 0}, {X: 1}, {X: 1}, {X: 1, Y: 1}})
		test.That(t, kappa, test.ShouldResemble, []float64{0, 0, 0, 0})
	})

	t.Run("endpoints copy neighbors", func(t *testing.T) {
		kappa := Curvature(Path[int]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
		test.That(t, kappa[1], test.ShouldBeGreaterThan, 0.)
		test.That(t, kappa[0], test.ShouldEqual, kappa[1])
		test.That(t, kappa[2], test.ShouldEqual, kappa[1])
	})
}
