package pathplanner

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestDeviation(t *testing.T) {
	planned := Path[int]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	reconstructed := Path[int]{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}

	report, err := Deviation(planned, reconstructed)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Samples, test.ShouldEqual, 4)
	test.That(t, report.Mean, test.ShouldAlmostEqual, 1.5)
	test.That(t, report.Max, test.ShouldAlmostEqual, 3.)
	test.That(t, report.P95, test.ShouldBeLessThanOrEqualTo, report.Max)
	test.That(t, report.P95, test.ShouldBeGreaterThanOrEqualTo, report.Mean)

	same, err := Deviation(planned, planned)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, same.Max, test.ShouldEqual, 0.)

	_, err = Deviation(Path[int]{}, Path[int]{})
	test.That(t, errors.Is(err, ErrEmptyPath), test.ShouldBeTrue)
	_, err = Deviation(planned, reconstructed[:2])
	test.That(t, err, test.ShouldNotBeNil)
}
