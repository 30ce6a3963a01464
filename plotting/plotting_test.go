package plotting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/pathplanner/logging"
	"go.viam.com/pathplanner/pathplanner"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testPlan(t *testing.T) *pathplanner.Plan[int] {
	t.Helper()
	params := pathplanner.DefaultParams()
	params.DistStep = 0.25
	params.SmoothPass = 10
	pl, err := pathplanner.NewPlanner[int](params, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	controls := pathplanner.Path[int]{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 4, Y: 0}, {X: 5, Y: 0}}
	test.That(t, controls.Pin(-2, -1), test.ShouldBeNil)
	test.That(t, pl.SetControlPoints(controls), test.ShouldBeNil)
	plan, err := pl.Compute()
	test.That(t, err, test.ShouldBeNil)
	return plan
}

func TestTrajectoryPlot(t *testing.T) {
	plan := testPlan(t)
	environment := pathplanner.Path[int]{{X: 1, Y: 2}, {X: 3, Y: 2}}

	p, err := TrajectoryPlot(plan, environment)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Title.Text, test.ShouldEqual, "Trajectory")

	// one unit spans the same length on both axes
	xSpan, ySpan := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	test.That(t, xSpan/ySpan, test.ShouldAlmostEqual, float64(plotWidth)/float64(plotHeight), 1e-9)

	var buf bytes.Buffer
	test.That(t, WritePNG(p, &buf), test.ShouldBeNil)
	test.That(t, bytes.HasPrefix(buf.Bytes(), pngMagic), test.ShouldBeTrue)
}

func TestVelocityPlot(t *testing.T) {
	plan := testPlan(t)
	p, err := VelocityPlot(plan, 0.25)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Y.Min, test.ShouldEqual, 0.)
	test.That(t, p.X.Max, test.ShouldAlmostEqual, float64(len(plan.Velocity)-1)*0.25)

	xys := profileXYs([]float64{0, 1, 0}, 0.5)
	test.That(t, xys[2].X, test.ShouldEqual, 1.)
	test.That(t, xys[1].Y, test.ShouldEqual, 1.)
}

func TestSaveAll(t *testing.T) {
	plan := testPlan(t)
	dir := t.TempDir()
	test.That(t, SaveAll(dir, plan, nil, 0.25), test.ShouldBeNil)
	for _, name := range []string{TrajectoryPlotFile, VelocityPlotFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bytes.HasPrefix(data, pngMagic), test.ShouldBeTrue)
	}

	err := SaveAll(filepath.Join(dir, "missing"), plan, nil, 0.25)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "creating plot file")
}

func TestSeriesColors(t *testing.T) {
	seen := map[[4]uint32]bool{}
	for i := 0; i < 5; i++ {
		r, g, b, a := seriesColor(i).RGBA()
		test.That(t, a, test.ShouldEqual, uint32(0xffff))
		seen[[4]uint32{r, g, b, a}] = true
	}
	test.That(t, seen, test.ShouldHaveLength, 5)
}
