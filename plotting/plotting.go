// Package plotting renders planner output as PNG charts.
package plotting

import (
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/pathplanner/pathplanner"
)

// Files written by SaveAll.
const (
	TrajectoryPlotFile = "trajectory.png"
	VelocityPlotFile   = "velocity.png"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// Series colors are evenly spaced hues at constant chroma and lightness.
var (
	environmentColor   = colorful.Hcl(0, 0, 0.45)
	controlColor       = seriesColor(0)
	centerColor        = seriesColor(1)
	leftColor          = seriesColor(2)
	rightColor         = seriesColor(3)
	reconstructedColor = seriesColor(4)
)

func seriesColor(i int) color.Color {
	const hues = 5
	return colorful.Hcl(float64(i)*360/hues+20, 0.7, 0.55).Clamped()
}

type series struct {
	name    string
	color   color.Color
	points  plotter.XYs
	scatter bool
	dashed  bool
}

func pathXYs[T any](path pathplanner.Path[T]) plotter.XYs {
	return lo.Map(path, func(pos pathplanner.Position[T], _ int) plotter.XY {
		return plotter.XY{X: pos.X, Y: pos.Y}
	})
}

func profileXYs(profile []float64, distStep float64) plotter.XYs {
	return lo.Map(profile, func(v float64, i int) plotter.XY {
		return plotter.XY{X: float64(i) * distStep, Y: v}
	})
}

// TrajectoryPlot draws the environment, control points, the three planned paths and the
// reconstructed path on equal axes.
func TrajectoryPlot[T any](plan *pathplanner.Plan[T], environment pathplanner.Path[T]) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	err := addSeries(p, []series{
		{name: "environment", color: environmentColor, points: pathXYs(environment), scatter: true},
		{name: "control points", color: controlColor, points: pathXYs(plan.ControlPoints), scatter: true},
		{name: "center", color: centerColor, points: pathXYs(plan.Path)},
		{name: "left", color: leftColor, points: pathXYs(plan.Left)},
		{name: "right", color: rightColor, points: pathXYs(plan.Right)},
		{name: "reconstructed", color: reconstructedColor, points: pathXYs(plan.Reconstructed), dashed: true},
	})
	if err != nil {
		return nil, err
	}
	equalizeAxes(p)
	return p, nil
}

// VelocityPlot draws the center and wheel speeds against arc length.
func VelocityPlot[T any](plan *pathplanner.Plan[T], distStep float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Velocity"
	p.X.Label.Text = "distance"
	p.Y.Label.Text = "speed"

	err := addSeries(p, []series{
		{name: "center", color: centerColor, points: profileXYs(plan.Velocity, distStep)},
		{name: "left", color: leftColor, points: profileXYs(plan.LeftVelocity, distStep)},
		{name: "right", color: rightColor, points: profileXYs(plan.RightVelocity, distStep)},
	})
	if err != nil {
		return nil, err
	}
	p.Y.Min = 0
	return p, nil
}

func addSeries(p *plot.Plot, all []series) error {
	for _, s := range all {
		if len(s.points) == 0 {
			continue
		}
		if s.scatter {
			sc, err := plotter.NewScatter(s.points)
			if err != nil {
				return errors.Wrapf(err, "plotting %s", s.name)
			}
			sc.GlyphStyle.Color = s.color
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Radius = vg.Points(2.5)
			p.Add(sc)
			p.Legend.Add(s.name, sc)
			continue
		}
		line, err := plotter.NewLine(s.points)
		if err != nil {
			return errors.Wrapf(err, "plotting %s", s.name)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		if s.dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return nil
}

// equalizeAxes widens the shorter axis so one unit has the same length on both.
func equalizeAxes(p *plot.Plot) {
	xSpan := p.X.Max - p.X.Min
	ySpan := p.Y.Max - p.Y.Min
	aspect := float64(plotWidth) / float64(plotHeight)
	switch {
	case xSpan <= 0 || ySpan <= 0:
		return
	case xSpan/ySpan < aspect:
		grow := (ySpan*aspect - xSpan) / 2
		p.X.Min -= grow
		p.X.Max += grow
	default:
		grow := (xSpan/aspect - ySpan) / 2
		p.Y.Min -= grow
		p.Y.Max += grow
	}
}

// WritePNG renders p as a PNG image.
func WritePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveAll writes the trajectory and velocity plots of plan into dir.
func SaveAll[T any](dir string, plan *pathplanner.Plan[T], environment pathplanner.Path[T], distStep float64) error {
	trajectory, err := TrajectoryPlot(plan, environment)
	if err != nil {
		return err
	}
	velocity, err := VelocityPlot(plan, distStep)
	if err != nil {
		return err
	}
	return multierr.Combine(
		savePNG(trajectory, filepath.Join(dir, TrajectoryPlotFile)),
		savePNG(velocity, filepath.Join(dir, VelocityPlotFile)),
	)
}

func savePNG(p *plot.Plot, name string) (err error) {
	//nolint:gosec
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating plot file")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return errors.Wrapf(WritePNG(p, f), "rendering %s", filepath.Base(name))
}
