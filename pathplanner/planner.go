// Package pathplanner turns a sparse list of waypoints into a trajectory for a
// differential-drive robot: a smoothed and uniformly resampled center path, the two wheel
// paths, center and wheel speed profiles, and the path those speeds reproduce when
// integrated forward.
package pathplanner

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/pathplanner/logging"
	"go.viam.com/pathplanner/spatialmath"
	"go.viam.com/pathplanner/utils"
)

// Plan is the output of one planner run. Every sequence except ControlPoints is index-aligned
// with Path.
type Plan[T any] struct {
	ControlPoints Path[T]
	Path          Path[T]
	Curvature     []float64
	Left          Path[T]
	Right         Path[T]
	Velocity      []float64
	LeftVelocity  []float64
	RightVelocity []float64
	Reconstructed Path[T]
}

// Profile returns the speed sequences of the plan as a VelocityProfile.
func (p *Plan[T]) Profile() VelocityProfile {
	return VelocityProfile{Center: p.Velocity, Left: p.LeftVelocity, Right: p.RightVelocity}
}

// A Planner computes plans for one set of parameters. It runs one computation at a time;
// independent planners share no state.
type Planner[T any] struct {
	params  Params
	logger  logging.Logger
	running atomic.Bool

	mu            sync.Mutex
	controlPoints Path[T]
	plan          *Plan[T]
}

// NewPlanner returns a planner for params, or an error describing every invalid parameter.
func NewPlanner[T any](params Params, logger logging.Logger) (*Planner[T], error) {
	if err := params.Validate("params"); err != nil {
		return nil, err
	}
	for _, w := range params.WeightWarnings() {
		logger.Warn(w)
	}
	return &Planner[T]{params: params, logger: logger}, nil
}

// Params returns the parameters the planner was built with.
func (pl *Planner[T]) Params() Params {
	return pl.params
}

// SetControlPoints replaces the waypoints used by the next Compute. The planner keeps its own
// copy.
func (pl *Planner[T]) SetControlPoints(points Path[T]) error {
	if pl.running.Load() {
		return ErrComputeInProgress
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.controlPoints = points.Clone()
	return nil
}

// ControlPoints returns a copy of the current waypoints.
func (pl *Planner[T]) ControlPoints() Path[T] {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.controlPoints.Clone()
}

// Plan returns the result of the last successful Compute, or nil.
func (pl *Planner[T]) Plan() *Plan[T] {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.plan
}

// Compute runs the full pipeline over the current control points. It fails immediately with
// ErrComputeInProgress if another Compute on the same planner has not returned yet.
func (pl *Planner[T]) Compute() (*Plan[T], error) {
	if !pl.running.CompareAndSwap(false, true) {
		return nil, ErrComputeInProgress
	}
	defer pl.running.Store(false)

	controls := pl.ControlPoints()
	if err := validateControlPoints(controls); err != nil {
		return nil, err
	}

	plan, err := pl.compute(controls)
	if err != nil {
		return nil, err
	}

	pl.mu.Lock()
	pl.plan = plan
	pl.mu.Unlock()
	return plan, nil
}

func (pl *Planner[T]) compute(controls Path[T]) (*Plan[T], error) {
	p := pl.params

	smoothed := Smooth(controls, p.PathAlpha, p.PathBeta, p.SmoothPass)
	pl.logger.Debugw("smoothed control points", "points", len(smoothed), "passes", p.SmoothPass)

	center, curvature, err := Resample(smoothed, p.DistStep)
	if err != nil {
		return nil, errors.Wrap(err, "resampling smoothed path")
	}
	pl.logger.Debugw("resampled center path", "samples", len(center), "length", smoothed.Length())

	left, right, err := Offset(center, p.RobotWidth)
	if err != nil {
		return nil, errors.Wrap(err, "offsetting wheel paths")
	}

	profile, err := Profile(center, curvature, p)
	if err != nil {
		return nil, errors.Wrap(err, "computing velocity profile")
	}
	pl.logger.Debugw("computed velocity profile", "samples", profile.Len())

	var initial spatialmath.Pose2D
	if len(center) > 1 {
		initial = spatialmath.PoseFacing(center[0].Point(), center[1].Point())
	} else {
		initial = spatialmath.Pose2D{Point: center[0].Point()}
	}
	reconstructed, err := Reconstruct[T](profile, p.RobotWidth, p.TimeStep, initial)
	if err != nil {
		return nil, errors.Wrap(err, "reconstructing trajectory")
	}

	return &Plan[T]{
		ControlPoints: controls,
		Path:          center,
		Curvature:     curvature,
		Left:          left,
		Right:         right,
		Velocity:      profile.Center,
		LeftVelocity:  profile.Left,
		RightVelocity: profile.Right,
		Reconstructed: reconstructed,
	}, nil
}

func validateControlPoints[T any](points Path[T]) error {
	if len(points) < 2 {
		return errors.Wrapf(ErrTooFewControlPoints, "got %d", len(points))
	}
	for i, pt := range points {
		if !utils.IsFinite(pt.X) || !utils.IsFinite(pt.Y) {
			return errors.Wrapf(ErrNonFiniteControlPoint, "control point %d is (%v, %v)", i, pt.X, pt.Y)
		}
	}
	last, prev := points[len(points)-1], points[len(points)-2]
	if last.Point().Sub(prev.Point()).Norm() == 0 {
		return ErrDegenerateLastSegment
	}
	return nil
}
