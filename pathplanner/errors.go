package pathplanner

import "github.com/pkg/errors"

var (
	// ErrTooFewControlPoints is returned when fewer than two control points are supplied.
	ErrTooFewControlPoints = errors.New("at least two control points are required")

	// ErrDegenerateLastSegment is returned when the last two control points coincide, leaving
	// the terminal heading undefined.
	ErrDegenerateLastSegment = errors.New("last path segment has zero length")

	// ErrNonFiniteControlPoint is returned when a control point has a NaN or infinite coordinate.
	ErrNonFiniteControlPoint = errors.New("control point coordinates must be finite")

	// ErrEmptyPath is returned by a stage that was handed no positions.
	ErrEmptyPath = errors.New("path is empty")

	// ErrZeroLengthPath is returned when a path has no extent to walk or offset.
	ErrZeroLengthPath = errors.New("path has zero length")

	// ErrComputeInProgress is returned when a planner is asked to compute or change its inputs
	// while a computation is already running.
	ErrComputeInProgress = errors.New("planner computation already in progress")
)

func newLengthMismatchError(what string, want, got int) error {
	return errors.Errorf("%s has %d samples, expected %d", what, got, want)
}
