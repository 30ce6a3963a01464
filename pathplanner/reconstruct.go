package pathplanner

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/pathplanner/spatialmath"
)

// Reconstruct integrates the profile forward from initial and returns the poses the robot
// would pass through, one per profile sample. Each sample is held for timeStep: the position
// moves by the center speed along the current heading and the heading then turns by the
// wheel speed difference over robotWidth. This is a first-order estimate meant for comparison
// against the planned path, not a controller.
func Reconstruct[T any](profile VelocityProfile, robotWidth, timeStep float64, initial spatialmath.Pose2D) (Path[T], error) {
	n := profile.Len()
	if n == 0 {
		return nil, ErrEmptyPath
	}
	if len(profile.Left) != n {
		return nil, newLengthMismatchError("left velocity", n, len(profile.Left))
	}
	if len(profile.Right) != n {
		return nil, newLengthMismatchError("right velocity", n, len(profile.Right))
	}
	if !(robotWidth > 0) || math.IsInf(robotWidth, 1) {
		return nil, errors.Errorf("robot width must be a finite positive number, got %v", robotWidth)
	}
	if !(timeStep > 0) || math.IsInf(timeStep, 1) {
		return nil, errors.Errorf("time step must be a finite positive number, got %v", timeStep)
	}

	out := make(Path[T], n)
	pose := initial
	out[0] = MakeTagged[T](TagFree, pose.Point.X, pose.Point.Y)
	for i := 1; i < n; i++ {
		omega := (profile.Right[i-1] - profile.Left[i-1]) / robotWidth
		pose = pose.Advance(profile.Center[i-1], omega, timeStep)
		out[i] = MakeTagged[T](TagFree, pose.Point.X, pose.Point.Y)
	}
	return out, nil
}
