package pathplanner

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/pathplanner/spatialmath"
)

// Offset builds the left and right wheel paths by moving every center position half of
// robotWidth along its left-hand normal, relative to the direction of travel. The direction
// at a position points to the next one; the last position uses the previous segment.
// Positions with no direction of their own borrow the nearest valid normal.
//
// On turns tighter than half the track width the offset curves can cross; that is not corrected.
func Offset[T any](center Path[T], robotWidth float64) (Path[T], Path[T], error) {
	if len(center) == 0 {
		return nil, nil, ErrEmptyPath
	}
	if !(robotWidth > 0) || math.IsInf(robotWidth, 1) {
		return nil, nil, errors.Errorf("robot width must be a finite positive number, got %v", robotWidth)
	}

	normals, err := pathNormals(center)
	if err != nil {
		return nil, nil, err
	}

	half := robotWidth / 2
	left := make(Path[T], len(center))
	right := make(Path[T], len(center))
	for i, pos := range center {
		shift := normals[i].Mul(half)
		left[i] = pos.movedTo(pos.Point().Add(shift))
		right[i] = pos.movedTo(pos.Point().Sub(shift))
	}
	return left, right, nil
}

func pathNormals[T any](path Path[T]) ([]r2.Point, error) {
	n := len(path)
	normals := make([]r2.Point, n)
	valid := make([]bool, n)
	anyValid := false
	for i := range path {
		var dir r2.Point
		switch {
		case i+1 < n:
			dir = path[i+1].Point().Sub(path[i].Point())
		case i > 0:
			dir = path[i].Point().Sub(path[i-1].Point())
		}
		normals[i], valid[i] = spatialmath.LeftNormal(dir)
		anyValid = anyValid || valid[i]
	}
	if !anyValid {
		return nil, ErrZeroLengthPath
	}

	// Forward fill from the previous valid normal, then back fill any leading gap.
	last := -1
	for i := 0; i < n; i++ {
		if valid[i] {
			last = i
		} else if last >= 0 {
			normals[i] = normals[last]
			valid[i] = true
		}
	}
	for i := n - 1; i >= 0; i-- {
		if valid[i] {
			last = i
		} else {
			normals[i] = normals[last]
		}
	}
	return normals, nil
}
