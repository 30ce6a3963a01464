package pathplanner

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/pathplanner/spatialmath"
)

// vertexEpsilon is how close, in path units, a sample must be to a vertex to be replaced by it.
const vertexEpsilon = 1e-9

// Resample walks smoothed by arc length and emits a sample every distStep, linearly
// interpolated between vertices. It also returns the signed curvature at each sample.
//
// The first sample is the first vertex and the last sample is always the last vertex, so the
// final spacing may be shorter than distStep. Samples that land on a vertex are that vertex,
// tag and payload included; all other samples are free and carry a zero payload.
func Resample[T any](smoothed Path[T], distStep float64) (Path[T], []float64, error) {
	if len(smoothed) == 0 {
		return nil, nil, ErrEmptyPath
	}
	if !(distStep > 0) || math.IsInf(distStep, 1) {
		return nil, nil, errors.Errorf("resampling step must be a finite positive number, got %v", distStep)
	}

	out := Path[T]{smoothed[0]}
	k := 1
	travelled := 0.0
	for i := 0; i+1 < len(smoothed); i++ {
		a, b := smoothed[i], smoothed[i+1]
		seg := b.Point().Sub(a.Point())
		segLen := seg.Norm()
		if segLen == 0 {
			continue
		}
		for {
			// Derive the target from the sample index so spacing error does not accumulate.
			target := float64(k) * distStep
			if target > travelled+segLen {
				break
			}
			along := target - travelled
			switch {
			case along <= vertexEpsilon:
				out = append(out, a)
			case segLen-along <= vertexEpsilon:
				out = append(out, b)
			default:
				var zero T
				pt := a.Point().Add(seg.Mul(along / segLen))
				out = append(out, Position[T]{X: pt.X, Y: pt.Y, Tag: TagFree, Data: zero})
			}
			k++
		}
		travelled += segLen
	}
	if travelled == 0 {
		return nil, nil, ErrZeroLengthPath
	}

	last := smoothed[len(smoothed)-1]
	lastArc := float64(len(out)-1) * distStep
	if len(out) > 1 && travelled-lastArc <= vertexEpsilon {
		out[len(out)-1] = last
	} else {
		out = append(out, last)
	}
	return out, Curvature(out), nil
}

// Curvature estimates the signed curvature at every position from the circle through it and
// its two neighbors: 2*sin(turn)/chord. Left turns are positive. Degenerate neighborhoods
// yield 0, and the endpoints copy their nearest interior neighbor.
func Curvature[T any](path Path[T]) []float64 {
	n := len(path)
	kappa := make([]float64, n)
	if n < 3 {
		return kappa
	}
	for i := 1; i < n-1; i++ {
		prev, cur, next := path[i-1].Point(), path[i].Point(), path[i+1].Point()
		in, out := cur.Sub(prev), next.Sub(cur)
		chord := next.Sub(prev).Norm()
		if in.Norm() == 0 || out.Norm() == 0 || chord == 0 {
			continue
		}
		kappa[i] = 2 * math.Sin(spatialmath.TurningAngle(in, out)) / chord
	}
	kappa[0] = kappa[1]
	kappa[n-1] = kappa[n-2]
	return kappa
}
