package pathplanner

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// DeviationReport summarizes the point-wise distance between a planned path and the path
// reconstructed from its velocity profile.
type DeviationReport struct {
	Mean    float64 `json:"mean"`
	Max     float64 `json:"max"`
	P95     float64 `json:"p95"`
	Samples int     `json:"samples"`
}

// Deviation compares two index-aligned paths. Large values mean the velocity profile does not
// drive the robot along the planned path, usually because the parameters are inconsistent.
func Deviation[T any](planned, reconstructed Path[T]) (DeviationReport, error) {
	if len(planned) == 0 {
		return DeviationReport{}, ErrEmptyPath
	}
	if len(reconstructed) != len(planned) {
		return DeviationReport{}, newLengthMismatchError("reconstructed path", len(planned), len(reconstructed))
	}

	dists := make(stats.Float64Data, len(planned))
	for i := range planned {
		dists[i] = planned[i].Point().Sub(reconstructed[i].Point()).Norm()
	}

	mean, err := dists.Mean()
	if err != nil {
		return DeviationReport{}, errors.Wrap(err, "mean deviation")
	}
	worst, err := dists.Max()
	if err != nil {
		return DeviationReport{}, errors.Wrap(err, "max deviation")
	}
	p95, err := dists.Percentile(95)
	if err != nil {
		return DeviationReport{}, errors.Wrap(err, "95th percentile deviation")
	}
	return DeviationReport{Mean: mean, Max: worst, P95: p95, Samples: len(dists)}, nil
}
