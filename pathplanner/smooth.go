package pathplanner

import "gonum.org/v1/gonum/mat"

// Smooth relaxes raw toward a low-curvature curve. alpha weighs fidelity to the original
// points and beta weighs smoothness; passes is a fixed iteration budget. Pinned positions and
// the two endpoints never move. raw is not modified.
func Smooth[T any](raw Path[T], alpha, beta float64, passes int) Path[T] {
	out := raw.Clone()
	if len(out) < 3 || passes <= 0 {
		return out
	}

	seq := mat.NewDense(len(out), 2, nil)
	for i, pos := range out {
		seq.Set(i, 0, pos.X)
		seq.Set(i, 1, pos.Y)
	}
	relax(seq, func(i int) bool { return out[i].Pinned() }, weights{alpha: alpha, beta: beta}, passes)

	for i := 1; i < len(out)-1; i++ {
		if out[i].Pinned() {
			continue
		}
		out[i].X = seq.At(i, 0)
		out[i].Y = seq.At(i, 1)
	}
	return out
}
