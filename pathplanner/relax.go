package pathplanner

import "gonum.org/v1/gonum/mat"

// weights are the coefficients of the elastic relaxation: alpha pulls a sample back
// toward its original value and beta pulls it toward the mean of its neighbors.
type weights struct {
	alpha float64
	beta  float64
}

func neverPinned(int) bool { return false }

// relax runs a fixed number of gradient-descent passes over seq in place. Each row of seq
// is one sample and each column one coordinate. The first and last rows, and any row for
// which pinned returns true, are boundary conditions and never move. Rows are updated in
// order within a pass, so a row sees its predecessor's value from the current pass.
func relax(seq *mat.Dense, pinned func(int) bool, w weights, passes int) {
	rows, cols := seq.Dims()
	if rows < 3 || passes <= 0 {
		return
	}
	orig := mat.DenseCopyOf(seq)

	for pass := 0; pass < passes; pass++ {
		for i := 1; i < rows-1; i++ {
			if pinned(i) {
				continue
			}
			for j := 0; j < cols; j++ {
				cur := seq.At(i, j)
				fidelity := orig.At(i, j) - cur
				smoothness := seq.At(i-1, j) + seq.At(i+1, j) - 2*cur
				seq.Set(i, j, cur+w.alpha*fidelity+w.beta*smoothness)
			}
		}
	}
}
