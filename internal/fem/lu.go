package fem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// PivotTolerance marks a column as singular during factorization
	PivotTolerance = 1e-18

	// SolveTolerance zeroes a solution component whose U diagonal is below it
	SolveTolerance = 1e-22
)

// ErrNotSquare is returned when factorizing a rectangular matrix
var ErrNotSquare = errors.New("fem: matrix is not square")

// LU holds a row-pivoted Doolittle factorization P·A = L·U. L (unit lower,
// diagonal implied) and U share one buffer. An LU is read-only after
// Factorize, so Solve can be called for any number of right-hand sides.
type LU struct {
	n        int
	data     []float64 // row-major, stride n
	perm     []int     // perm[i] = original row now at position i
	singular []int
}

// Factorize computes the LU decomposition of a copy of a. Columns whose best
// pivot is below PivotTolerance are skipped and reported by Singular; they do
// not make the factorization fail.
func Factorize(a mat.Matrix) (*LU, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	n := r

	lu := &LU{
		n:    n,
		data: make([]float64, n*n),
		perm: make([]int, n),
	}
	for i := 0; i < n; i++ {
		lu.perm[i] = i
		for j := 0; j < n; j++ {
			lu.data[i*n+j] = a.At(i, j)
		}
	}

	d := lu.data
	for i := 0; i < n; i++ {
		// partial pivoting on column i
		p, pmax := i, math.Abs(d[i*n+i])
		for k := i + 1; k < n; k++ {
			if v := math.Abs(d[k*n+i]); v > pmax {
				p, pmax = k, v
			}
		}
		if p != i {
			rowI, rowP := d[i*n:(i+1)*n], d[p*n:(p+1)*n]
			for j := range rowI {
				rowI[j], rowP[j] = rowP[j], rowI[j]
			}
			lu.perm[i], lu.perm[p] = lu.perm[p], lu.perm[i]
		}

		if pmax < PivotTolerance {
			lu.singular = append(lu.singular, i)
			for k := i + 1; k < n; k++ {
				d[k*n+i] = 0
			}
			continue
		}

		pivot := d[i*n+i]
		for k := i + 1; k < n; k++ {
			m := d[k*n+i] / pivot
			d[k*n+i] = m
			if m == 0 {
				continue
			}
			for j := i + 1; j < n; j++ {
				d[k*n+j] -= m * d[i*n+j]
			}
		}
	}
	return lu, nil
}

// Size returns the order of the factorized matrix
func (lu *LU) Size() int { return lu.n }

// Singular returns the pivot columns that were skipped during factorization
func (lu *LU) Singular() []int {
	out := make([]int, len(lu.singular))
	copy(out, lu.singular)
	return out
}

// Solve returns x with A·x = b. Components whose U diagonal is below
// SolveTolerance are set to zero.
func (lu *LU) Solve(b []float64) []float64 {
	n, d := lu.n, lu.data
	if len(b) != n {
		panic(fmt.Sprintf("fem: right-hand side has length %d, want %d", len(b), n))
	}

	// forward substitution: L·y = P·b
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[lu.perm[i]]
		row := d[i*n : i*n+i]
		for k, l := range row {
			sum -= l * y[k]
		}
		y[i] = sum
	}

	// back substitution: U·x = y
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		uii := d[i*n+i]
		if math.Abs(uii) < SolveTolerance {
			x[i] = 0
			continue
		}
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= d[i*n+k] * x[k]
		}
		x[i] = sum / uii
	}
	return x
}
