package fem

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Local degrees of freedom of a two-node beam element: [v1, θ1, v2, θ2]
const (
	StartRotation = 1
	EndRotation   = 3
)

// ReleaseTolerance is the smallest rotational stiffness that is condensed out
const ReleaseTolerance = 1e-12

// ElementStiffness returns the 4×4 Euler-Bernoulli stiffness of an element of
// length le with rigidity ei.
func ElementStiffness(ei, le float64) *mat.Dense {
	c := ei / (le * le * le)
	ll := le * le
	return mat.NewDense(4, 4, []float64{
		12 * c, 6 * le * c, -12 * c, 6 * le * c,
		6 * le * c, 4 * ll * c, -6 * le * c, 2 * ll * c,
		-12 * c, -6 * le * c, 12 * c, -6 * le * c,
		6 * le * c, 2 * ll * c, -6 * le * c, 4 * ll * c,
	})
}

// Release removes the moment continuity at the given local rotation DOFs by
// static condensation of k and f (f may be nil). DOFs are processed in
// ascending order; a DOF whose stiffness is below ReleaseTolerance is left
// untouched.
func Release(k *mat.Dense, f []float64, dofs ...int) {
	for _, r := range sortedDOFs(dofs) {
		krr := k.At(r, r)
		if math.Abs(krr) < ReleaseTolerance {
			continue
		}
		n, _ := k.Dims()
		if f != nil {
			fr := f[r]
			for i := 0; i < n; i++ {
				f[i] -= k.At(i, r) / krr * fr
			}
		}
		col := make([]float64, n)
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = k.At(i, r)
			row[i] = k.At(r, i)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				k.Set(i, j, k.At(i, j)-col[i]*row[j]/krr)
			}
		}
	}
}

func sortedDOFs(dofs []int) []int {
	switch len(dofs) {
	case 0, 1:
		return dofs
	}
	out := make([]int, 0, len(dofs))
	for _, want := range []int{StartRotation, EndRotation} {
		for _, d := range dofs {
			if d == want {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
