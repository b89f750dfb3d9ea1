package fem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestElementStiffness(t *testing.T) {
	k := ElementStiffness(2, 2)
	// EI/L³ = 0.25
	want := mat.NewDense(4, 4, []float64{
		3, 3, -3, 3,
		3, 4, -3, 2,
		-3, -3, 3, -3,
		3, 2, -3, 4,
	})
	assert.True(t, mat.EqualApprox(want, k, 1e-12), "got\n%v", mat.Formatted(k))
	assert.True(t, mat.EqualApprox(k, k.T(), 0), "stiffness must be symmetric")
}

func TestReleaseEndRotation(t *testing.T) {
	ei, le := 1.0, 1.0
	k := ElementStiffness(ei, le)
	f := []float64{-5, -10.0 / 12, -5, 10.0 / 12}

	Release(k, f, EndRotation)

	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0, k.At(EndRotation, i), 1e-12)
		assert.InDelta(t, 0, k.At(i, EndRotation), 1e-12)
	}
	assert.InDelta(t, 0, f[EndRotation], 1e-12)

	// propped cantilever stiffness 3EI/L³ remains in translation
	assert.InDelta(t, 3*ei/(le*le*le), k.At(0, 0), 1e-12)
	assert.InDelta(t, 3*ei/le, k.At(1, 1), 1e-12)

	// translation resultant is preserved
	assert.InDelta(t, -10, f[0]+f[2], 1e-12)
}

func TestReleaseBothEnds(t *testing.T) {
	k := ElementStiffness(3, 1.5)
	f := []float64{1, 0.2, 1, -0.2}

	Release(k, f, EndRotation, StartRotation)

	// a pin-pin element has no bending stiffness left
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, 0, k.At(i, j), 1e-9, "k[%d][%d]", i, j)
		}
	}
	assert.InDelta(t, 0, f[StartRotation], 1e-12)
	assert.InDelta(t, 0, f[EndRotation], 1e-12)
	assert.InDelta(t, 2, f[0]+f[2], 1e-12)
}

func TestReleaseSkipsZeroStiffness(t *testing.T) {
	k := mat.NewDense(4, 4, nil)
	k.Set(0, 0, 1)
	f := []float64{1, 2, 3, 4}

	Release(k, f, StartRotation)

	assert.Equal(t, []float64{1, 2, 3, 4}, f)
	assert.Equal(t, 1.0, k.At(0, 0))
}
