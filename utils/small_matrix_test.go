package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestInverse2x2(t *testing.T) {
	A := [2][2]float64{{2, 1}, {0.5, 3}}
	det := Det2(A)
	assert.Equal(t, 5.5, det)
	inv := Inverse2x2(A, det)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var s float64
			for k := 0; k < 2; k++ {
				s += A[i][k] * inv[k][j]
			}
			expect := 0.
			if i == j {
				expect = 1
			}
			assert.InDelta(t, expect, s, 1.e-15)
		}
	}
}

func TestInverse3x3(t *testing.T) {
	A := [3][3]float64{{1.4, -0.1, 0.3}, {0.3, 1.5, 0}, {0.1, 0.3, 1.1}}
	Ad := mat.NewDense(3, 3, []float64{1.4, -0.1, 0.3, 0.3, 1.5, 0, 0.1, 0.3, 1.1})
	det := mat.Det(Ad)
	inv := Inverse3x3(A, det)
	var invD mat.Dense
	assert.NoError(t, invD.Inverse(Ad))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, invD.At(i, j), inv[i][j], 1.e-14)
		}
	}
}

func TestNewSymTriDiagonal(t *testing.T) {
	Tri := NewSymTriDiagonal([]float64{1, 2, 3}, []float64{4, 5})
	assert.Equal(t, 3, Tri.SymmetricDim())
	assert.Equal(t, 4., Tri.At(1, 0))
	assert.Equal(t, 5., Tri.At(1, 2))
	assert.Equal(t, 0., Tri.At(0, 2))
	assert.Equal(t, 3., Tri.At(2, 2))
	assert.Panics(t, func() { NewSymTriDiagonal([]float64{1, 2}, []float64{1, 2}) })
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 32., POW(2, 5))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, 1024., POW(2, 10), 1.e-12)
	assert.Equal(t, 120., Factorial(5))
	assert.Equal(t, 1., Factorial(0))
	assert.Equal(t, -1., Sign(-0.1))
	assert.Equal(t, 1., Sign(0))
	assert.Equal(t, 1., Clamp(1.5, -1, 1))
	assert.Equal(t, -1., Clamp(-3, -1, 1))
}
