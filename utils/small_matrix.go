package utils

import (
	"gonum.org/v1/gonum/mat"
)

func Det2(A [2][2]float64) float64 {
	return A[0][0]*A[1][1] - A[0][1]*A[1][0]
}

// Inverse2x2 returns the inverse of A using the cofactor formula. The caller
// supplies det(A) so it is not recomputed, and is responsible for det != 0.
func Inverse2x2(A [2][2]float64, det float64) (inv [2][2]float64) {
	inv[0][0] = A[1][1] / det
	inv[0][1] = -A[0][1] / det
	inv[1][0] = -A[1][0] / det
	inv[1][1] = A[0][0] / det
	return
}

// Inverse3x3 is the 3x3 analogue of Inverse2x2.
func Inverse3x3(A [3][3]float64, det float64) (inv [3][3]float64) {
	inv[0][0] = (A[1][1]*A[2][2] - A[1][2]*A[2][1]) / det
	inv[0][1] = (A[0][2]*A[2][1] - A[0][1]*A[2][2]) / det
	inv[0][2] = (A[0][1]*A[1][2] - A[0][2]*A[1][1]) / det
	inv[1][0] = (A[1][2]*A[2][0] - A[1][0]*A[2][2]) / det
	inv[1][1] = (A[0][0]*A[2][2] - A[0][2]*A[2][0]) / det
	inv[1][2] = (A[0][2]*A[1][0] - A[0][0]*A[1][2]) / det
	inv[2][0] = (A[1][0]*A[2][1] - A[1][1]*A[2][0]) / det
	inv[2][1] = (A[0][1]*A[2][0] - A[0][0]*A[2][1]) / det
	inv[2][2] = (A[0][0]*A[1][1] - A[0][1]*A[1][0]) / det
	return
}

// NewSymTriDiagonal builds the symmetric matrix with main diagonal d0 and
// first off diagonal d1, len(d1) == len(d0)-1.
func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	var (
		N = len(d0)
	)
	if len(d1) != N-1 {
		panic("off diagonal length must be one less than the diagonal")
	}
	Tri = mat.NewSymDense(N, nil)
	for i := 0; i < N; i++ {
		Tri.SetSym(i, i, d0[i])
		if i < N-1 {
			Tri.SetSym(i, i+1, d1[i])
		}
	}
	return
}
