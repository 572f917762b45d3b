package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps gonum's VecDense the same way Matrix wraps Dense.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (V Vector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		V = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		V = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)          { return v.V.Dims() }
func (v Vector) At(i, j int) float64       { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix             { return v.V.T() }
func (v Vector) AtVec(i int) float64       { return v.V.AtVec(i) }
func (v Vector) SetVec(i int, val float64) { v.V.SetVec(i, val) }
func (v Vector) RawVector() blas64.Vector  { return v.V.RawVector() }
func (v Vector) Len() int                  { return v.V.Len() }

func (v Vector) Copy() (R Vector) { // Does not change receiver
	var (
		data  = v.V.RawVector().Data
		dataR = make([]float64, v.Len())
	)
	copy(dataR, data)
	R = NewVector(v.Len(), dataR)
	return
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

// AddScaled accumulates a*u into the receiver. Changes receiver.
func (v Vector) AddScaled(u Vector, a float64) Vector {
	var (
		data  = v.V.RawVector().Data
		dataU = u.V.RawVector().Data
	)
	for i := range data {
		data[i] += a * dataU[i]
	}
	return v
}

func (v Vector) Dot(u Vector) (d float64) {
	var (
		data  = v.V.RawVector().Data
		dataU = u.V.RawVector().Data
	)
	for i, val := range data {
		d += val * dataU[i]
	}
	return
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Outer forms the outer product v uᵀ. Does not change receiver.
func (v Vector) Outer(u Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), u.Len()
	)
	R = NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, v.AtVec(i)*u.AtVec(j))
		}
	}
	return
}
