package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a small dense matrix used for per-cell geometry and energy
// assembly. It is a thin value wrapper over gonum's Dense with chainable
// helpers; methods that do not change the receiver say so.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

// MulVec applies the matrix to a vector. Does not change receiver.
func (m Matrix) MulVec(v Vector) (R Vector) {
	var (
		nr, nc = m.Dims()
	)
	if nc != v.Len() {
		panic(fmt.Errorf("dimension mismatch in MulVec: nc = %d, len(v) = %d", nc, v.Len()))
	}
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	var (
		data  = m.M.RawMatrix().Data
		dataA = A.M.RawMatrix().Data
	)
	for i := range data {
		data[i] += dataA[i]
	}
	return m
}

// AddScaled accumulates a*A into the receiver. Changes receiver.
func (m Matrix) AddScaled(A Matrix, a float64) Matrix {
	var (
		data  = m.M.RawMatrix().Data
		dataA = A.M.RawMatrix().Data
	)
	for i := range data {
		data[i] += a * dataA[i]
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.M.RawMatrix().Data
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Col(j int) (V Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	V = NewVector(nr)
	for i := 0; i < nr; i++ {
		V.V.SetVec(i, m.M.At(i, j))
	}
	return
}

func (m Matrix) Row(i int) (V Vector) { // Does not change receiver
	var (
		_, nc = m.Dims()
	)
	V = NewVector(nc)
	for j := 0; j < nc; j++ {
		V.V.SetVec(j, m.M.At(i, j))
	}
	return
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

// SymmetryError reports the largest |m[i,j]-m[j,i]| over the matrix.
func (m Matrix) SymmetryError() (max float64) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		panic(fmt.Errorf("SymmetryError requires a square matrix, have %d x %d", nr, nc))
	}
	for j := 0; j < nc; j++ {
		for i := 0; i < j; i++ {
			if d := abs(m.M.At(i, j) - m.M.At(j, i)); d > max {
				max = d
			}
		}
	}
	return
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
