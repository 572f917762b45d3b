package cell

import (
	"fmt"
	"math"

	"github.com/diffstokes/cutcell/utils"
)

// Below this magnitude the least-squares SDF gradient cannot be normalized
// into a boundary normal.
const fitTol = 1.e-10

// fitBoundary regresses the corner SDF values against the corner coordinates
// to obtain the half-space normal·x + offset >= 0 covering the solid phase
// (positive SDF = fluid), together with the Jacobian of (normal, offset)
// with respect to each corner SDF value.
//
// The least-squares solution is a fixed linear map P of the SDF snapshot,
// P = (AᵀA)⁻¹Aᵀ with design matrix A = [corner coords | 1], so the raw
// Jacobian is P itself; the post-hoc normalization contributes the usual
// (I - n nᵀ)/|g| projection.
//
// A uniform-sign snapshot with a near-zero gradient is a single-phase cell:
// it is reported with a zero normal and offset ±1 selecting the phase, and
// zero gradients. A mixed-sign snapshot with a near-zero gradient is
// ErrDegenerateGeometry.
func fitBoundary(dim int, sdfAtCorners []float64) (normal utils.Vector, offset float64,
	normalGradients utils.Matrix, offsetGradients utils.Vector, err error) {
	var (
		nc = cornerNumProd(dim)
	)
	normal = utils.NewVector(dim)
	normalGradients = utils.NewMatrix(dim, nc)
	offsetGradients = utils.NewVector(nc)

	P, err := cornerPseudoInverse(dim)
	if err != nil {
		return
	}
	// Solid is where the fitted SDF is non-positive, so the solid half-space
	// carries the negated fit.
	var (
		g = make([]float64, dim)
		c float64
	)
	for i := 0; i < nc; i++ {
		for d := 0; d < dim; d++ {
			g[d] -= P.At(d, i) * sdfAtCorners[i]
		}
		c -= P.At(dim, i) * sdfAtCorners[i]
	}
	var norm2 float64
	for d := 0; d < dim; d++ {
		norm2 += g[d] * g[d]
	}
	norm := math.Sqrt(norm2)

	if norm < fitTol {
		minSDF, maxSDF := sdfAtCorners[0], sdfAtCorners[0]
		for _, v := range sdfAtCorners[1:] {
			minSDF = math.Min(minSDF, v)
			maxSDF = math.Max(maxSDF, v)
		}
		switch {
		case minSDF > 0: // all fluid
			offset = -1
		case maxSDF <= 0: // all solid, boundary-incident corners included
			offset = 1
		default:
			err = fmt.Errorf("%w: |grad| = %g with mixed corner signs", ErrDegenerateGeometry, norm)
		}
		return
	}

	for d := 0; d < dim; d++ {
		normal.SetVec(d, g[d]/norm)
	}
	offset = c / norm
	for i := 0; i < nc; i++ {
		// Raw sensitivities of the negated fit.
		var (
			dg = make([]float64, dim)
			dc = -P.At(dim, i)
		)
		for d := 0; d < dim; d++ {
			dg[d] = -P.At(d, i)
		}
		var nDotDg float64
		for d := 0; d < dim; d++ {
			nDotDg += normal.AtVec(d) * dg[d]
		}
		for d := 0; d < dim; d++ {
			normalGradients.Set(d, i, (dg[d]-normal.AtVec(d)*nDotDg)/norm)
		}
		offsetGradients.SetVec(i, (dc-offset*nDotDg)/norm)
	}
	return
}

// cornerPseudoInverse builds (AᵀA)⁻¹Aᵀ for the fixed corner design matrix.
// It depends only on dim.
func cornerPseudoInverse(dim int) (P utils.Matrix, err error) {
	var (
		nc = cornerNumProd(dim)
		A  = utils.NewMatrix(nc, dim+1)
	)
	for i := 0; i < nc; i++ {
		for d := 0; d < dim; d++ {
			A.Set(i, d, cornerCoordinate(dim, i, d))
		}
		A.Set(i, dim, 1)
	}
	AT := A.Transpose()
	ATAInv, err := AT.Mul(A).Inverse()
	if err != nil {
		return
	}
	P = ATAInv.Mul(AT)
	return
}
