package cell

import (
	"github.com/diffstokes/cutcell/utils"
)

/*
Energy quadratic form over the flattened corner velocities, DOF index
corner*dim + component (8 DOFs in 2D, 24 in 3D):

	E = 0.5 * uᵀ * K * u

assembled by quadrature over the sub-cell samples with the fluid areas as
weights. Only the area weight depends on the SDF snapshot, so the per-sample
quadratic term is fixed and the gradient tensor is a linear combination of
the area gradients.
*/

// velocityToDeformationGradient maps the flattened corner velocities to the
// deformation gradient F at material coordinates x: row c*dim+d is the
// linear functional producing F_cd = ∂u_c/∂x_d, built from the multilinear
// shape-function derivatives.
func velocityToDeformationGradient(dim int, x []float64) (B utils.Matrix) {
	var (
		nc   = cornerNumProd(dim)
		ndof = dim * nc
	)
	B = utils.NewMatrix(dim*dim, ndof)
	for j := 0; j < nc; j++ {
		for d := 0; d < dim; d++ {
			dN := shapeGradient(dim, j, d, x)
			for c := 0; c < dim; c++ {
				B.Set(c*dim+d, j*dim+c, dN)
			}
		}
	}
	return
}

// sampleEnergyQuadratic builds the fixed per-sample quadratic term Q such
// that 0.5 uᵀQu is the isotropic energy density mu*|eps|^2 + la/2*tr(eps)^2
// at the sample's center.
func sampleEnergyQuadratic(dim int, la, mu float64, center []float64) (Q utils.Matrix) {
	var (
		ndof = dim * cornerNumProd(dim)
		B    = velocityToDeformationGradient(dim, center)
	)
	// Symmetrize F into the strain eps = (F + Fᵀ)/2.
	S := utils.NewMatrix(dim*dim, dim*dim)
	for c := 0; c < dim; c++ {
		for d := 0; d < dim; d++ {
			S.Set(c*dim+d, c*dim+d, S.At(c*dim+d, c*dim+d)+0.5)
			S.Set(c*dim+d, d*dim+c, S.At(c*dim+d, d*dim+c)+0.5)
		}
	}
	E := S.Mul(B) // DOFs -> vec(eps)
	// Trace functional g·u = tr(eps).
	g := utils.NewVector(ndof)
	for c := 0; c < dim; c++ {
		g.AddScaled(E.Row(c*dim+c), 1)
	}
	Q = E.Transpose().Mul(E).Scale(2 * mu)
	Q.AddScaled(g.Outer(g), la)
	return
}

// computeEnergyMatrix assembles K = Σ a_s Q_s and its per-corner gradient
// slices ∂K/∂sdf_i = Σ Q_s ∂a_s/∂sdf_i.
func computeEnergyMatrix(dim, edgeSampleNum int, la, mu float64,
	sampleAreas []float64, sampleAreasGradients utils.Matrix) (
	energyMatrix utils.Matrix, energyMatrixGradients []utils.Matrix) {
	var (
		nc   = cornerNumProd(dim)
		ns   = intPow(edgeSampleNum, dim)
		ndof = dim * nc
		h    = 1 / float64(edgeSampleNum)
	)
	energyMatrix = utils.NewMatrix(ndof, ndof)
	energyMatrixGradients = make([]utils.Matrix, nc)
	for i := 0; i < nc; i++ {
		energyMatrixGradients[i] = utils.NewMatrix(ndof, ndof)
	}
	center := make([]float64, dim)
	for s := 0; s < ns; s++ {
		multi := flatToMulti(dim, edgeSampleNum, s)
		for d := 0; d < dim; d++ {
			center[d] = (float64(multi[d]) + 0.5) * h
		}
		Q := sampleEnergyQuadratic(dim, la, mu, center)
		energyMatrix.AddScaled(Q, sampleAreas[s])
		for i := 0; i < nc; i++ {
			energyMatrixGradients[i].AddScaled(Q, sampleAreasGradients.At(s, i))
		}
	}
	return
}
