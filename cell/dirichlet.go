package cell

import (
	"github.com/diffstokes/cutcell/utils"
)

// computeDirichletVector accumulates the per-corner interpolation weights
// scaled by each sample's boundary measure:
//
//	d_j = Σ_s N_j(center_s) * boundaryArea_s
//
// so u[c]·d approximates the boundary integral of velocity component c.
// The weights are fixed, so the gradient columns are the same combination
// of the boundary-area gradients.
func computeDirichletVector(dim, edgeSampleNum int,
	sampleBoundaryAreas []float64, sampleBoundaryAreasGradients utils.Matrix) (
	dirichletVector utils.Vector, dirichletVectorGradients utils.Matrix) {
	var (
		nc = cornerNumProd(dim)
		ns = intPow(edgeSampleNum, dim)
		h  = 1 / float64(edgeSampleNum)
	)
	dirichletVector = utils.NewVector(nc)
	dirichletVectorGradients = utils.NewMatrix(nc, nc)
	center := make([]float64, dim)
	for s := 0; s < ns; s++ {
		multi := flatToMulti(dim, edgeSampleNum, s)
		for d := 0; d < dim; d++ {
			center[d] = (float64(multi[d]) + 0.5) * h
		}
		for j := 0; j < nc; j++ {
			w := shapeValue(dim, j, center)
			dirichletVector.SetVec(j, dirichletVector.AtVec(j)+w*sampleBoundaryAreas[s])
			for i := 0; i < nc; i++ {
				dirichletVectorGradients.Set(j, i,
					dirichletVectorGradients.At(j, i)+w*sampleBoundaryAreasGradients.At(s, i))
			}
		}
	}
	return
}
