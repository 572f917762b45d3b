// Package cell computes, for a single cell of a regular Cartesian mesh, the
// cut-cell geometry and physics needed by a differentiable fluid/solid
// boundary solver: fluid area, boundary plane, elastic/viscous energy
// quadratic form, boundary-integral vector, and the closed-form gradient of
// each of these with respect to the SDF values at the cell's corners.
//
// A Cell is fully computed at construction and immutable afterwards; the
// computation is a pure function of its inputs, so callers may build cells
// concurrently without synchronization.
package cell

import (
	"fmt"

	"github.com/diffstokes/cutcell/utils"
)

type Cell struct {
	dim           int
	e, nu, la, mu float64
	threshold     float64
	edgeSampleNum int
	cornerNumProd int
	sampleNumProd int

	// normal·x + offset >= 0 is the solid phase; positive SDF is fluid.
	normal utils.Vector
	offset float64

	sampleAreas         []float64
	sampleBoundaryAreas []float64
	area                float64

	energyMatrix    utils.Matrix
	dirichletVector utils.Vector

	// Gradients w.r.t. the corner SDF values; the corner index is the
	// trailing axis (column) throughout.
	normalGradients              utils.Matrix
	offsetGradients              utils.Vector
	sampleAreasGradients         utils.Matrix
	sampleBoundaryAreasGradients utils.Matrix
	areaGradients                utils.Vector
	energyMatrixGradients        []utils.Matrix
	dirichletVectorGradients     utils.Matrix
}

// NewCell builds and fully evaluates one cell. The SDF snapshot must hold
// 2^dim values in corner-bit order (axis 0 in the most significant bit).
// All validation happens here: a Cell is never observable in a partially
// computed or NaN-carrying state.
func NewCell(dim int, e, nu, threshold float64, edgeSampleNum int, sdfAtCorners []float64) (c *Cell, err error) {
	switch {
	case dim != 2 && dim != 3:
		return nil, fmt.Errorf("%w: dim = %d, must be 2 or 3", ErrConfiguration, dim)
	case e <= 0:
		return nil, fmt.Errorf("%w: Young's modulus E = %g, must be positive", ErrConfiguration, e)
	case nu >= 0.5 || nu <= -1:
		return nil, fmt.Errorf("%w: Poisson ratio nu = %g, must lie in (-1, 0.5)", ErrConfiguration, nu)
	case threshold < 0 || threshold >= 0.5:
		return nil, fmt.Errorf("%w: threshold = %g, must lie in [0, 0.5)", ErrConfiguration, threshold)
	case edgeSampleNum < 1:
		return nil, fmt.Errorf("%w: edgeSampleNum = %d, must be >= 1", ErrConfiguration, edgeSampleNum)
	}
	if len(sdfAtCorners) != cornerNumProd(dim) {
		return nil, fmt.Errorf("%w: have %d values, need %d", ErrInputShape, len(sdfAtCorners), cornerNumProd(dim))
	}
	c = &Cell{
		dim:           dim,
		e:             e,
		nu:            nu,
		la:            e * nu / ((1 + nu) * (1 - 2*nu)),
		mu:            e / (2 * (1 + nu)),
		threshold:     threshold,
		edgeSampleNum: edgeSampleNum,
		cornerNumProd: cornerNumProd(dim),
		sampleNumProd: intPow(edgeSampleNum, dim),
	}
	c.normal, c.offset, c.normalGradients, c.offsetGradients, err = fitBoundary(dim, sdfAtCorners)
	if err != nil {
		return nil, err
	}
	c.sampleAreas, c.sampleBoundaryAreas, c.sampleAreasGradients, c.sampleBoundaryAreasGradients =
		computeSampleGeometry(dim, edgeSampleNum, c.normal, c.offset, c.normalGradients, c.offsetGradients)
	c.areaGradients = utils.NewVector(c.cornerNumProd)
	for s := 0; s < c.sampleNumProd; s++ {
		c.area += c.sampleAreas[s]
		c.areaGradients.AddScaled(c.sampleAreasGradients.Row(s), 1)
	}
	c.energyMatrix, c.energyMatrixGradients =
		computeEnergyMatrix(dim, edgeSampleNum, c.la, c.mu, c.sampleAreas, c.sampleAreasGradients)
	c.dirichletVector, c.dirichletVectorGradients =
		computeDirichletVector(dim, edgeSampleNum, c.sampleBoundaryAreas, c.sampleBoundaryAreasGradients)
	return
}

func (c *Cell) Dim() int           { return c.dim }
func (c *Cell) CornerNumProd() int { return c.cornerNumProd }
func (c *Cell) SampleNumProd() int { return c.sampleNumProd }
func (c *Cell) EdgeSampleNum() int { return c.edgeSampleNum }

// CornerNums is the per-axis corner count, (2, 2) in 2D and (2, 2, 2) in 3D.
func (c *Cell) CornerNums() (nums []int) {
	nums = make([]int, c.dim)
	for d := range nums {
		nums[d] = 2
	}
	return
}

// SampleNums is the per-axis sub-cell count.
func (c *Cell) SampleNums() (nums []int) {
	nums = make([]int, c.dim)
	for d := range nums {
		nums[d] = c.edgeSampleNum
	}
	return
}

// Normal is the unit boundary normal of the fitted solid half-space. For a
// degenerate single-phase cell there is no boundary and the normal is the
// zero vector with offset ±1 selecting the phase.
func (c *Cell) Normal() utils.Vector { return c.normal }
func (c *Cell) Offset() float64      { return c.offset }

func (c *Cell) SampleAreas() []float64         { return c.sampleAreas }
func (c *Cell) SampleBoundaryAreas() []float64 { return c.sampleBoundaryAreas }

func (c *Cell) SampleArea(sampleIdx int) float64 { return c.sampleAreas[sampleIdx] }
func (c *Cell) SampleBoundaryArea(sampleIdx int) float64 {
	return c.sampleBoundaryAreas[sampleIdx]
}

// SampleAreaAt addresses a sample by its per-axis multi-index.
func (c *Cell) SampleAreaAt(sampleIdx []int) float64 {
	return c.sampleAreas[multiToFlat(c.dim, c.edgeSampleNum, sampleIdx)]
}

func (c *Cell) SampleBoundaryAreaAt(sampleIdx []int) float64 {
	return c.sampleBoundaryAreas[multiToFlat(c.dim, c.edgeSampleNum, sampleIdx)]
}

// Area is the total fluid area (volume in 3D) of the cell, in [0, 1].
func (c *Cell) Area() float64 { return c.area }

// EnergyMatrix is the symmetric quadratic form over the flattened corner
// velocities (DOF index corner*dim + component).
func (c *Cell) EnergyMatrix() utils.Matrix { return c.energyMatrix }

// DirichletVector holds per-corner boundary-integral weights; u[c]·d is the
// boundary integral of velocity component c.
func (c *Cell) DirichletVector() utils.Vector { return c.dirichletVector }

func (c *Cell) NormalGradients() utils.Matrix { return c.normalGradients }
func (c *Cell) OffsetGradients() utils.Vector { return c.offsetGradients }
func (c *Cell) SampleAreasGradients() utils.Matrix {
	return c.sampleAreasGradients
}
func (c *Cell) SampleBoundaryAreasGradients() utils.Matrix {
	return c.sampleBoundaryAreasGradients
}
func (c *Cell) AreaGradients() utils.Vector { return c.areaGradients }

// EnergyMatrixGradients has one matrix slice per corner SDF value.
func (c *Cell) EnergyMatrixGradients() []utils.Matrix { return c.energyMatrixGradients }
func (c *Cell) DirichletVectorGradients() utils.Matrix {
	return c.dirichletVectorGradients
}

func (c *Cell) IsSolidCell() bool { return c.area <= c.threshold }
func (c *Cell) IsFluidCell() bool { return c.area >= 1-c.threshold }
func (c *Cell) IsMixedCell() bool { return !c.IsSolidCell() && !c.IsFluidCell() }

// LameParameters returns (lambda, mu) derived from (E, nu).
func (c *Cell) LameParameters() (la, mu float64) { return c.la, c.mu }
