package cell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCellValidation(t *testing.T) {
	sdf2 := []float64{0.5, 0.1, -0.3, -0.7}
	// Configuration errors
	{
		_, err := NewCell(1, 1, 0.3, 0.1, 2, []float64{1, -1})
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(4, 1, 0.3, 0.1, 2, make([]float64, 16))
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(2, 0, 0.3, 0.1, 2, sdf2)
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(2, 1, 0.5, 0.1, 2, sdf2)
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(2, 1, 0.3, 0.5, 2, sdf2)
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(2, 1, 0.3, -0.1, 2, sdf2)
		assert.ErrorIs(t, err, ErrConfiguration)
		_, err = NewCell(2, 1, 0.3, 0.1, 0, sdf2)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
	// Input shape errors
	{
		_, err := NewCell(2, 1, 0.3, 0.1, 2, []float64{1, -1, 1})
		assert.ErrorIs(t, err, ErrInputShape)
		_, err = NewCell(3, 1, 0.3, 0.1, 2, sdf2)
		assert.ErrorIs(t, err, ErrInputShape)
	}
	// Degenerate geometry: checkerboard corners have a zero least-squares
	// gradient with mixed signs.
	{
		_, err := NewCell(2, 1, 0.3, 0.1, 2, []float64{1, -1, -1, 1})
		assert.ErrorIs(t, err, ErrDegenerateGeometry)
	}
}

func TestUniformSDF(t *testing.T) {
	for _, dim := range []int{2, 3} {
		nc := cornerNumProd(dim)
		// All positive: fully fluid, insensitive to the SDF magnitude.
		{
			sdf := make([]float64, nc)
			for i := range sdf {
				sdf[i] = 1
			}
			c, err := NewCell(dim, 1, 0.3, 0.1, 3, sdf)
			require.NoError(t, err)
			assert.InDelta(t, 1, c.Area(), 1.e-12)
			assert.True(t, c.IsFluidCell())
			assert.False(t, c.IsSolidCell())
			assert.False(t, c.IsMixedCell())
			assert.Equal(t, 0., c.AreaGradients().Norm())
			assert.Equal(t, 0., c.DirichletVector().Norm())
			for _, g := range c.EnergyMatrixGradients() {
				assert.Equal(t, 0., g.SymmetryError())
				assert.Equal(t, 0., frobenius(g))
			}
		}
		// All negative: fully solid, zero energy.
		{
			sdf := make([]float64, nc)
			for i := range sdf {
				sdf[i] = -1
			}
			c, err := NewCell(dim, 1, 0.3, 0.1, 3, sdf)
			require.NoError(t, err)
			assert.InDelta(t, 0, c.Area(), 1.e-12)
			assert.True(t, c.IsSolidCell())
			assert.Equal(t, 0., frobenius(c.EnergyMatrix()))
			assert.Equal(t, 0., c.DirichletVector().Norm())
		}
	}
}

func TestHalfPlaneCut2D(t *testing.T) {
	// sdf = 0.5 - 0.8x - 0.4y at the corners: exactly linear, so the fit and
	// the clipped areas are exact for every sample resolution.
	sdf := []float64{0.5, 0.1, -0.3, -0.7}
	var (
		wantArea = 0.375
		wantBnd  = math.Sqrt(1.25)
	)
	for _, s := range []int{1, 2, 3, 4, 8, 16} {
		c, err := NewCell(2, 1, 0.3, 0.1, s, sdf)
		require.NoError(t, err)
		assert.InDelta(t, wantArea, c.Area(), 1.e-12)
		assert.True(t, c.IsMixedCell())

		// Solid half-space is 0.8x + 0.4y >= 0.5, normalized.
		norm := math.Sqrt(0.8)
		assert.InDelta(t, 0.8/norm, c.Normal().AtVec(0), 1.e-12)
		assert.InDelta(t, 0.4/norm, c.Normal().AtVec(1), 1.e-12)
		assert.InDelta(t, -0.5/norm, c.Offset(), 1.e-12)

		var sumArea, sumBnd float64
		for i := 0; i < c.SampleNumProd(); i++ {
			assert.GreaterOrEqual(t, c.SampleArea(i), 0.)
			assert.GreaterOrEqual(t, c.SampleBoundaryArea(i), 0.)
			h := 1 / float64(s)
			assert.LessOrEqual(t, c.SampleBoundaryArea(i), math.Sqrt2*h+1.e-12)
			sumArea += c.SampleArea(i)
			sumBnd += c.SampleBoundaryArea(i)
		}
		assert.InDelta(t, c.Area(), sumArea, 1.e-9)
		assert.InDelta(t, wantBnd, sumBnd, 1.e-12)
	}
}

func TestDiagonalCut2D(t *testing.T) {
	// Sign flip across the cell diagonal: boundary through the center with a
	// diagonal normal, half fluid.
	c, err := NewCell(2, 1, 0.3, 0.1, 4, []float64{1, 0, 0, -1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.Area(), 1.e-12)
	assert.InDelta(t, 1/math.Sqrt2, c.Normal().AtVec(0), 1.e-12)
	assert.InDelta(t, 1/math.Sqrt2, c.Normal().AtVec(1), 1.e-12)
	// Plane passes through the cell center.
	center := c.Normal().AtVec(0)*0.5 + c.Normal().AtVec(1)*0.5 + c.Offset()
	assert.InDelta(t, 0, center, 1.e-12)
	var sumBnd float64
	for _, b := range c.SampleBoundaryAreas() {
		sumBnd += b
	}
	assert.InDelta(t, math.Sqrt2, sumBnd, 1.e-12)
}

func TestClassificationPartition(t *testing.T) {
	snapshots := [][]float64{
		{1, 1, 1, 1},
		{-1, -1, -1, -1},
		{0.5, 0.1, -0.3, -0.7},
		{1, 0, 0, -1},
		{0.9, 0.8, 0.7, 0.6},
		{-0.05, -0.1, -0.2, -0.15},
		{0.02, 0.01, -0.01, -0.02},
	}
	for _, sdf := range snapshots {
		c, err := NewCell(2, 1, 0.3, 0.2, 4, sdf)
		require.NoError(t, err)
		count := 0
		for _, pred := range []bool{c.IsSolidCell(), c.IsFluidCell(), c.IsMixedCell()} {
			if pred {
				count++
			}
		}
		assert.Equal(t, 1, count, "sdf = %v", sdf)
		assert.GreaterOrEqual(t, c.Area(), 0.)
		assert.LessOrEqual(t, c.Area(), 1.)
	}
}

func TestLinearCut3D(t *testing.T) {
	// sdf = 0.4 - 0.5x - 0.35y - 0.2z: exact linear field, generic normal.
	sdf := corner3DField(func(x, y, z float64) float64 {
		return 0.4 - 0.5*x - 0.35*y - 0.2*z
	})
	var ref float64
	for _, s := range []int{1, 2, 3, 4} {
		c, err := NewCell(3, 1, 0.3, 0.1, s, sdf)
		require.NoError(t, err)
		norm := math.Sqrt(0.5*0.5 + 0.35*0.35 + 0.2*0.2)
		assert.InDelta(t, 0.5/norm, c.Normal().AtVec(0), 1.e-12)
		assert.InDelta(t, 0.35/norm, c.Normal().AtVec(1), 1.e-12)
		assert.InDelta(t, 0.2/norm, c.Normal().AtVec(2), 1.e-12)
		var sum float64
		for _, a := range c.SampleAreas() {
			sum += a
		}
		assert.InDelta(t, c.Area(), sum, 1.e-9)
		if s == 1 {
			ref = c.Area()
		} else {
			// Exact clipping of an exactly planar boundary: resolution
			// independent.
			assert.InDelta(t, ref, c.Area(), 1.e-12)
		}
	}
}

func TestEnergyMatrixProperties(t *testing.T) {
	snapshots := map[int][][]float64{
		2: {
			{0.5, 0.1, -0.3, -0.7},
			{1, 0, 0, -1},
			{1, 1, 1, 1},
		},
		3: {
			corner3DField(func(x, y, z float64) float64 { return 0.4 - 0.5*x - 0.35*y - 0.2*z }),
			corner3DField(func(x, y, z float64) float64 { return 0.45 - 0.6*x - 0.3*y }),
		},
	}
	for dim, list := range snapshots {
		for _, sdf := range list {
			c, err := NewCell(dim, 2.5, 0.3, 0.1, 2, sdf)
			require.NoError(t, err)
			K := c.EnergyMatrix()
			assert.InDelta(t, 0, K.SymmetryError(), 1.e-12)

			ndof := dim * c.CornerNumProd()
			// Rigid translations carry no strain and hence no energy.
			for comp := 0; comp < dim; comp++ {
				u := make([]float64, ndof)
				for j := 0; j < c.CornerNumProd(); j++ {
					u[j*dim+comp] = 1
				}
				assert.InDelta(t, 0, quadForm(K, u), 1.e-12)
			}
			// Linearized rigid rotation (skew velocity gradient) likewise.
			{
				u := make([]float64, ndof)
				for j := 0; j < c.CornerNumProd(); j++ {
					x0 := cornerCoordinate(dim, j, 0)
					x1 := cornerCoordinate(dim, j, 1)
					u[j*dim] = -x1
					u[j*dim+1] = x0
				}
				assert.InDelta(t, 0, quadForm(K, u), 1.e-12)
			}
			// PSD on a deterministic probe set.
			probe := []float64{0.3, -1.2, 0.7, 0.1, -0.4, 1.5, -0.9, 0.6,
				0.2, -0.8, 1.1, -0.3, 0.5, -1.4, 0.9, -0.6, 1.3, -0.2, 0.4, 0.8, -1.1, 0.7, -0.5, 0.1}
			assert.GreaterOrEqual(t, quadForm(K, probe[:ndof]), -1.e-12)

			for _, g := range c.EnergyMatrixGradients() {
				assert.InDelta(t, 0, g.SymmetryError(), 1.e-12)
			}
		}
	}
}

func TestSampleMultiIndexAccessors(t *testing.T) {
	c, err := NewCell(2, 1, 0.3, 0.1, 3, []float64{0.5, 0.1, -0.3, -0.7})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			flat := i*3 + j
			assert.Equal(t, c.SampleArea(flat), c.SampleAreaAt([]int{i, j}))
			assert.Equal(t, c.SampleBoundaryArea(flat), c.SampleBoundaryAreaAt([]int{i, j}))
		}
	}
	assert.Equal(t, []int{2, 2}, c.CornerNums())
	assert.Equal(t, []int{3, 3}, c.SampleNums())
	assert.Equal(t, 4, c.CornerNumProd())
	assert.Equal(t, 9, c.SampleNumProd())
}

// corner3DField samples an analytic field at the 8 corners in corner-bit
// order (x in the most significant bit).
func corner3DField(f func(x, y, z float64) float64) (sdf []float64) {
	sdf = make([]float64, 8)
	for i := 0; i < 8; i++ {
		x := float64((i >> 2) & 1)
		y := float64((i >> 1) & 1)
		z := float64(i & 1)
		sdf[i] = f(x, y, z)
	}
	return
}

func quadForm(K interface {
	Dims() (int, int)
	At(i, j int) float64
}, u []float64) (q float64) {
	n, _ := K.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			q += u[i] * K.At(i, j) * u[j]
		}
	}
	return
}

func frobenius(m interface {
	Dims() (int, int)
	At(i, j int) float64
}) (f float64) {
	nr, nc := m.Dims()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			f += m.At(i, j) * m.At(i, j)
		}
	}
	return math.Sqrt(f)
}
