package field

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffstokes/cutcell/cell"
)

func TestGrid2DCornerSDF(t *testing.T) {
	// Circle of radius 0.25 centered in the unit square, 2x2 grid.
	circle, err := sdf.Circle2D(0.25)
	require.NoError(t, err)
	shape := sdf.Transform2D(circle, sdf.Translate2d(v2.Vec{X: 0.5, Y: 0.5}))

	g, err := NewGrid2D(shape, v2.Vec{}, 0.5, 2, 2)
	require.NoError(t, err)

	s := g.CornerSDF(0, 0)
	require.Len(t, s, 4)
	// Corner 3 is (1,1) of cell (0,0) = domain center, well inside the solid.
	assert.InDelta(t, -0.25/0.5, s[3], 1.e-12)
	// Corner 0 is the domain origin, outside (fluid).
	assert.InDelta(t, (math.Sqrt2*0.5-0.25)/0.5, s[0], 1.e-12)
	// Corner 1 is (0,1): (0, 0.5) in world coordinates, on the circle's
	// horizontal axis.
	assert.InDelta(t, (0.5-0.25)/0.5, s[1], 1.e-12)

	// Snapshots feed straight into cell construction.
	c, err := cell.NewCell(2, 1, 0.3, 0.1, 2, s)
	require.NoError(t, err)
	assert.True(t, c.IsMixedCell())
}

func TestGrid3DCornerSDF(t *testing.T) {
	sphere, err := sdf.Sphere3D(0.25)
	require.NoError(t, err)
	shape := sdf.Transform3D(sphere, sdf.Translate3d(v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}))

	g, err := NewGrid3D(shape, v3.Vec{}, 0.5, 2, 2, 2)
	require.NoError(t, err)

	s := g.CornerSDF(0, 0, 0)
	require.Len(t, s, 8)
	// Corner 7 is the domain center.
	assert.InDelta(t, -0.5, s[7], 1.e-12)
	// Corner 0 is the origin.
	assert.InDelta(t, (math.Sqrt(3)*0.5-0.25)/0.5, s[0], 1.e-12)

	// The sphere only clips a small corner of this cell: mostly fluid.
	c, err := cell.NewCell(3, 1, 0.3, 0.1, 2, s)
	require.NoError(t, err)
	assert.True(t, c.IsFluidCell())
	assert.Greater(t, c.Area(), 0.9)
	assert.Less(t, c.Area(), 1.)
}

func TestGridValidation(t *testing.T) {
	circle, err := sdf.Circle2D(0.25)
	require.NoError(t, err)
	_, err = NewGrid2D(circle, v2.Vec{}, 0, 2, 2)
	assert.Error(t, err)
	_, err = NewGrid2D(circle, v2.Vec{}, 0.5, 0, 2)
	assert.Error(t, err)
}
