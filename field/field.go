// Package field samples corner SDF snapshots for the cells of a regular
// Cartesian grid laid over a signed-distance shape from
// github.com/deadsy/sdfx. Snapshots come back in the cell package's
// corner-bit order and are rescaled to unit-cell units, so each grid cell
// can be handed straight to cell.NewCell.
//
// sdfx evaluates negative inside a solid, positive outside, matching the
// cell convention of positive SDF = fluid.
package field

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

type Grid2D struct {
	shape    sdf.SDF2
	origin   v2.Vec
	cellSize float64
	nx, ny   int
}

func NewGrid2D(shape sdf.SDF2, origin v2.Vec, cellSize float64, nx, ny int) (g *Grid2D, err error) {
	if cellSize <= 0 || nx < 1 || ny < 1 {
		err = fmt.Errorf("invalid grid: cellSize = %g, nx = %d, ny = %d", cellSize, nx, ny)
		return
	}
	g = &Grid2D{shape: shape, origin: origin, cellSize: cellSize, nx: nx, ny: ny}
	return
}

func (g *Grid2D) Cells() (nx, ny int) { return g.nx, g.ny }

// CornerSDF evaluates the shape at the four corners of cell (ix, iy), in
// corner-bit order (x in the most significant bit), scaled by the cell edge
// length so magnitudes are distances in unit-cell units.
func (g *Grid2D) CornerSDF(ix, iy int) (sdfAtCorners []float64) {
	sdfAtCorners = make([]float64, 4)
	for i := 0; i < 4; i++ {
		p := v2.Vec{
			X: g.origin.X + float64(ix+(i>>1)&1)*g.cellSize,
			Y: g.origin.Y + float64(iy+i&1)*g.cellSize,
		}
		sdfAtCorners[i] = g.shape.Evaluate(p) / g.cellSize
	}
	return
}

type Grid3D struct {
	shape      sdf.SDF3
	origin     v3.Vec
	cellSize   float64
	nx, ny, nz int
}

func NewGrid3D(shape sdf.SDF3, origin v3.Vec, cellSize float64, nx, ny, nz int) (g *Grid3D, err error) {
	if cellSize <= 0 || nx < 1 || ny < 1 || nz < 1 {
		err = fmt.Errorf("invalid grid: cellSize = %g, nx = %d, ny = %d, nz = %d", cellSize, nx, ny, nz)
		return
	}
	g = &Grid3D{shape: shape, origin: origin, cellSize: cellSize, nx: nx, ny: ny, nz: nz}
	return
}

func (g *Grid3D) Cells() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// CornerSDF evaluates the shape at the eight corners of cell (ix, iy, iz),
// in corner-bit order, scaled to unit-cell units.
func (g *Grid3D) CornerSDF(ix, iy, iz int) (sdfAtCorners []float64) {
	sdfAtCorners = make([]float64, 8)
	for i := 0; i < 8; i++ {
		p := v3.Vec{
			X: g.origin.X + float64(ix+(i>>2)&1)*g.cellSize,
			Y: g.origin.Y + float64(iy+(i>>1)&1)*g.cellSize,
			Z: g.origin.Z + float64(iz+i&1)*g.cellSize,
		}
		sdfAtCorners[i] = g.shape.Evaluate(p) / g.cellSize
	}
	return
}
