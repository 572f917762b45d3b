package cell

/*
Unit cell coordinates: lower corner (0,...,0), upper corner (1,...,1).

A corner's flat index encodes its coordinates bitwise with axis 0 in the
most significant bit: the coordinate of corner i along axis d is
(i >> (dim-1-d)) & 1. Sub-cell sample indices flatten the same way
(row-major, axis 0 slowest). SDF snapshots, gradient columns and the
dirichlet vector all follow this ordering.
*/

func cornerNumProd(dim int) int { return 1 << dim }

func cornerBit(dim, corner, axis int) int {
	return (corner >> (dim - 1 - axis)) & 1
}

func cornerCoordinate(dim, corner, axis int) float64 {
	return float64(cornerBit(dim, corner, axis))
}

func intPow(base, exp int) (p int) {
	p = 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return
}

func multiToFlat(dim, edge int, multi []int) (flat int) {
	for d := 0; d < dim; d++ {
		flat = flat*edge + multi[d]
	}
	return
}

func flatToMulti(dim, edge, flat int) (multi []int) {
	multi = make([]int, dim)
	for d := dim - 1; d >= 0; d-- {
		multi[d] = flat % edge
		flat /= edge
	}
	return
}

// shapeValue is the multilinear interpolation weight of a corner at material
// coordinates x in the unit cell.
func shapeValue(dim, corner int, x []float64) (val float64) {
	val = 1
	for d := 0; d < dim; d++ {
		if cornerBit(dim, corner, d) == 1 {
			val *= x[d]
		} else {
			val *= 1 - x[d]
		}
	}
	return
}

// shapeGradient is the partial of shapeValue along one axis.
func shapeGradient(dim, corner, axis int, x []float64) (val float64) {
	val = 1
	for d := 0; d < dim; d++ {
		if d == axis {
			continue
		}
		if cornerBit(dim, corner, d) == 1 {
			val *= x[d]
		} else {
			val *= 1 - x[d]
		}
	}
	if cornerBit(dim, corner, axis) == 0 {
		val = -val
	}
	return
}
