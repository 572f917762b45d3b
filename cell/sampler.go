package cell

import (
	"github.com/diffstokes/cutcell/utils"
)

// Axes whose normal component is below clipTol do not tilt the plane within
// a sub-cell; they are factored out as an extrusion.
const clipTol = 1.e-10

// boxClip carries the fluid volume and boundary measure of one axis-aligned
// box clipped by the half-space normal·x + offset >= 0 (the solid side),
// with partials w.r.t. the plane parameters. The boundary measure assumes a
// unit normal.
type boxClip struct {
	vol, bnd           float64
	volGradN, bndGradN []float64
	volGradB, bndGradB float64
}

// clipBox evaluates the closed-form clip of the box ∏[lo_d, hi_d] by the
// plane φ(x) = n·x + b, with fluid on the φ < 0 side. The fluid volume is
// the alternating corner sum
//
//	V = X/(k!·Πn_d) Σ_v σ_v relu(-φ(v))^k
//
// over the k non-degenerate axes, with X the extruded length of the
// remaining axes and σ_v the corner parity; the boundary measure is -∂V/∂b
// and both are differentiated in closed form. Plane-incident corners count
// as solid (relu and Heaviside take their zero branch), which keeps the
// area single-valued at grazing configurations.
func clipBox(dim int, n []float64, b float64, lo, hi []float64) (c boxClip) {
	c.volGradN = make([]float64, dim)
	c.bndGradN = make([]float64, dim)
	var (
		nc     = cornerNumProd(dim)
		boxVol = 1.0
	)
	for d := 0; d < dim; d++ {
		boxVol *= hi[d] - lo[d]
	}
	// Classify by the plane values at the true box corners.
	minPhi, maxPhi := b, b
	for i := 0; i < nc; i++ {
		phi := b
		for d := 0; d < dim; d++ {
			if cornerBit(dim, i, d) == 1 {
				phi += n[d] * hi[d]
			} else {
				phi += n[d] * lo[d]
			}
		}
		if i == 0 {
			minPhi, maxPhi = phi, phi
		} else {
			if phi < minPhi {
				minPhi = phi
			}
			if phi > maxPhi {
				maxPhi = phi
			}
		}
	}
	if minPhi >= 0 { // fully solid
		return
	}
	if maxPhi <= 0 { // fully fluid
		c.vol = boxVol
		return
	}

	// Cut box: reduce to the axes the plane actually tilts along.
	var (
		axes []int
		x    = 1.0 // extrusion factor
		bMid = b
	)
	for d := 0; d < dim; d++ {
		if n[d] > clipTol || n[d] < -clipTol {
			axes = append(axes, d)
		} else {
			x *= hi[d] - lo[d]
			bMid += n[d] * (lo[d] + hi[d]) / 2
		}
	}
	k := len(axes)
	if k == 0 { // constant plane value over the box
		if bMid < 0 {
			c.vol = boxVol
		}
		return
	}
	prodN := 1.0
	for _, d := range axes {
		prodN *= n[d]
	}
	var (
		rc     = 1 << k
		sumRk  float64                // Σ σ relu(-φ)^k
		sumW1  float64                // Σ σ W1, W1 = relu^{k-1} (k>1) or Heaviside (k=1)
		sumW2  float64                // Σ σ W2, W2 = relu^{k-2} (k>2) or Heaviside (k=2)
		momV   = make([]float64, dim) // Σ σ W1 v_d
		momB   = make([]float64, dim) // Σ σ W2 v_d
		coords = make([]float64, dim)
	)
	for i := 0; i < rc; i++ {
		var (
			phi   = bMid
			sigma = 1.0
		)
		for j, d := range axes {
			if (i>>(k-1-j))&1 == 1 {
				coords[d] = hi[d]
				sigma = -sigma
			} else {
				coords[d] = lo[d]
			}
			phi += n[d] * coords[d]
		}
		if phi >= 0 { // solid corner contributes nothing
			continue
		}
		var (
			r  = -phi
			w1 = 1.0
			w2 = 1.0
		)
		if k > 1 {
			w1 = powFloat(r, k-1)
		}
		if k > 2 {
			w2 = powFloat(r, k-2)
		}
		sumRk += sigma * powFloat(r, k)
		sumW1 += sigma * w1
		sumW2 += sigma * w2
		for _, d := range axes {
			momV[d] += sigma * w1 * coords[d]
			momB[d] += sigma * w2 * coords[d]
		}
	}
	var (
		factK  = float64(factorial(k))
		factK1 = float64(factorial(k - 1))
	)
	c.vol = x * sumRk / (factK * prodN)
	c.bnd = x * sumW1 / (factK1 * prodN)
	c.volGradB = -c.bnd
	for _, d := range axes {
		c.volGradN[d] = -c.vol/n[d] - x*momV[d]/(factK1*prodN)
	}
	if k >= 2 {
		factK2 := float64(factorial(k - 2))
		c.bndGradB = -x * sumW2 / (factK2 * prodN)
		for _, d := range axes {
			c.bndGradN[d] = -c.bnd/n[d] - x*momB[d]/(factK2*prodN)
		}
	} else {
		// An axis-aligned cut slides without changing its measure.
		a := axes[0]
		c.bndGradN[a] = -c.bnd / n[a]
	}
	for d := 0; d < dim; d++ {
		if n[d] <= clipTol && n[d] >= -clipTol {
			// An extruded axis enters only through the midpoint shift of the
			// effective offset, so both partials follow the first-moment
			// identity ∂/∂n_d = x̄_d ∂/∂b.
			mid := (lo[d] + hi[d]) / 2
			c.volGradN[d] = mid * c.volGradB
			c.bndGradN[d] = mid * c.bndGradB
		}
	}
	return
}

// computeSampleGeometry clips every sub-cell of the edgeSampleNum^dim
// subdivision against the fitted plane and chains the plane Jacobians into
// per-corner SDF gradients.
func computeSampleGeometry(dim, edgeSampleNum int, normal utils.Vector, offset float64,
	normalGradients utils.Matrix, offsetGradients utils.Vector) (
	areas, boundaryAreas []float64, areaGradients, boundaryAreaGradients utils.Matrix) {
	var (
		nc = cornerNumProd(dim)
		ns = intPow(edgeSampleNum, dim)
		h  = 1 / float64(edgeSampleNum)
		n  = make([]float64, dim)
		lo = make([]float64, dim)
		hi = make([]float64, dim)
	)
	areas = make([]float64, ns)
	boundaryAreas = make([]float64, ns)
	areaGradients = utils.NewMatrix(ns, nc)
	boundaryAreaGradients = utils.NewMatrix(ns, nc)
	for d := 0; d < dim; d++ {
		n[d] = normal.AtVec(d)
	}
	for s := 0; s < ns; s++ {
		multi := flatToMulti(dim, edgeSampleNum, s)
		for d := 0; d < dim; d++ {
			lo[d] = float64(multi[d]) * h
			hi[d] = float64(multi[d]+1) * h
		}
		c := clipBox(dim, n, offset, lo, hi)
		areas[s] = c.vol
		boundaryAreas[s] = c.bnd
		for i := 0; i < nc; i++ {
			var dVol, dBnd float64
			for d := 0; d < dim; d++ {
				dVol += c.volGradN[d] * normalGradients.At(d, i)
				dBnd += c.bndGradN[d] * normalGradients.At(d, i)
			}
			dVol += c.volGradB * offsetGradients.AtVec(i)
			dBnd += c.bndGradB * offsetGradients.AtVec(i)
			areaGradients.Set(s, i, dVol)
			boundaryAreaGradients.Set(s, i, dBnd)
		}
	}
	return
}

func powFloat(x float64, p int) (y float64) {
	y = 1
	for i := 0; i < p; i++ {
		y *= x
	}
	return
}

func factorial(k int) (f int) {
	f = 1
	for i := 2; i <= k; i++ {
		f *= i
	}
	return
}
