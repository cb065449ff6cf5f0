package mathx

import "math"

// barycentricTolerance is the abs-diff tolerance for "alpha+beta+gamma ~= 1".
const barycentricTolerance = 1e-6

// Barycentric computes the barycentric coordinates (alpha, beta, gamma) of
// point p with respect to triangle (a, b, c), by projecting p onto the
// triangle's plane.
func Barycentric(p, a, b, c Vector3) (alpha, beta, gamma float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 0, 0, 0
	}

	beta = (d11*d20 - d01*d21) / denom
	gamma = (d00*d21 - d01*d20) / denom
	alpha = 1 - beta - gamma
	return alpha, beta, gamma
}

// PointInTriangle reports whether p lies inside triangle (a, b, c) (after
// projection onto its plane).
func PointInTriangle(p, a, b, c Vector3) bool {
	alpha, beta, gamma := Barycentric(p, a, b, c)
	if alpha < 0 || beta < 0 || gamma < 0 {
		return false
	}
	return math.Abs(alpha+beta+gamma-1) <= barycentricTolerance
}
