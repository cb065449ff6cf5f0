package intersect

import (
	"math"

	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// StaticTriangle solves the ray-plane equation for a fixed triangle and
// checks barycentric containment.
func StaticTriangle(ray RayState, coords [3]mathx.Vector3, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	normal := coords[1].Sub(coords[0]).Cross(coords[2].Sub(coords[0]))
	directionDotNormal := ray.Direction.Dot(normal)
	if directionDotNormal == 0 {
		return 0, mathx.Vector3{}, false
	}

	t := -ray.Origin.Sub(coords[0]).Dot(normal)/(ray.Velocity*directionDotNormal) + float64(ray.Time)
	if uint32(math.Trunc(t)) < tEntry || uint32(math.Ceil(t)) > tExit {
		return 0, mathx.Vector3{}, false
	}

	point := ray.CoordsAtTime(t)
	if !mathx.PointInTriangle(point, coords[0], coords[1], coords[2]) {
		return 0, mathx.Vector3{}, false
	}
	return uint32(math.Round(t)), point, true
}

// MovingTriangle solves the cubic ray-against-interpolated-triangle equation
// between two consecutive surface keyframes.
func MovingTriangle(ray RayState, first, second scenemodel.SurfaceKeyframe, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	d3, d2, d1, d0 := surfacePolynomialParameters(ray, first, second)
	roots := mathx.SolveCubic(d3, d2, d1, d0)

	best := -1.0
	found := false
	for _, root := range roots {
		if root < float64(tEntry) || root > float64(tExit) {
			continue
		}
		if found && best <= root {
			continue
		}

		coords := scenemodel.InterpolateSurfaceKeyframes([]scenemodel.SurfaceKeyframe{first, second}, uint32(math.Round(root)))
		point := ray.CoordsAtTime(root)
		if !mathx.PointInTriangle(point, coords[0], coords[1], coords[2]) {
			continue
		}
		best = root
		hitPoint = point
		found = true
	}

	if !found {
		return 0, mathx.Vector3{}, false
	}
	return uint32(math.Round(best)), hitPoint, true
}

// surfacePolynomialParameters computes the cubic coefficients d3..d0 of the
// ray-plane equation expanded over the interpolated triangle, using a
// cross-product ("g-vector") factoring.
func surfacePolynomialParameters(ray RayState, first, second scenemodel.SurfaceKeyframe) (d3, d2, d1, d0 float64) {
	g2, g1, g0 := surfaceCrossProductParameters(first, second)

	rayTime := float64(ray.Time)
	velocity := ray.Direction.Scale(ray.Velocity)
	deltaTime := float64(second.Time) - float64(first.Time)
	deltaPointA := second.Coords[0].Sub(first.Coords[0])
	secondOverDelta := float64(second.Time) / deltaTime

	g2DotDelta := g2.Dot(deltaPointA)
	g1DotDelta := g1.Dot(deltaPointA)
	g0DotDelta := g0.Dot(deltaPointA)

	d3 = g2.Dot(velocity) - g2DotDelta/deltaTime
	d2 = g2.Dot(ray.Origin) - rayTime*g2.Dot(velocity) - g2.Dot(second.Coords[0]) +
		g2DotDelta*secondOverDelta + g1.Dot(velocity) - g1DotDelta/deltaTime
	d1 = g1.Dot(ray.Origin) - rayTime*g1.Dot(velocity) - g1.Dot(second.Coords[0]) +
		g1DotDelta*secondOverDelta + g0.Dot(velocity) - g0DotDelta/deltaTime
	d0 = g0.Dot(ray.Origin) - rayTime*g0.Dot(velocity) - g0.Dot(second.Coords[0]) +
		g0DotDelta*secondOverDelta
	return d3, d2, d1, d0
}

// surfaceCrossProductParameters computes the three "g-vectors" constant
// across t that, combined with the ray's velocity and origin, produce the
// moving-triangle normal's cubic expansion.
func surfaceCrossProductParameters(first, second scenemodel.SurfaceKeyframe) (g2, g1, g0 mathx.Vector3) {
	secondTime := float64(second.Time)
	deltaTime := float64(second.Time) - float64(first.Time)

	f2BC, f1BC, f0BC := subCrossProductParameters(
		first.Coords[1], second.Coords[1], first.Coords[2], second.Coords[2], deltaTime, secondTime)
	f2BA, f1BA, f0BA := subCrossProductParameters(
		first.Coords[1], second.Coords[1], first.Coords[0], second.Coords[0], deltaTime, secondTime)
	f2AC, f1AC, f0AC := subCrossProductParameters(
		first.Coords[0], second.Coords[0], first.Coords[2], second.Coords[2], deltaTime, secondTime)

	g2 = f2BC.Sub(f2BA).Sub(f2AC)
	g1 = f1BC.Sub(f1BA).Sub(f1AC)
	g0 = f0BC.Sub(f0BA).Sub(f0AC)
	return g2, g1, g0
}

// subCrossProductParameters expands cross(a(t), b(t)) -- with a and b each
// linearly interpolated between their two keyframes -- as a quadratic in t,
// returning its coefficients f2, f1, f0.
func subCrossProductParameters(aFirst, aSecond, bFirst, bSecond mathx.Vector3, deltaTime, secondTime float64) (f2, f1, f0 mathx.Vector3) {
	a1b1 := aFirst.Cross(bFirst)
	a1b2 := aFirst.Cross(bSecond)
	a2b1 := aSecond.Cross(bFirst)
	a2b2 := aSecond.Cross(bSecond)

	f2 = a2b2.Sub(a1b2).Sub(a2b1).Add(a1b1)
	f1 = a2b2.Scale(2).Sub(a1b2).Sub(a2b1).Scale(deltaTime).Sub(f2.Scale(2 * secondTime))
	f0 = a2b2.Scale(deltaTime * deltaTime).
		Add(a2b2.Scale(-2).Add(a1b2).Add(a2b1).Scale(secondTime * deltaTime)).
		Add(f2.Scale(secondTime * secondTime))
	return f2, f1, f0
}
