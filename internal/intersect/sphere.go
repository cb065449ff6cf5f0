package intersect

import (
	"math"

	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// StaticSphere is the classic ray-sphere intersection: project the center
// onto the ray direction, guard against the sphere being behind the ray,
// then solve for the near intersection point.
func StaticSphere(ray RayState, center mathx.Vector3, radius float64, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	originToCenter := center.Sub(ray.Origin)
	projection := originToCenter.Dot(ray.Direction)
	if projection < 0 {
		return 0, mathx.Vector3{}, false
	}

	perpSquared := math.Abs(originToCenter.Dot(originToCenter) - projection*projection)
	perp := math.Sqrt(perpSquared)
	if radius-perp < -0.0001 {
		return 0, mathx.Vector3{}, false
	}

	halfChordSquared := math.Abs(radius*radius - perp*perp)
	halfChord := math.Sqrt(halfChordSquared)

	t := (projection-halfChord)/ray.Velocity + float64(ray.Time)
	if uint32(math.Trunc(t)) < tEntry || uint32(math.Ceil(t)) > tExit {
		return 0, mathx.Vector3{}, false
	}
	return uint32(math.Round(t)), ray.CoordsAtTime(t), true
}

// MovingSphere solves the quadratic ray-against-interpolated-sphere
// equation between two consecutive receiver keyframes.
func MovingSphere(ray RayState, first, second scenemodel.CoordinateKeyframe, radius float64, tEntry, tExit uint32) (hitTime uint32, hitPoint mathx.Vector3, ok bool) {
	d2, d1, d0 := receiverPolynomialParameters(ray, first, second, radius)
	roots := mathx.SolveQuadratic(d2, d1, d0)

	best := 0.0
	found := false
	for _, root := range roots {
		if root < float64(tEntry) || root > float64(tExit) {
			continue
		}
		if found && best <= root {
			continue
		}
		best = root
		found = true
	}

	if !found {
		return 0, mathx.Vector3{}, false
	}
	return uint32(math.Round(best)), ray.CoordsAtTime(best), true
}

// receiverPolynomialParameters computes the quadratic coefficients d2..d0
// of |P(t) - C(t)|^2 = r^2 expanded with C(t) linearly interpolated between
// the two receiver keyframes.
func receiverPolynomialParameters(ray RayState, first, second scenemodel.CoordinateKeyframe, radius float64) (d2, d1, d0 float64) {
	rayTime := float64(ray.Time)
	velocity := ray.Direction.Scale(ray.Velocity)
	deltaTime := float64(second.Time) - float64(first.Time)
	secondTime := float64(second.Time)
	deltaCenter := second.Coords.Sub(first.Coords)
	pMinusC2 := ray.Origin.Sub(second.Coords)
	pMinusC2MinusT0V := pMinusC2.Sub(velocity.Scale(rayTime))

	d2 = deltaTime*deltaTime*velocity.Dot(velocity) + deltaCenter.Dot(deltaCenter) -
		2*deltaTime*velocity.Dot(deltaCenter)

	d1 = 2 * (deltaTime*deltaTime*pMinusC2MinusT0V.Dot(velocity) -
		deltaTime*pMinusC2MinusT0V.Dot(deltaCenter) +
		secondTime*deltaTime*velocity.Dot(deltaCenter) -
		secondTime*deltaCenter.Dot(deltaCenter))

	d0 = deltaTime*deltaTime*(pMinusC2.Dot(pMinusC2)+
		2*rayTime*pMinusC2.Scale(-1).Dot(velocity)+
		rayTime*rayTime*velocity.Dot(velocity)-
		radius*radius) +
		2*secondTime*deltaTime*pMinusC2MinusT0V.Dot(deltaCenter) +
		secondTime*secondTime*deltaCenter.Dot(deltaCenter)

	return d2, d1, d0
}
