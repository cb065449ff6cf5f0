package scenemodel

import (
	"math/rand/v2"

	"raytraceverb/internal/mathx"
)

// EmissionType is the emitter's strategy for picking a ray's launch
// direction. Directions returned are not guaranteed to be unit length --
// the ray launcher renormalizes.
type EmissionType interface {
	Direction(rng *rand.Rand) mathx.Vector3
}

// RandomEmission samples an independent direction in the cube [-1,1]^3 on
// every call.
type RandomEmission struct{}

// Direction returns a point sampled uniformly from the cube [-1,1]^3.
func (RandomEmission) Direction(rng *rand.Rand) mathx.Vector3 {
	return mathx.Vector3{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
	}
}

// DirectedEmission always returns a copy of a fixed direction.
type DirectedEmission struct {
	Dir mathx.Vector3
}

// Direction returns the fixed direction, ignoring rng.
func (d DirectedEmission) Direction(*rand.Rand) mathx.Vector3 {
	return d.Dir
}

// RandomUnitDirection samples a random direction and normalizes it. Used
// where a guaranteed-unit launch direction is required regardless of
// emission type.
func RandomUnitDirection(rng *rand.Rand) mathx.Vector3 {
	for {
		d := (RandomEmission{}).Direction(rng)
		if n, err := d.Normalize(); err == nil {
			return n
		}
	}
}

// RandomDirectionInHemisphere samples a random unit direction in the
// hemisphere around normal, rejecting samples whose dot product with
// normal is at or below 0.05 (to avoid grazing angles).
func RandomDirectionInHemisphere(normal mathx.Vector3, rng *rand.Rand) mathx.Vector3 {
	for {
		d := RandomUnitDirection(rng)
		if d.Dot(normal) > 0.05 {
			return d
		}
	}
}

// BounceOffSurfaceWithNormal performs a specular reflection of a unit
// direction d about a unit surface normal n.
func BounceOffSurfaceWithNormal(d, n mathx.Vector3) mathx.Vector3 {
	return d.Sub(n.Scale(2 * d.Dot(n)))
}
