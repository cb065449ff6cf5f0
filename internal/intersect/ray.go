// Package intersect implements the time-parameterized intersection solvers
// between a ray and the scene's moving or static primitives: a cubic solve
// for a moving triangle, linear for a static one, quadratic for a moving
// sphere, and the classic closed form for a static one.
package intersect

import "raytraceverb/internal/mathx"

// RayState is the minimal ray description the intersection solvers need:
// the fields are deliberately a plain struct (not the tracer's Ray type) so
// this package has no dependency on internal/trace.
type RayState struct {
	Origin    mathx.Vector3
	Direction mathx.Vector3 // unit length
	Velocity  float64
	Time      uint32
}

// CoordsAtTime returns the ray's world position at time t (P(t) = origin +
// (t - ray.time)*velocity*direction).
func (r RayState) CoordsAtTime(t float64) mathx.Vector3 {
	dt := t - float64(r.Time)
	return r.Origin.Add(r.Direction.Scale(dt * r.Velocity))
}
