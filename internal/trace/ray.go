// Package trace implements ray propagation through a scene: Cleary-Wyvill
// grid traversal extended with per-primitive time windows, and the
// diffuse/specular bounce decision at each surface hit.
package trace

import (
	"errors"

	"raytraceverb/internal/mathx"
)

// DefaultPropagationSpeed is the speed of sound in air at 20 degrees C, in m/s.
const DefaultPropagationSpeed = 343.2

// energyEpsilon is the minimum energy below which a ray is discarded rather
// than bounced again.
const energyEpsilon = 1e-6

// ErrZeroDirection is returned by Launch when the direction vector cannot be
// normalized.
var ErrZeroDirection = errors.New("trace: ray direction must be non-zero")

// Ray is a single propagating ray: unit direction, current origin, energy
// remaining, current time (in samples), and velocity (meters per sample).
type Ray struct {
	Direction mathx.Vector3
	Origin    mathx.Vector3
	Energy    float64
	Time      uint32
	Velocity  float64
}

// Launch constructs a ray from the given direction (normalized internally),
// origin, start time, propagation velocity (m/s), and sample rate.
func Launch(direction, origin mathx.Vector3, startTime uint32, velocity, sampleRate float64) (Ray, error) {
	unit, err := direction.Normalize()
	if err != nil {
		return Ray{}, ErrZeroDirection
	}
	return Ray{
		Direction: unit,
		Origin:    origin,
		Energy:    1.0,
		Time:      startTime,
		Velocity:  velocity / sampleRate,
	}, nil
}

// CoordsAtTime returns the ray's world position at time t.
func (r Ray) CoordsAtTime(t float64) mathx.Vector3 {
	dt := t - float64(r.Time)
	return r.Origin.Add(r.Direction.Scale(dt * r.Velocity))
}
