package trace

import (
	"math/rand/v2"

	"raytraceverb/internal/chunkindex"
	"raytraceverb/internal/scenemodel"
)

// Arrival is a single ray's contribution to the impulse response: the
// energy remaining when it struck the receiver, and the sample time it
// arrived at.
type Arrival struct {
	Energy float64
	Time   uint32
}

// Propagate bounces ray through scene until it strikes the receiver, exits
// the scene bounds, or its energy drops below threshold. On a receiver hit
// it returns the arrival; otherwise ok is false.
func Propagate(ray Ray, scene scenemodel.Scene, chunks *chunkindex.Chunks, bounds scenemodel.Bounds, rng *rand.Rand) (arrival Arrival, ok bool) {
	for {
		hit, found := traverse(ray, scene, chunks, bounds)
		if !found {
			return Arrival{}, false
		}

		if hit.isReceiver {
			return Arrival{Energy: ray.Energy, Time: hit.time}, true
		}

		surface := scene.Surfaces[hit.index].AtTime(hit.time)
		normal, err := surface.Normal()
		if err != nil {
			// Degenerate (zero-area) triangle: skip this candidate rather
			// than aborting the ray.
			return Arrival{}, false
		}

		ray.Origin = hit.point
		ray.Time = hit.time
		ray.Energy *= 1 - surface.Material.Absorption
		if ray.Energy < energyEpsilon {
			return Arrival{}, false
		}

		if surface.Material.IsBounceDiffuse(rng) {
			ray.Direction = scenemodel.RandomDirectionInHemisphere(normal, rng)
		} else {
			ray.Direction = scenemodel.BounceOffSurfaceWithNormal(ray.Direction, normal)
		}
	}
}
