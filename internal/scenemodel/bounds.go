package scenemodel

import "raytraceverb/internal/mathx"

// emitterExpansion is the fixed radius by which emitter positions are
// expanded when growing the scene's bounding box.
const emitterExpansion = 0.1

// boundsInflation is the final inflation applied to the whole computed box.
const boundsInflation = 0.1

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mathx.Vector3
}

func newEmptyBounds() Bounds {
	inf := 1e308
	return Bounds{
		Min: mathx.Vector3{X: inf, Y: inf, Z: inf},
		Max: mathx.Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

func (b *Bounds) expand(p mathx.Vector3, radius float64) {
	if p.X-radius < b.Min.X {
		b.Min.X = p.X - radius
	}
	if p.Y-radius < b.Min.Y {
		b.Min.Y = p.Y - radius
	}
	if p.Z-radius < b.Min.Z {
		b.Min.Z = p.Z - radius
	}
	if p.X+radius > b.Max.X {
		b.Max.X = p.X + radius
	}
	if p.Y+radius > b.Max.Y {
		b.Max.Y = p.Y + radius
	}
	if p.Z+radius > b.Max.Z {
		b.Max.Z = p.Z + radius
	}
}

func (b *Bounds) inflate(amount float64) {
	b.Min = mathx.Vector3{X: b.Min.X - amount, Y: b.Min.Y - amount, Z: b.Min.Z - amount}
	b.Max = mathx.Vector3{X: b.Max.X + amount, Y: b.Max.Y + amount, Z: b.Max.Z + amount}
}

// MaximumBounds computes the scene's axis-aligned bounding box: every
// surface keyframe vertex (no radius expansion), every receiver keyframe
// position expanded by its radius, and every emitter keyframe position
// expanded by a fixed 0.1 m, then inflated by a further ±0.1 m on each axis.
func MaximumBounds(scene Scene) Bounds {
	bounds := newEmptyBounds()

	for _, surface := range scene.Surfaces {
		expandSurfaceBounds(&bounds, surface)
	}
	expandReceiverBounds(&bounds, scene.Receiver)
	expandEmitterBounds(&bounds, scene.Emitter)

	bounds.inflate(boundsInflation)
	return bounds
}

func expandSurfaceBounds(bounds *Bounds, surface Surface) {
	switch s := surface.(type) {
	case *KeyframeSurface:
		for _, kf := range s.Keyframes {
			for _, v := range kf.Coords {
				bounds.expand(v, 0)
			}
		}
	case InterpolatedSurface:
		for _, v := range s.Coords {
			bounds.expand(v, 0)
		}
	}
}

func expandReceiverBounds(bounds *Bounds, receiver Receiver) {
	switch r := receiver.(type) {
	case *KeyframeReceiver:
		for _, kf := range r.Keyframes {
			bounds.expand(kf.Coords, r.Radius)
		}
	case InterpolatedReceiver:
		bounds.expand(r.Position, r.Radius)
	}
}

func expandEmitterBounds(bounds *Bounds, emitter Emitter) {
	switch e := emitter.(type) {
	case *KeyframeEmitter:
		for _, kf := range e.Keyframes {
			bounds.expand(kf.Coords, emitterExpansion)
		}
	case InterpolatedEmitter:
		bounds.expand(e.Position, emitterExpansion)
	}
}
