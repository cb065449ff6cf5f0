// Package scenebuilder provides a fluent builder for constructing Scene
// values, plus the handful of demo scenes the CLI's scene codes name.
package scenebuilder

import (
	"math"

	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

type object interface {
	surfaces() ([]scenemodel.Surface, error)
}

type staticCube struct {
	bottomLeft, topRight mathx.Vector3
	material             scenemodel.Material
}

func (c staticCube) surfaces() ([]scenemodel.Surface, error) {
	polys := cubePolygons(c.bottomLeft, c.topRight)
	out := make([]scenemodel.Surface, len(polys))
	for i, coords := range polys {
		out[i] = scenemodel.InterpolatedSurface{Coords: coords, Material: c.material}
	}
	return out, nil
}

type rotatingCube struct {
	bottomLeft, topRight, rotationOrigin mathx.Vector3
	rotationDuration                     uint32
	material                             scenemodel.Material
}

func (c rotatingCube) surfaces() ([]scenemodel.Surface, error) {
	numberOfKeyframes, timeFactor := uint32(c.rotationDuration), uint32(1)
	if c.rotationDuration >= 1000 {
		numberOfKeyframes, timeFactor = c.rotationDuration/100, 100
	}

	polys := cubePolygons(c.bottomLeft, c.topRight)
	out := make([]scenemodel.Surface, len(polys))
	for i, coords := range polys {
		keyframes := make([]scenemodel.SurfaceKeyframe, numberOfKeyframes+1)
		for n := uint32(0); n <= numberOfKeyframes; n++ {
			angle := 2 * math.Pi * float64(n) / float64(numberOfKeyframes)
			var rotated [3]mathx.Vector3
			for v, corner := range coords {
				rotated[v] = rotateAroundZ(corner, c.rotationOrigin, angle)
			}
			keyframes[n] = scenemodel.SurfaceKeyframe{Time: timeFactor * n, Coords: rotated}
		}
		surface, err := scenemodel.NewKeyframeSurface(keyframes, c.material)
		if err != nil {
			return nil, err
		}
		out[i] = surface
	}
	return out, nil
}

func rotateAroundZ(p, origin mathx.Vector3, angle float64) mathx.Vector3 {
	rel := p.Sub(origin)
	sin, cos := math.Sincos(angle)
	return mathx.Vector3{
		X: rel.X*cos - rel.Y*sin,
		Y: rel.X*sin + rel.Y*cos,
		Z: rel.Z,
	}.Add(origin)
}

// cubePolygons decomposes the axis-aligned box [bottomLeft, topRight] into 12
// triangles, two per face.
func cubePolygons(bottomLeft, topRight mathx.Vector3) [12][3]mathx.Vector3 {
	bl, tr := bottomLeft, topRight
	return [12][3]mathx.Vector3{
		// left
		{{X: bl.X, Y: bl.Y, Z: bl.Z}, {X: bl.X, Y: bl.Y, Z: tr.Z}, {X: bl.X, Y: tr.Y, Z: bl.Z}},
		{{X: bl.X, Y: tr.Y, Z: tr.Z}, {X: bl.X, Y: bl.Y, Z: tr.Z}, {X: bl.X, Y: tr.Y, Z: bl.Z}},
		// front
		{{X: bl.X, Y: bl.Y, Z: bl.Z}, {X: tr.X, Y: bl.Y, Z: bl.Z}, {X: bl.X, Y: bl.Y, Z: tr.Z}},
		{{X: tr.X, Y: bl.Y, Z: tr.Z}, {X: tr.X, Y: bl.Y, Z: bl.Z}, {X: bl.X, Y: bl.Y, Z: tr.Z}},
		// right
		{{X: tr.X, Y: bl.Y, Z: bl.Z}, {X: tr.X, Y: bl.Y, Z: tr.Z}, {X: tr.X, Y: tr.Y, Z: bl.Z}},
		{{X: tr.X, Y: tr.Y, Z: tr.Z}, {X: tr.X, Y: bl.Y, Z: tr.Z}, {X: tr.X, Y: tr.Y, Z: bl.Z}},
		// back
		{{X: bl.X, Y: tr.Y, Z: bl.Z}, {X: tr.X, Y: tr.Y, Z: bl.Z}, {X: bl.X, Y: tr.Y, Z: tr.Z}},
		{{X: tr.X, Y: tr.Y, Z: tr.Z}, {X: tr.X, Y: tr.Y, Z: bl.Z}, {X: bl.X, Y: tr.Y, Z: tr.Z}},
		// bottom
		{{X: bl.X, Y: bl.Y, Z: bl.Z}, {X: tr.X, Y: bl.Y, Z: bl.Z}, {X: bl.X, Y: tr.Y, Z: bl.Z}},
		{{X: tr.X, Y: tr.Y, Z: bl.Z}, {X: tr.X, Y: bl.Y, Z: bl.Z}, {X: bl.X, Y: tr.Y, Z: bl.Z}},
		// top
		{{X: bl.X, Y: bl.Y, Z: tr.Z}, {X: tr.X, Y: bl.Y, Z: tr.Z}, {X: bl.X, Y: tr.Y, Z: tr.Z}},
		{{X: tr.X, Y: tr.Y, Z: tr.Z}, {X: tr.X, Y: bl.Y, Z: tr.Z}, {X: bl.X, Y: tr.Y, Z: tr.Z}},
	}
}

// Builder constructs a Scene from high-level primitives.
type Builder struct {
	objects []object

	receiverCoords    *mathx.Vector3
	receiverKeyframes []scenemodel.CoordinateKeyframe
	receiverRadius    float64

	emitterCoords    *mathx.Vector3
	emitterKeyframes []scenemodel.CoordinateKeyframe
	emission         scenemodel.EmissionType

	loopDuration *uint32
}

// NewSceneBuilder starts a new builder. The default scene has a receiver and
// emitter both at the origin with radius 0.1 and random emission, and no
// surfaces.
func NewSceneBuilder() *Builder {
	origin := mathx.Vector3{}
	return &Builder{
		receiverCoords: &origin,
		receiverRadius: 0.1,
		emitterCoords:  &origin,
		emission:       scenemodel.RandomEmission{},
	}
}

// WithStaticCube adds a static 12-triangle cube to the scene.
func (b *Builder) WithStaticCube(bottomLeft, topRight mathx.Vector3, material scenemodel.Material) *Builder {
	b.objects = append(b.objects, staticCube{bottomLeft: bottomLeft, topRight: topRight, material: material})
	return b
}

// WithRotatingCube adds a cube that rotates around rotationOrigin's z-axis
// over rotationDuration samples.
func (b *Builder) WithRotatingCube(bottomLeft, topRight, rotationOrigin mathx.Vector3, rotationDuration uint32, material scenemodel.Material) *Builder {
	b.objects = append(b.objects, rotatingCube{
		bottomLeft: bottomLeft, topRight: topRight, rotationOrigin: rotationOrigin,
		rotationDuration: rotationDuration, material: material,
	})
	return b
}

// WithReceiverAt sets a static receiver position, discarding any previously
// set keyframes.
func (b *Builder) WithReceiverAt(pos mathx.Vector3) *Builder {
	b.receiverCoords = &pos
	b.receiverKeyframes = nil
	return b
}

// WithReceiverKeyframes sets a moving receiver, discarding any previously set
// static position.
func (b *Builder) WithReceiverKeyframes(keyframes []scenemodel.CoordinateKeyframe) *Builder {
	b.receiverKeyframes = keyframes
	b.receiverCoords = nil
	return b
}

// WithReceiverRadius sets the receiver's radius.
func (b *Builder) WithReceiverRadius(radius float64) *Builder {
	b.receiverRadius = radius
	return b
}

// WithEmitterAt sets a static emitter position, discarding any previously set
// keyframes.
func (b *Builder) WithEmitterAt(pos mathx.Vector3) *Builder {
	b.emitterCoords = &pos
	b.emitterKeyframes = nil
	return b
}

// WithEmitterKeyframes sets a moving emitter, discarding any previously set
// static position.
func (b *Builder) WithEmitterKeyframes(keyframes []scenemodel.CoordinateKeyframe) *Builder {
	b.emitterKeyframes = keyframes
	b.emitterCoords = nil
	return b
}

// WithRandomEmission launches rays in all directions.
func (b *Builder) WithRandomEmission() *Builder {
	b.emission = scenemodel.RandomEmission{}
	return b
}

// WithDirectedEmission launches all rays in a single fixed direction.
func (b *Builder) WithDirectedEmission(dir mathx.Vector3) *Builder {
	b.emission = scenemodel.DirectedEmission{Dir: dir}
	return b
}

// Looping marks the scene as looping with the given duration in samples.
func (b *Builder) Looping(duration uint32) *Builder {
	b.loopDuration = &duration
	return b
}

// NonLooping marks the scene as not looping.
func (b *Builder) NonLooping() *Builder {
	b.loopDuration = nil
	return b
}

// Build assembles the Scene described by the builder's accumulated state.
func (b *Builder) Build() (scenemodel.Scene, error) {
	var surfaces []scenemodel.Surface
	for _, o := range b.objects {
		s, err := o.surfaces()
		if err != nil {
			return scenemodel.Scene{}, err
		}
		surfaces = append(surfaces, s...)
	}

	receiver, err := b.buildReceiver()
	if err != nil {
		return scenemodel.Scene{}, err
	}
	emitter, err := b.buildEmitter()
	if err != nil {
		return scenemodel.Scene{}, err
	}

	return scenemodel.Scene{
		Surfaces:     surfaces,
		Receiver:     receiver,
		Emitter:      emitter,
		LoopDuration: b.loopDuration,
	}, nil
}

func (b *Builder) buildReceiver() (scenemodel.Receiver, error) {
	if b.receiverCoords != nil {
		return scenemodel.NewInterpolatedReceiver(*b.receiverCoords, b.receiverRadius, 0)
	}
	return scenemodel.NewKeyframeReceiver(b.receiverKeyframes, b.receiverRadius)
}

func (b *Builder) buildEmitter() (scenemodel.Emitter, error) {
	if b.emitterCoords != nil {
		return scenemodel.InterpolatedEmitter{Position: *b.emitterCoords, Emission: b.emission}, nil
	}
	return scenemodel.NewKeyframeEmitter(b.emitterKeyframes, b.emission)
}
