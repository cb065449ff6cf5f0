package scenebuilder

import (
	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// propagationSpeed is the speed of sound in air at 20C, in m/s, matching
// internal/trace.DefaultPropagationSpeed -- not imported directly to avoid a
// dependency from scene construction on the tracer package.
const propagationSpeed = 343.2

// StaticCubeScene is scene code 0: a 4x4x3m closed box, emitter at
// (0,0,1.2) with random emission, receiver at the box center.
func StaticCubeScene() (scenemodel.Scene, error) {
	return NewSceneBuilder().
		WithStaticCube(
			mathx.Vector3{X: -2, Y: -2, Z: -1.5},
			mathx.Vector3{X: 2, Y: 2, Z: 1.5},
			scenemodel.ConcreteWall,
		).
		WithEmitterAt(mathx.Vector3{X: 0, Y: 0, Z: 1.2}).
		Build()
}

// StaticReceiverScene is scene code 1: no surfaces, directed emission along
// +x, receiver one second of sound travel away.
func StaticReceiverScene() (scenemodel.Scene, error) {
	return NewSceneBuilder().
		WithDirectedEmission(mathx.Vector3{X: 1, Y: 0, Z: 0}).
		WithReceiverAt(mathx.Vector3{X: propagationSpeed, Y: 0, Z: 0}).
		Build()
}

// ApproachingReceiverScene is scene code 2: the receiver starts one second
// of sound travel away and approaches the emitter over nine seconds.
func ApproachingReceiverScene(sampleRate uint32) (scenemodel.Scene, error) {
	return NewSceneBuilder().
		WithDirectedEmission(mathx.Vector3{X: 1, Y: 0, Z: 0}).
		WithReceiverKeyframes([]scenemodel.CoordinateKeyframe{
			{Time: 0, Coords: mathx.Vector3{X: propagationSpeed, Y: 0, Z: 0}},
			{Time: sampleRate * 9, Coords: mathx.Vector3{}},
		}).
		Build()
}

// LongApproachingReceiverScene is scene code 3: the receiver starts four
// seconds of sound travel away and approaches the emitter over 36 seconds.
func LongApproachingReceiverScene(sampleRate uint32) (scenemodel.Scene, error) {
	return NewSceneBuilder().
		WithDirectedEmission(mathx.Vector3{X: 1, Y: 0, Z: 0}).
		WithReceiverKeyframes([]scenemodel.CoordinateKeyframe{
			{Time: 0, Coords: mathx.Vector3{X: propagationSpeed * 4, Y: 0, Z: 0}},
			{Time: sampleRate * 9 * 4, Coords: mathx.Vector3{}},
		}).
		Build()
}

// RotatingCubeScene is scene code 4: the scene-0 cube, looping over
// sampleRate samples, rotating once over that span.
func RotatingCubeScene(sampleRate uint32) (scenemodel.Scene, error) {
	return NewSceneBuilder().
		WithRotatingCube(
			mathx.Vector3{X: -2, Y: -2, Z: -1.5},
			mathx.Vector3{X: 2, Y: 2, Z: 1.5},
			mathx.Vector3{},
			sampleRate,
			scenemodel.ConcreteWall,
		).
		WithEmitterAt(mathx.Vector3{X: 0, Y: 0, Z: 1.2}).
		Looping(sampleRate).
		Build()
}
