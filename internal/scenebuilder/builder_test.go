package scenebuilder

import (
	"testing"

	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

func TestDefaultBuilderYieldsOriginReceiverAndEmitter(t *testing.T) {
	scene, err := NewSceneBuilder().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Surfaces) != 0 {
		t.Errorf("len(Surfaces) = %d, want 0", len(scene.Surfaces))
	}
	receiver := scene.Receiver.AtTime(0)
	if receiver.Position != (mathx.Vector3{}) {
		t.Errorf("receiver position = %v, want origin", receiver.Position)
	}
	if receiver.Radius != 0.1 {
		t.Errorf("receiver radius = %v, want 0.1", receiver.Radius)
	}
}

func TestWithStaticCubeProducesTwelveTriangles(t *testing.T) {
	scene, err := NewSceneBuilder().
		WithStaticCube(mathx.Vector3{X: -1, Y: -1, Z: -1}, mathx.Vector3{X: 1, Y: 1, Z: 1}, scenemodel.ConcreteWall).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Surfaces) != 12 {
		t.Fatalf("len(Surfaces) = %d, want 12", len(scene.Surfaces))
	}
	for i, s := range scene.Surfaces {
		tri := s.AtTime(0)
		if _, err := tri.Normal(); err != nil {
			t.Errorf("triangle %d: degenerate normal: %v", i, err)
		}
	}
}

func TestWithRotatingCubeKeyframesReturnToStart(t *testing.T) {
	scene, err := NewSceneBuilder().
		WithRotatingCube(
			mathx.Vector3{X: -1, Y: -1, Z: -1}, mathx.Vector3{X: 1, Y: 1, Z: 1},
			mathx.Vector3{}, 360, scenemodel.ConcreteWall,
		).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, s := range scene.Surfaces {
		start := s.AtTime(0)
		end := s.AtTime(360)
		for v := range start.Coords {
			if diff := start.Coords[v].Sub(end.Coords[v]); diff.Dot(diff) > 1e-6 {
				t.Errorf("surface %d vertex %d: start=%v end=%v, want a full rotation to return to start",
					i, v, start.Coords[v], end.Coords[v])
			}
		}
	}
}

func TestReceiverKeyframesOverrideStaticCoords(t *testing.T) {
	scene, err := NewSceneBuilder().
		WithReceiverAt(mathx.Vector3{X: 9, Y: 9, Z: 9}).
		WithReceiverKeyframes([]scenemodel.CoordinateKeyframe{
			{Time: 0, Coords: mathx.Vector3{X: 1, Y: 0, Z: 0}},
			{Time: 10, Coords: mathx.Vector3{X: 2, Y: 0, Z: 0}},
		}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := scene.Receiver.AtTime(0).Position
	want := mathx.Vector3{X: 1, Y: 0, Z: 0}
	if got != want {
		t.Errorf("receiver position at t=0 = %v, want %v", got, want)
	}
}

func TestLoopingSetsLoopDuration(t *testing.T) {
	scene, err := NewSceneBuilder().Looping(1000).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene.LoopDuration == nil || *scene.LoopDuration != 1000 {
		t.Errorf("LoopDuration = %v, want 1000", scene.LoopDuration)
	}
}

func TestStaticCubeSceneBuilds(t *testing.T) {
	scene, err := StaticCubeScene()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Surfaces) != 12 {
		t.Errorf("len(Surfaces) = %d, want 12", len(scene.Surfaces))
	}
	if scene.Emitter.AtTime(0).Position != (mathx.Vector3{X: 0, Y: 0, Z: 1.2}) {
		t.Errorf("emitter position = %v, want (0,0,1.2)", scene.Emitter.AtTime(0).Position)
	}
}

func TestStaticReceiverSceneHasNoSurfaces(t *testing.T) {
	scene, err := StaticReceiverScene()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scene.Surfaces) != 0 {
		t.Errorf("len(Surfaces) = %d, want 0", len(scene.Surfaces))
	}
	want := mathx.Vector3{X: propagationSpeed, Y: 0, Z: 0}
	if got := scene.Receiver.AtTime(0).Position; got != want {
		t.Errorf("receiver position = %v, want %v", got, want)
	}
}

func TestApproachingReceiverSceneReachesOriginAtNineSeconds(t *testing.T) {
	scene, err := ApproachingReceiverScene(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := scene.Receiver.AtTime(900).Position; got != (mathx.Vector3{}) {
		t.Errorf("receiver position at t=900 = %v, want origin", got)
	}
}

func TestLongApproachingReceiverSceneStartsFourTimesFarther(t *testing.T) {
	near, err := ApproachingReceiverScene(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	far, err := LongApproachingReceiverScene(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nearStart := near.Receiver.AtTime(0).Position.X
	farStart := far.Receiver.AtTime(0).Position.X
	if diff := farStart - 4*nearStart; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("far start x = %v, want 4x near start x = %v", farStart, 4*nearStart)
	}
}

func TestRotatingCubeSceneLoops(t *testing.T) {
	scene, err := RotatingCubeScene(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene.LoopDuration == nil || *scene.LoopDuration != 1000 {
		t.Errorf("LoopDuration = %v, want 1000", scene.LoopDuration)
	}
	if len(scene.Surfaces) != 12 {
		t.Errorf("len(Surfaces) = %d, want 12", len(scene.Surfaces))
	}
}
