package intersect

import (
	"testing"

	"raytraceverb/internal/mathx"
	"raytraceverb/internal/scenemodel"
)

// TestStaticSphereScenarioOne mirrors scenario 1: a receiver at (20,0,0),
// r=0.1, emitter at origin, direction (1,0,0), v=343.2/44100.
func TestStaticSphereScenarioOne(t *testing.T) {
	ray := RayState{
		Origin:    mathx.Vector3{X: 0, Y: 0, Z: 0},
		Direction: mathx.Vector3{X: 1, Y: 0, Z: 0},
		Velocity:  343.2 / 44100,
		Time:      0,
	}
	hitTime, _, ok := StaticSphere(ray, mathx.Vector3{X: 20, Y: 0, Z: 0}, 0.1, 0, 10000)
	if !ok {
		t.Fatalf("expected a hit")
	}
	almostEqual(t, float64(hitTime), 2557, 1, "hitTime")
}

func TestStaticSphereMissesWhenBehindRay(t *testing.T) {
	ray := RayState{
		Origin:    mathx.Vector3{X: 0, Y: 0, Z: 0},
		Direction: mathx.Vector3{X: 1, Y: 0, Z: 0},
		Velocity:  1,
		Time:      0,
	}
	if _, _, ok := StaticSphere(ray, mathx.Vector3{X: -20, Y: 0, Z: 0}, 0.1, 0, 1000); ok {
		t.Errorf("expected no hit for a sphere behind the ray origin")
	}
}

// TestMovingSphereScenarioFive mirrors scenario 5: receiver keyframes
// (t=0, (-10,0,0)) and (t=20, (0,0,0)), r=0.1; ray from (5,0,0) toward
// (-1,0,0), v=1.
func TestMovingSphereScenarioFive(t *testing.T) {
	first := scenemodel.CoordinateKeyframe{Time: 0, Coords: mathx.Vector3{X: -10, Y: 0, Z: 0}}
	second := scenemodel.CoordinateKeyframe{Time: 20, Coords: mathx.Vector3{X: 0, Y: 0, Z: 0}}

	ray := RayState{
		Origin:    mathx.Vector3{X: 5, Y: 0, Z: 0},
		Direction: mathx.Vector3{X: -1, Y: 0, Z: 0},
		Velocity:  1,
		Time:      0,
	}

	hitTime, point, ok := MovingSphere(ray, first, second, 0.1, 0, 20)
	if !ok {
		t.Fatalf("expected a hit")
	}
	almostEqual(t, float64(hitTime), 10, 1, "hitTime")
	almostEqual(t, point.X, -4.93, 0.1, "point.X")
}

func TestReceiverDispatchKeyframesFindsHitWithinPair(t *testing.T) {
	recv, err := scenemodel.NewKeyframeReceiver([]scenemodel.CoordinateKeyframe{
		{Time: 0, Coords: mathx.Vector3{X: -10}},
		{Time: 20, Coords: mathx.Vector3{X: 0}},
	}, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ray := RayState{
		Origin:    mathx.Vector3{X: 5, Y: 0, Z: 0},
		Direction: mathx.Vector3{X: -1, Y: 0, Z: 0},
		Velocity:  1,
		Time:      0,
	}

	hitTime, _, ok := Receiver(ray, recv, 0, 20)
	if !ok {
		t.Fatalf("expected a hit via the keyframe dispatch path")
	}
	almostEqual(t, float64(hitTime), 10, 1, "hitTime")
}
