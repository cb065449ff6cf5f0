package scenemodel

import (
	"testing"

	"raytraceverb/internal/mathx"
)

func almostEqualVec(t *testing.T, got, want mathx.Vector3, eps float64) {
	t.Helper()
	if abs(got.X-want.X) > eps || abs(got.Y-want.Y) > eps || abs(got.Z-want.Z) > eps {
		t.Errorf("got %v, want %v", got, want)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInterpolateCoordinateKeyframesAtExactTime(t *testing.T) {
	kfs := []CoordinateKeyframe{
		{Time: 5, Coords: mathx.Vector3{X: 10, Y: 10, Z: 30}},
		{Time: 10, Coords: mathx.Vector3{X: 30, Y: 40, Z: 50}},
	}
	got := InterpolateCoordinateKeyframes(kfs, 5)
	almostEqualVec(t, got, kfs[0].Coords, 1e-9)

	got = InterpolateCoordinateKeyframes(kfs, 10)
	almostEqualVec(t, got, kfs[1].Coords, 1e-9)
}

func TestInterpolateCoordinateKeyframesInterior(t *testing.T) {
	kfs := []CoordinateKeyframe{
		{Time: 5, Coords: mathx.Vector3{X: 10, Y: 10, Z: 30}},
		{Time: 10, Coords: mathx.Vector3{X: 30, Y: 40, Z: 50}},
	}
	got := InterpolateCoordinateKeyframes(kfs, 7)
	almostEqualVec(t, got, mathx.Vector3{X: 18, Y: 22, Z: 38}, 1e-6)
}

func TestInterpolateCoordinateKeyframesClamps(t *testing.T) {
	kfs := []CoordinateKeyframe{
		{Time: 5, Coords: mathx.Vector3{X: 1, Y: 2, Z: 3}},
		{Time: 10, Coords: mathx.Vector3{X: 4, Y: 5, Z: 6}},
	}
	almostEqualVec(t, InterpolateCoordinateKeyframes(kfs, 0), kfs[0].Coords, 1e-9)
	almostEqualVec(t, InterpolateCoordinateKeyframes(kfs, 1000), kfs[1].Coords, 1e-9)
}

func TestInterpolatedEmitterAtTimeIsIdempotent(t *testing.T) {
	e := InterpolatedEmitter{Position: mathx.Vector3{X: 1, Y: 2, Z: 3}, Time: 7, Emission: RandomEmission{}}
	got := e.AtTime(50)
	if got != e {
		t.Errorf("AtTime on an Interpolated emitter should return an equal copy, got %v want %v", got, e)
	}
}

func TestCalculateInterpPosition(t *testing.T) {
	got := interpPosition(10000, 50000, 25000)
	want := 0.625
	if abs(got-want) > 1e-9 {
		t.Errorf("interpPosition = %v, want %v", got, want)
	}
}
