package scenemodel

import (
	"math/rand/v2"
	"testing"

	"raytraceverb/internal/mathx"
)

func TestDirectedEmissionReturnsFixedDirection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := DirectedEmission{Dir: mathx.Vector3{X: 1, Y: 0, Z: 0}}
	if got := d.Direction(rng); got != d.Dir {
		t.Errorf("DirectedEmission.Direction = %v, want %v", got, d.Dir)
	}
}

func TestRandomDirectionInHemisphereRejectsGrazing(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	normal := mathx.Vector3{X: 0, Y: 1, Z: 0}
	for i := 0; i < 100; i++ {
		d := RandomDirectionInHemisphere(normal, rng)
		if d.Dot(normal) <= 0.05 {
			t.Fatalf("sampled direction %v has dot %v with normal, want > 0.05", d, d.Dot(normal))
		}
	}
}

func TestBounceOffSurfaceWithNormal(t *testing.T) {
	d := mathx.Vector3{X: 1, Y: -1, Z: 0}
	n := mathx.Vector3{X: 0, Y: 1, Z: 0}
	got := BounceOffSurfaceWithNormal(d, n)
	want := mathx.Vector3{X: 1, Y: 1, Z: 0}
	if got != want {
		t.Errorf("BounceOffSurfaceWithNormal = %v, want %v", got, want)
	}
}

func TestMaterialIsBounceDiffuseDeterministicBounds(t *testing.T) {
	always := Material{Diffusion: 1}
	never := Material{Diffusion: 0}
	rng := rand.New(rand.NewPCG(3, 4))

	if !always.IsBounceDiffuse(rng) {
		t.Errorf("diffusion=1 material should always bounce diffuse")
	}
	if never.IsBounceDiffuse(rng) {
		t.Errorf("diffusion=0 material should never bounce diffuse")
	}
}
