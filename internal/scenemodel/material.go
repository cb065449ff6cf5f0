package scenemodel

import "math/rand/v2"

// AbsorptionCoefficientConcrete is the concrete-wall absorption constant
// used by the default demo scenes.
const AbsorptionCoefficientConcrete = 0.98

// Material describes how a surface reflects rays: how much energy it
// absorbs, and how diffuse (vs. specular) its reflection is.
type Material struct {
	Absorption float64
	Diffusion  float64
}

// ConcreteWall is the default wall material used by the demo scenes. There
// is no published diffusion data for plain concrete, so the diffusion
// coefficient is a guess.
var ConcreteWall = Material{
	Absorption: AbsorptionCoefficientConcrete,
	Diffusion:  0.1,
}

// IsBounceDiffuse randomly decides whether a bounce off this material
// should be diffuse: a uniform [0,1) draw is compared against the
// diffusion coefficient, and the bounce is diffuse if the coefficient is
// greater than or equal to the draw.
func (m Material) IsBounceDiffuse(rng *rand.Rand) bool {
	return m.Diffusion >= rng.Float64()
}
