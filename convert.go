package main

import (
	"fmt"
	"math/rand/v2"

	"raytraceverb/internal/wave"
)

// newRNG builds the top-level generator from which engine.Simulate draws
// the base seed of its per-chunk generators.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// encodeOutput re-quantizes the convolved float64 output buffer back into
// whichever bit-depth variant the input file used, clamping to the
// variant's representable range. clipped reports whether any sample fell
// outside that range and had to be clamped.
func encodeOutput(header wave.Header, output []float64) (samples wave.Samples, clipped bool, err error) {
	switch {
	case header.Float:
		out := make([]float32, len(output))
		for i, v := range output {
			out[i] = float32(v)
		}
		return wave.Samples{ThirtyTwoFloat: out}, false, nil

	case header.BitsPerSample == 8:
		out := make([]int8, len(output))
		for i, v := range output {
			scaled, hit := clamp(v*128.0, -128, 127)
			out[i] = int8(scaled)
			clipped = clipped || hit
		}
		return wave.Samples{Eight: out}, clipped, nil

	case header.BitsPerSample == 16:
		out := make([]int16, len(output))
		for i, v := range output {
			scaled, hit := clamp(v*32768.0, -32768, 32767)
			out[i] = int16(scaled)
			clipped = clipped || hit
		}
		return wave.Samples{Sixteen: out}, clipped, nil

	case header.BitsPerSample == 24:
		out := make([]int32, len(output))
		for i, v := range output {
			scaled, hit := clamp(v*8388608.0, -8388608, 8388607)
			out[i] = int32(scaled)
			clipped = clipped || hit
		}
		return wave.Samples{TwentyFour: out}, clipped, nil

	default:
		return wave.Samples{}, false, fmt.Errorf("main: cannot encode output for %d-bit format", header.BitsPerSample)
	}
}

// clamp restricts v to [min, max], reporting whether it had to.
func clamp(v, min, max float64) (clamped float64, clipped bool) {
	if v < min {
		return min, true
	}
	if v > max {
		return max, true
	}
	return v, false
}
