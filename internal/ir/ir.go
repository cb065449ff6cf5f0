// Package ir assembles per-ray arrivals into impulse responses and
// convolves them into a running output buffer.
package ir

import "raytraceverb/internal/trace"

// ToImpulseResponse bins a sample's ray arrivals by integer time and
// normalizes by the number of rays launched, following
// original_source/src/impulse_response.rs's `to_impulse_response`. An empty
// arrival list yields a single zero sample.
func ToImpulseResponse(arrivals []trace.Arrival, numberOfRays uint32) []float64 {
	length := uint32(1)
	for _, a := range arrivals {
		if a.Time+1 > length {
			length = a.Time + 1
		}
	}

	buf := make([]float64, length)
	for _, a := range arrivals {
		buf[a.Time] += a.Energy
	}

	divisor := float64(numberOfRays)
	for i := range buf {
		buf[i] /= divisor
	}
	return buf
}

// Accumulate convolves one sample's impulse response into output starting
// at index: output[index+k] += sample * ir[k] * scalingFactor, for
// k=0..len(ir)-1. output must already be sized to at least
// index+len(ir).
func Accumulate(output []float64, ir []float64, sample float64, index int, scalingFactor float64) {
	scaled := sample * scalingFactor
	for k, v := range ir {
		output[index+k] += scaled * v
	}
}

// OutputLength returns the buffer length needed to hold every sample's
// convolution result: data length plus the longest impulse response.
func OutputLength(dataLen int, maxIRLen int) int {
	return dataLen + maxIRLen
}
