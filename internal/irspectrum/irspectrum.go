// Package irspectrum computes a magnitude spectrum of a synthesized impulse
// response, an optional post-run diagnostic. It drives the same FFT library
// an overlap-add convolution engine would, but for analysis rather than
// fast convolution: a single forward transform of the zero-padded response,
// not a running overlap-add.
package irspectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// nextPowerOf2 rounds n up to the next power of two, the usual FFT-size
// rounding for a zero-padded transform.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Bin is one frequency bin's analysis result.
type Bin struct {
	FrequencyHz float64
	MagnitudeDB float64
}

// Analyze computes the magnitude spectrum (in dB, 0 dB = a unit-amplitude
// bin) of impulseResponse, zero-padded to the next power of two and
// sampled at sampleRate. Returns only the first half of the spectrum (DC
// through Nyquist); the second half is the conjugate mirror of real input
// and carries no new information.
func Analyze(impulseResponse []float64, sampleRate float64) ([]Bin, error) {
	if len(impulseResponse) == 0 {
		return nil, nil
	}

	fftSize := nextPowerOf2(len(impulseResponse))
	plan, err := algofft.NewPlan32(fftSize)
	if err != nil {
		return nil, fmt.Errorf("irspectrum: creating FFT plan: %w", err)
	}

	input := make([]complex64, fftSize)
	for i, v := range impulseResponse {
		input[i] = complex(float32(v), 0)
	}

	output := make([]complex64, fftSize)
	if err := plan.Forward(output, input); err != nil {
		return nil, fmt.Errorf("irspectrum: forward transform: %w", err)
	}

	bins := make([]Bin, fftSize/2+1)
	for i := range bins {
		magnitude := float64(complex64Abs(output[i]))
		db := -300.0
		if magnitude > 0 {
			db = 20 * math.Log10(magnitude)
		}
		bins[i] = Bin{
			FrequencyHz: float64(i) * sampleRate / float64(fftSize),
			MagnitudeDB: db,
		}
	}
	return bins, nil
}

func complex64Abs(c complex64) float32 {
	return float32(math.Hypot(float64(real(c)), float64(imag(c))))
}
