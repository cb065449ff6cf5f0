package wave

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteReadRoundTripSixteenBit(t *testing.T) {
	header := Header{NumChannels: 1, SampleRate: 44100, BitsPerSample: 16}
	samples := Samples{Sixteen: []int16{0, 1000, -1000, 32767, -32768}}

	var buf bytes.Buffer
	if err := WriteWave(&buf, header, samples); err != nil {
		t.Fatalf("WriteWave: %v", err)
	}

	gotHeader, gotSamples, err := ReadWave(&buf)
	if err != nil {
		t.Fatalf("ReadWave: %v", err)
	}
	if gotHeader != header {
		t.Errorf("header = %+v, want %+v", gotHeader, header)
	}
	if len(gotSamples.Sixteen) != len(samples.Sixteen) {
		t.Fatalf("len(Sixteen) = %d, want %d", len(gotSamples.Sixteen), len(samples.Sixteen))
	}
	for i, v := range samples.Sixteen {
		if gotSamples.Sixteen[i] != v {
			t.Errorf("Sixteen[%d] = %d, want %d", i, gotSamples.Sixteen[i], v)
		}
	}
}

func TestWriteReadRoundTripTwentyFourBit(t *testing.T) {
	header := Header{NumChannels: 2, SampleRate: 48000, BitsPerSample: 24}
	samples := Samples{TwentyFour: []int32{0, 100000, -100000, 8388607, -8388608}}

	var buf bytes.Buffer
	if err := WriteWave(&buf, header, samples); err != nil {
		t.Fatalf("WriteWave: %v", err)
	}

	gotHeader, gotSamples, err := ReadWave(&buf)
	if err != nil {
		t.Fatalf("ReadWave: %v", err)
	}
	if gotHeader != header {
		t.Errorf("header = %+v, want %+v", gotHeader, header)
	}
	for i, v := range samples.TwentyFour {
		if gotSamples.TwentyFour[i] != v {
			t.Errorf("TwentyFour[%d] = %d, want %d", i, gotSamples.TwentyFour[i], v)
		}
	}
}

func TestWriteReadRoundTripThirtyTwoFloat(t *testing.T) {
	header := Header{NumChannels: 1, SampleRate: 44100, BitsPerSample: 32, Float: true}
	samples := Samples{ThirtyTwoFloat: []float32{0, 0.5, -0.5, 1.0, -1.0}}

	var buf bytes.Buffer
	if err := WriteWave(&buf, header, samples); err != nil {
		t.Fatalf("WriteWave: %v", err)
	}

	gotHeader, gotSamples, err := ReadWave(&buf)
	if err != nil {
		t.Fatalf("ReadWave: %v", err)
	}
	if gotHeader != header {
		t.Errorf("header = %+v, want %+v", gotHeader, header)
	}
	for i, v := range samples.ThirtyTwoFloat {
		if gotSamples.ThirtyTwoFloat[i] != v {
			t.Errorf("ThirtyTwoFloat[%d] = %v, want %v", i, gotSamples.ThirtyTwoFloat[i], v)
		}
	}
}

func TestWriteReadRoundTripEmpty(t *testing.T) {
	header := Header{NumChannels: 1, SampleRate: 44100, BitsPerSample: 16}
	samples := Samples{Empty: true}

	var buf bytes.Buffer
	if err := WriteWave(&buf, header, samples); err != nil {
		t.Fatalf("WriteWave: %v", err)
	}

	_, gotSamples, err := ReadWave(&buf)
	if err != nil {
		t.Fatalf("ReadWave: %v", err)
	}
	if !gotSamples.Empty {
		t.Errorf("expected Empty samples for a zero-length data chunk")
	}
}

func TestReadWaveInvalidMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a riff file at all, padded to twelve")
	_, _, err := ReadWave(buf)
	if !errors.Is(err, ErrNotRIFF) {
		t.Errorf("err = %v, want ErrNotRIFF", err)
	}
}

func TestReadWaveMissingDataChunk(t *testing.T) {
	header := Header{NumChannels: 1, SampleRate: 44100, BitsPerSample: 16}
	var full bytes.Buffer
	if err := WriteWave(&full, header, Samples{Sixteen: []int16{1, 2, 3}}); err != nil {
		t.Fatalf("WriteWave: %v", err)
	}

	// Truncate after the fmt chunk (RIFF header 12 bytes + fmt chunk header 8
	// + 16 bytes of fmt payload = 36 bytes), dropping the data chunk.
	truncated := bytes.NewReader(full.Bytes()[:36])
	_, _, err := ReadWave(truncated)
	if !errors.Is(err, ErrMissingDataChunk) {
		t.Errorf("err = %v, want ErrMissingDataChunk", err)
	}
}

func TestSamplesToFloat64Normalizes(t *testing.T) {
	got := Samples{Sixteen: []int16{32767, -32768, 0}}.ToFloat64()
	want := []float64{32767.0 / 32768.0, -1.0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToFloat64()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSamplesToFloat64Empty(t *testing.T) {
	if got := (Samples{Empty: true}).ToFloat64(); got != nil {
		t.Errorf("ToFloat64() = %v, want nil", got)
	}
}
