// Package wave provides parsing and serialization of RIFF/WAVE audio files.
//
// This targets uncompressed PCM and IEEE-float WAV the way an AIFF parser
// targets uncompressed AIFF: a chunk-loop parser plus a bit-depth variant
// type for the decoded samples.
package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Errors.
var (
	ErrNotRIFF             = errors.New("wave: not a RIFF/WAVE file")
	ErrMissingFormatChunk  = errors.New("wave: missing fmt chunk")
	ErrMissingDataChunk    = errors.New("wave: missing data chunk")
	ErrUnsupportedBitDepth = errors.New("wave: unsupported bit depth")
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// Header describes a WAV file's audio format, independent of the sample
// data itself.
type Header struct {
	NumChannels   int
	SampleRate    int
	BitsPerSample int
	Float         bool
}

// Samples is the decoded sample data, one variant per supported bit depth.
// Exactly one field is non-nil (or Empty is true for a zero-sample file),
// mirroring the BitDepth sum type the engine reads.
type Samples struct {
	Eight          []int8
	Sixteen        []int16
	TwentyFour     []int32 // sign-extended to 32 bits
	ThirtyTwoFloat []float32
	Empty          bool
}

// ToFloat64 converts whichever variant is populated into the engine's
// working representation, normalized to [-1.0, 1.0].
func (s Samples) ToFloat64() []float64 {
	switch {
	case s.Empty:
		return nil
	case s.Eight != nil:
		out := make([]float64, len(s.Eight))
		for i, v := range s.Eight {
			out[i] = float64(v) / 128.0
		}
		return out
	case s.Sixteen != nil:
		out := make([]float64, len(s.Sixteen))
		for i, v := range s.Sixteen {
			out[i] = float64(v) / 32768.0
		}
		return out
	case s.TwentyFour != nil:
		out := make([]float64, len(s.TwentyFour))
		for i, v := range s.TwentyFour {
			out[i] = float64(v) / 8388608.0
		}
		return out
	case s.ThirtyTwoFloat != nil:
		out := make([]float64, len(s.ThirtyTwoFloat))
		for i, v := range s.ThirtyTwoFloat {
			out[i] = float64(v)
		}
		return out
	default:
		return nil
	}
}

// ReadWave parses a little-endian RIFF/WAVE stream, skipping every chunk
// other than fmt and data.
func ReadWave(r io.Reader) (Header, Samples, error) {
	var riffHeader [12]byte
	if _, err := io.ReadFull(r, riffHeader[:]); err != nil {
		return Header{}, Samples{}, fmt.Errorf("%w: %w", ErrNotRIFF, err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return Header{}, Samples{}, ErrNotRIFF
	}

	var header Header
	var formatFound, dataFound bool
	var rawData []byte

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF {
				break
			}
			return Header{}, Samples{}, fmt.Errorf("wave: reading chunk header: %w", err)
		}

		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])
		paddedSize := chunkSize
		if paddedSize%2 != 0 {
			paddedSize++
		}

		switch chunkID {
		case "fmt ":
			if err := parseFormatChunk(r, &header, chunkSize); err != nil {
				return Header{}, Samples{}, err
			}
			formatFound = true
			if chunkSize%2 != 0 {
				_, _ = io.ReadFull(r, make([]byte, 1))
			}

		case "data":
			if !formatFound {
				return Header{}, Samples{}, fmt.Errorf("%w: data chunk before fmt chunk", ErrMissingFormatChunk)
			}
			rawData = make([]byte, chunkSize)
			if _, err := io.ReadFull(r, rawData); err != nil {
				return Header{}, Samples{}, fmt.Errorf("wave: reading data chunk: %w", err)
			}
			dataFound = true
			if chunkSize%2 != 0 {
				_, _ = io.ReadFull(r, make([]byte, 1))
			}

		default:
			if _, err := io.CopyN(io.Discard, r, int64(paddedSize)); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return Header{}, Samples{}, fmt.Errorf("wave: skipping chunk %s: %w", chunkID, err)
			}
		}
	}

	if !formatFound {
		return Header{}, Samples{}, ErrMissingFormatChunk
	}
	if !dataFound {
		return Header{}, Samples{}, ErrMissingDataChunk
	}

	samples, err := decodeSamples(header, rawData)
	if err != nil {
		return Header{}, Samples{}, err
	}
	return header, samples, nil
}

func parseFormatChunk(r io.Reader, header *Header, size uint32) error {
	if size < 16 {
		return fmt.Errorf("%w: fmt chunk too small", ErrMissingFormatChunk)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFormatChunk, err)
	}

	audioFormat := binary.LittleEndian.Uint16(buf[0:2])
	header.NumChannels = int(binary.LittleEndian.Uint16(buf[2:4]))
	header.SampleRate = int(binary.LittleEndian.Uint32(buf[4:8]))
	header.BitsPerSample = int(binary.LittleEndian.Uint16(buf[14:16]))

	switch audioFormat {
	case formatPCM:
		header.Float = false
	case formatIEEEFloat:
		header.Float = true
	default:
		return fmt.Errorf("%w: audio format %d", ErrUnsupportedBitDepth, audioFormat)
	}

	if !header.Float && header.BitsPerSample != 8 && header.BitsPerSample != 16 && header.BitsPerSample != 24 {
		return fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedBitDepth, header.BitsPerSample)
	}
	if header.Float && header.BitsPerSample != 32 {
		return fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, header.BitsPerSample)
	}

	return nil
}

func decodeSamples(header Header, data []byte) (Samples, error) {
	if len(data) == 0 {
		return Samples{Empty: true}, nil
	}

	switch {
	case !header.Float && header.BitsPerSample == 8:
		out := make([]int8, len(data))
		for i, b := range data {
			out[i] = int8(int(b) - 128)
		}
		return Samples{Eight: out}, nil

	case !header.Float && header.BitsPerSample == 16:
		n := len(data) / 2
		out := make([]int16, n)
		for i := range n {
			out[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		}
		return Samples{Sixteen: out}, nil

	case !header.Float && header.BitsPerSample == 24:
		n := len(data) / 3
		out := make([]int32, n)
		for i := range n {
			b0, b1, b2 := data[i*3], data[i*3+1], data[i*3+2]
			var s int32
			if b2&0x80 != 0 {
				s = -1<<24 | int32(b2)<<16 | int32(b1)<<8 | int32(b0)
			} else {
				s = int32(b2)<<16 | int32(b1)<<8 | int32(b0)
			}
			out[i] = s
		}
		return Samples{TwentyFour: out}, nil

	case header.Float && header.BitsPerSample == 32:
		n := len(data) / 4
		out := make([]float32, n)
		for i := range n {
			bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
			out[i] = math.Float32frombits(bits)
		}
		return Samples{ThirtyTwoFloat: out}, nil

	default:
		return Samples{}, fmt.Errorf("%w: %d-bit (float=%v)", ErrUnsupportedBitDepth, header.BitsPerSample, header.Float)
	}
}

// WriteWave writes a canonical 44-byte-header PCM/IEEE-float WAV file.
func WriteWave(w io.Writer, header Header, samples Samples) error {
	data, err := encodeSamples(header, samples)
	if err != nil {
		return err
	}

	audioFormat := uint16(formatPCM)
	if header.Float {
		audioFormat = formatIEEEFloat
	}
	blockAlign := header.NumChannels * header.BitsPerSample / 8
	byteRate := header.SampleRate * blockAlign

	var buf [44]byte
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(data)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], audioFormat)
	binary.LittleEndian.PutUint16(buf[22:24], uint16(header.NumChannels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(header.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(header.BitsPerSample))
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(data)))

	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("wave: writing header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wave: writing data: %w", err)
	}
	return nil
}

func encodeSamples(header Header, samples Samples) ([]byte, error) {
	switch {
	case samples.Empty:
		return nil, nil

	case samples.Eight != nil:
		out := make([]byte, len(samples.Eight))
		for i, v := range samples.Eight {
			out[i] = byte(int(v) + 128)
		}
		return out, nil

	case samples.Sixteen != nil:
		out := make([]byte, len(samples.Sixteen)*2)
		for i, v := range samples.Sixteen {
			binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(v))
		}
		return out, nil

	case samples.TwentyFour != nil:
		out := make([]byte, len(samples.TwentyFour)*3)
		for i, v := range samples.TwentyFour {
			out[i*3] = byte(v)
			out[i*3+1] = byte(v >> 8)
			out[i*3+2] = byte(v >> 16)
		}
		return out, nil

	case samples.ThirtyTwoFloat != nil:
		out := make([]byte, len(samples.ThirtyTwoFloat)*4)
		for i, v := range samples.ThirtyTwoFloat {
			binary.LittleEndian.PutUint32(out[i*4:i*4+4], math.Float32bits(v))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: no sample variant populated", ErrUnsupportedBitDepth)
	}
}
