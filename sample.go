package wave

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
)

const (
	maxPCMUint8 = 255
	minPCMInt16 = math.MinInt16
	maxPCMInt16 = math.MaxInt16
	minPCMInt24 = -8388608
	maxPCMInt24 = 8388607
)

type sampleDecodeFunc func(io.Reader, []byte) (float32, error)

var errUnhandledSampleFormat = fmt.Errorf("%w: unhandled sample format", ErrFormat)

// NextSample returns the next interleaved sample normalized to [-1, 1],
// in file order. The boolean is false at and after exhaustion, or after a
// fatal read error; in the latter case Err reports the failure.
func (d *Decoder) NextSample() (float32, bool) {
	if d == nil || d.err != nil || d.remaining == 0 {
		return 0, false
	}

	sample, err := d.decodeSample(d.r, d.sampleBuf)
	if err != nil {
		// A short read mid-stream means a truncated file; fatal.
		d.err = fmt.Errorf("failed to read sample: %w", err)

		return 0, false
	}

	d.remaining--

	return sample, true
}

// sampleDecodeFloat32Func returns a function reading one raw sample of the
// given format and converting it to a normalized float32. Float32 content
// is passed through untouched, without clamping.
func sampleDecodeFloat32Func(format SampleFormat) (sampleDecodeFunc, error) {
	// NOTE: WAV sample data is stored little-endian.
	switch format {
	case UInt8:
		return func(r io.Reader, buf []byte) (float32, error) {
			if _, err := io.ReadFull(r, buf[:1]); err != nil {
				return 0, err
			}

			return toNormalizedFloat(int(buf[0]), 0, maxPCMUint8), nil
		}, nil
	case Int16:
		return func(r io.Reader, buf []byte) (float32, error) {
			if _, err := io.ReadFull(r, buf[:2]); err != nil {
				return 0, err
			}

			raw := int(int16(binary.LittleEndian.Uint16(buf[:2])))

			return toNormalizedFloat(raw, minPCMInt16, maxPCMInt16), nil
		}, nil
	case Int24:
		return func(r io.Reader, buf []byte) (float32, error) {
			if _, err := io.ReadFull(r, buf[:3]); err != nil {
				return 0, err
			}

			// Int24LETo32 assembles the three bytes and sign-extends bit 23.
			raw := int(audio.Int24LETo32(buf[:3]))

			return toNormalizedFloat(raw, minPCMInt24, maxPCMInt24), nil
		}, nil
	case Float32:
		return func(r io.Reader, buf []byte) (float32, error) {
			if _, err := io.ReadFull(r, buf[:4]); err != nil {
				return 0, err
			}

			return math.Float32frombits(binary.LittleEndian.Uint32(buf[:4])), nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnhandledSampleFormat, format)
	}
}

// toNormalizedFloat maps an integer in min..max to a float in -1..1. The
// minimum raw value maps to exactly -1 and the maximum to exactly +1; the
// mapping is a pure range rescale, not symmetric around zero.
func toNormalizedFloat(value, min, max int) float32 {
	return float32(value-min)/float32(max-min)*2 - 1
}
