package wave

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const (
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3
)

// SampleFormat identifies the storage representation of a single sample.
// It is negotiated once from the fmt chunk and immutable afterwards.
type SampleFormat uint8

const (
	// UInt8 is unsigned 8-bit PCM.
	UInt8 SampleFormat = iota + 1
	// Int16 is signed 16-bit little-endian PCM.
	Int16
	// Int24 is signed 24-bit little-endian PCM.
	Int24
	// Float32 is IEEE-754 32-bit little-endian float.
	Float32
)

// BytesPerSample returns the storage width of one sample.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case UInt8:
		return 1
	case Int16:
		return 2
	case Int24:
		return 3
	case Float32:
		return 4
	default:
		return 0
	}
}

// String implements the Stringer interface.
func (f SampleFormat) String() string {
	switch f {
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case Int24:
		return "int24"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// FmtChunk stores the parsed WAV fmt chunk fields.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// Clone returns a copy of the fmt chunk.
func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f

	return &out
}

// parseFmtChunk reads the fmt chunk body and negotiates the sample format.
// The full chunk body is consumed, including any extension bytes beyond the
// 16 documented ones and the pad byte of odd-sized chunks.
func (d *Decoder) parseFmtChunk(size uint32) error {
	chunk := &riff.Chunk{
		ID:   riff.FmtID,
		Size: int(roundUpToEven(size)),
		R:    io.LimitReader(d.r, int64(roundUpToEven(size))),
	}

	fmtChunk := &FmtChunk{}

	err := chunk.ReadLE(&fmtChunk.FormatTag)
	if err != nil {
		return fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.NumChannels)
	if err != nil {
		return fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.AvgBytesPerSec)
	if err != nil {
		return fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BlockAlign)
	if err != nil {
		return fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&fmtChunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("failed to read bit depth: %w", err)
	}

	format, err := negotiateSampleFormat(fmtChunk)
	if err != nil {
		return err
	}

	decodeF, err := sampleDecodeFloat32Func(format)
	if err != nil {
		return err
	}

	d.fmtChunk = fmtChunk
	d.numChans = fmtChunk.NumChannels
	d.frameRate = fmtChunk.SampleRate
	d.sampleFormat = format
	d.decodeSample = decodeF
	d.sampleBuf = make([]byte, format.BytesPerSample())

	// Skip extension fields (fmt chunks can be 18 or 40 bytes long).
	chunk.Drain()

	return nil
}

// negotiateSampleFormat maps the codec tag and bit depth onto one of the
// supported storage representations.
//
// For PCM, bit depths that are not a multiple of 8 are stored in the next
// larger byte size per the WAVE standard, so e.g. 12-bit content decodes as
// Int16.
func negotiateSampleFormat(f *FmtChunk) (SampleFormat, error) {
	if f.NumChannels < 1 {
		return 0, fmt.Errorf("%w: invalid channel count %d", ErrFormat, f.NumChannels)
	}

	switch f.FormatTag {
	case wavFormatPCM:
		var format SampleFormat

		switch {
		case f.BitsPerSample == 8:
			format = UInt8
		case f.BitsPerSample <= 16:
			format = Int16
		case f.BitsPerSample <= 24:
			format = Int24
		default:
			return 0, fmt.Errorf("%w: %d-bit integer samples", ErrFormat, f.BitsPerSample)
		}

		if format.BytesPerSample()*int(f.NumChannels) != int(f.BlockAlign) {
			return 0, fmt.Errorf("%w: unsupported sample organization", ErrFormat)
		}

		return format, nil
	case wavFormatIEEEFloat:
		if f.BitsPerSample != 32 {
			return 0, fmt.Errorf("%w: %d-bit floating-point samples", ErrFormat, f.BitsPerSample)
		}

		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: only uncompressed formats are supported (format tag %d)",
			ErrFormat, f.FormatTag)
	}
}
