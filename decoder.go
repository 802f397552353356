package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrFormat is returned when the stream is not a decodable RIFF/WAVE
	// container: wrong magic bytes, an unrecognized codec, an unsupported
	// bit depth, or an inconsistent sample organization. Use errors.Is to
	// distinguish format failures from I/O failures such as truncation.
	ErrFormat = errors.New("unsupported wave format")
	// ErrDurationNilPointer is returned when calculating duration on a nil decoder.
	ErrDurationNilPointer = errors.New("can't calculate the duration of a nil pointer")
)

// Decoder reads an uncompressed RIFF/WAVE stream and exposes its content as
// a lazy sequence of normalized float32 samples.
//
// A Decoder owns its reader for the whole decode: access is sequential and
// forward-only, no seeking is performed. Instances are not safe for
// concurrent use; independent instances over independent readers are.
type Decoder struct {
	r      io.Reader
	parser *riff.Parser

	fmtChunk     *FmtChunk
	sampleFormat SampleFormat
	decodeSample sampleDecodeFunc
	sampleBuf    []byte

	frameRate  uint32
	numChans   uint16
	frameCount int
	dataSize   int

	remaining int
	err       error
}

// NewDecoder consumes the container headers from r and returns a decoder
// positioned at the first sample. Construction is atomic: on any format or
// I/O failure no decoder is returned.
//
// The reader is read strictly forward; it is not rewound or closed. If r
// also implements io.Closer, Close releases it.
func NewDecoder(r io.Reader) (*Decoder, error) {
	d := &Decoder{
		r:      r,
		parser: riff.New(r),
	}

	if err := d.readHeaders(); err != nil {
		return nil, err
	}

	return d, nil
}

// FrameRate returns the number of samples per second and channel.
func (d *Decoder) FrameRate() int {
	if d == nil {
		return 0
	}

	return int(d.frameRate)
}

// FrameCount returns the total number of interleaved sample groups in the
// data chunk.
func (d *Decoder) FrameCount() int {
	if d == nil {
		return 0
	}

	return d.frameCount
}

// ChannelCount returns the number of interleaved channels.
func (d *Decoder) ChannelCount() int {
	if d == nil {
		return 0
	}

	return int(d.numChans)
}

// SampleFormat returns the negotiated sample representation.
func (d *Decoder) SampleFormat() SampleFormat {
	if d == nil {
		return 0
	}

	return d.sampleFormat
}

// BitDepth returns the bit depth declared in the fmt chunk. Note that this
// is the declared depth, not the storage width: a 12-bit file is stored and
// decoded as Int16.
func (d *Decoder) BitDepth() int {
	if d == nil || d.fmtChunk == nil {
		return 0
	}

	return int(d.fmtChunk.BitsPerSample)
}

// PCMLen returns the total number of bytes in the data chunk.
func (d *Decoder) PCMLen() int64 {
	if d == nil {
		return 0
	}

	return int64(d.dataSize)
}

// Err returns the first fatal error encountered while reading samples.
// Errors detected during construction are reported by NewDecoder instead.
func (d *Decoder) Err() error {
	if d == nil {
		return nil
	}

	return d.err
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.numChans),
		SampleRate:  int(d.frameRate),
	}
}

// Duration returns the time duration of the decoded content.
func (d *Decoder) Duration() (time.Duration, error) {
	if d == nil {
		return 0, ErrDurationNilPointer
	}

	if d.frameRate == 0 {
		return 0, fmt.Errorf("%w: zero frame rate", ErrFormat)
	}

	dur := float64(d.frameCount) / float64(d.frameRate) * float64(time.Second)

	return time.Duration(dur), nil
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	if d == nil {
		return ""
	}

	return fmt.Sprintf("WAVE %s - %d channels @ %d Hz - %d frames",
		d.sampleFormat, d.numChans, d.frameRate, d.frameCount)
}

// Close releases the underlying reader when it implements io.Closer.
// Decoding cannot be resumed afterwards.
func (d *Decoder) Close() error {
	if d == nil {
		return nil
	}

	d.remaining = 0

	if c, ok := d.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close the source: %w", err)
		}
	}

	return nil
}

// readHeaders validates the RIFF/WAVE envelope and walks the chunk sequence
// until the data chunk is reached. It leaves the reader positioned at the
// first sample byte.
func (d *Decoder) readHeaders() error {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read the RIFF header: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%w: %q is not a RIFF container", ErrFormat, id[:])
	}

	// Overall container size, unused.
	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read the format identifier: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%w: file format is not WAVE but %q", ErrFormat, d.parser.Format[:])
	}

	for {
		id, size, err := d.parser.IDnSize()
		if err != nil {
			return fmt.Errorf("failed to read chunk header: %w", err)
		}

		switch id {
		case riff.FmtID:
			if err := d.parseFmtChunk(size); err != nil {
				return err
			}
		case riff.DataFormatID:
			if d.fmtChunk == nil {
				return fmt.Errorf("%w: data chunk found before fmt chunk", ErrFormat)
			}

			d.dataSize = int(size)
			d.remaining = d.dataSize / d.sampleFormat.BytesPerSample()
			d.frameCount = d.remaining / int(d.numChans)

			// The reader now sits on the first sample. Anything after the
			// data chunk is never read.
			return nil
		default:
			// Skip unknown chunk, including the pad byte of odd-sized ones.
			_, err := io.CopyN(io.Discard, d.r, int64(roundUpToEven(size)))
			if err != nil {
				return fmt.Errorf("failed to skip %q chunk: %w", id[:], err)
			}
		}
	}
}

// roundUpToEven returns n rounded up to the nearest even number. Chunk
// bodies are word aligned; the pad byte is not included in the declared
// size but must be consumed.
func roundUpToEven(n uint32) uint32 {
	return (n + 1) &^ 1
}
