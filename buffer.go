package wave

import (
	"github.com/go-audio/audio"
)

const fullBufferChunkSize = 4096

// PCMBuffer fills the passed buffer with decoded samples and returns the
// number of samples written. Fewer samples than the buffer holds means the
// stream is exhausted; the error, if any, is the decoder's fatal read error.
func (d *Decoder) PCMBuffer(buf *audio.Float32Buffer) (n int, err error) {
	if buf == nil {
		return 0, nil
	}

	buf.Format = d.Format()
	buf.SourceBitDepth = d.BitDepth()

	for n = 0; n < len(buf.Data); n++ {
		sample, ok := d.NextSample()
		if !ok {
			break
		}

		buf.Data[n] = sample
	}

	return n, d.Err()
}

// FullPCMBuffer decodes all remaining samples into memory. For large files
// consider draining the stream with PCMBuffer or NextSample instead.
func (d *Decoder) FullPCMBuffer() (*audio.Float32Buffer, error) {
	buf := &audio.Float32Buffer{
		Data:           make([]float32, fullBufferChunkSize),
		Format:         d.Format(),
		SourceBitDepth: d.BitDepth(),
	}

	i := 0

	for {
		sample, ok := d.NextSample()
		if !ok {
			break
		}

		buf.Data[i] = sample

		i++
		if i == len(buf.Data) {
			buf.Data = append(buf.Data, make([]float32, fullBufferChunkSize)...)
		}
	}

	buf.Data = buf.Data[:i]

	return buf, d.Err()
}
