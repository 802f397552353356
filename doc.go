// Package wave decodes uncompressed RIFF/WAVE audio into a sequential
// stream of normalized float32 samples.
//
// The decoder supports PCM integer content stored as 8, 16, or 24-bit
// samples (non-byte-aligned depths such as 12-bit are stored in the next
// larger byte size) and 32-bit IEEE float content. Integer samples are
// rescaled so the minimum representable value maps to -1 and the maximum
// to +1; float samples are passed through untouched.
//
// Decoding is strictly sequential and forward-only:
//
//	d, err := wave.NewDecoder(r)
//	if err != nil {
//	    // not a decodable WAVE stream
//	}
//	for {
//	    sample, ok := d.NextSample()
//	    if !ok {
//	        break
//	    }
//	    // samples arrive interleaved by channel, in file order
//	}
//	if err := d.Err(); err != nil {
//	    // truncated stream
//	}
//
// Compressed codecs, WAVE_FORMAT_EXTENSIBLE files, and seeking are not
// supported; encountering an unsupported format fails construction with an
// error wrapping ErrFormat.
package wave
