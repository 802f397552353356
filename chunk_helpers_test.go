package wave

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

type testChunk struct {
	id   string
	data []byte
}

type testFmt struct {
	formatTag      uint16
	numChans       uint16
	sampleRate     uint32
	avgBytesPerSec uint32
	blockAlign     uint16
	bitsPerSample  uint16
	extra          []byte
}

func (f testFmt) payload() []byte {
	var b bytes.Buffer

	binary.Write(&b, binary.LittleEndian, f.formatTag)
	binary.Write(&b, binary.LittleEndian, f.numChans)
	binary.Write(&b, binary.LittleEndian, f.sampleRate)
	binary.Write(&b, binary.LittleEndian, f.avgBytesPerSec)
	binary.Write(&b, binary.LittleEndian, f.blockAlign)
	binary.Write(&b, binary.LittleEndian, f.bitsPerSample)
	b.Write(f.extra)

	return b.Bytes()
}

// pcm16Fmt returns a plain PCM fmt chunk for 16-bit content.
func pcm16Fmt(numChans uint16, sampleRate uint32) testFmt {
	return testFmt{
		formatTag:      1,
		numChans:       numChans,
		sampleRate:     sampleRate,
		avgBytesPerSec: sampleRate * uint32(numChans) * 2,
		blockAlign:     numChans * 2,
		bitsPerSample:  16,
	}
}

// appendChunk writes a chunk header, payload, and the pad byte required for
// odd-sized payloads. The declared size never includes the pad byte.
func appendChunk(buf *bytes.Buffer, id string, payload []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)

	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

// makeWav assembles a RIFF/WAVE byte stream from the given chunks, in order.
func makeWav(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()

	var body bytes.Buffer

	body.WriteString("WAVE")

	for _, ch := range chunks {
		appendChunk(&body, ch.id, ch.data)
	}

	var out bytes.Buffer

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// makeSimpleWav assembles a wav with just a fmt and a data chunk.
func makeSimpleWav(t *testing.T, f testFmt, data []byte) []byte {
	t.Helper()

	return makeWav(t,
		testChunk{id: "fmt ", data: f.payload()},
		testChunk{id: "data", data: data},
	)
}

func int16Bytes(samples ...int16) []byte {
	var b bytes.Buffer

	for _, s := range samples {
		binary.Write(&b, binary.LittleEndian, s)
	}

	return b.Bytes()
}

func float32Bytes(samples ...float32) []byte {
	var b bytes.Buffer

	for _, s := range samples {
		binary.Write(&b, binary.LittleEndian, math.Float32bits(s))
	}

	return b.Bytes()
}

func float32ApproxEqual(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}

	return diff <= epsilon
}

func assertFloat32SlicesClose(t *testing.T, got, want []float32, epsilon float32) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if !float32ApproxEqual(got[i], want[i], epsilon) {
			t.Fatalf("sample %d mismatch: got %f, want %f", i, got[i], want[i])
		}
	}
}
