package wave

// FormatChunk returns a copy of the parsed fmt chunk, if available.
func (d *Decoder) FormatChunk() *FmtChunk {
	if d == nil || d.fmtChunk == nil {
		return nil
	}

	return d.fmtChunk.Clone()
}
