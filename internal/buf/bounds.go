package buf

// Slice returns b[off:off+n] when the range is in bounds.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if !Has(b, off, n) {
		return nil, false
	}
	return b[off : off+n], true
}

// Has reports whether b[off:off+n] is in bounds.
func Has(b []byte, off, n int) bool {
	if off < 0 || n < 0 {
		return false
	}
	end := off + n
	if end < off {
		return false
	}
	return end <= len(b)
}

// Concat joins key segments into a freshly allocated key.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
