package buf

import (
	"bytes"
	"testing"
)

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}

func TestConcat(t *testing.T) {
	prefix := []byte("t/")
	got := Concat(prefix, []byte{1, 2}, []byte("/c"))
	if !bytes.Equal(got, []byte{'t', '/', 1, 2, '/', 'c'}) {
		t.Fatalf("Concat = %v", got)
	}
	got[0] = 'x'
	if prefix[0] != 't' {
		t.Fatalf("Concat must not alias its inputs")
	}
}
