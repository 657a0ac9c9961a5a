package deflate_test

import (
	"bufio"
	"bytes"
	"compress/flate"
	"testing"

	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/deflate"
	"github.com/coreward/gzdecode/internal/window"
)

// encode compresses data with the standard library's flate writer,
// used strictly as a reference encoder to manufacture test inputs; it
// is never used for decoding.
func encode(t *testing.T, data []byte, level int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decode(t *testing.T, compressed []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	sink := window.New(&out)
	br := bitreader.New(bufio.NewReader(bytes.NewReader(compressed)))
	if err := deflate.Decode(br, sink); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out.Bytes()
}

func TestDecodeFixedBlockLiterals(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 8)
	got := decode(t, encode(t, data, flate.BestSpeed))
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestDecodeDynamicBlock(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")
	got := decode(t, encode(t, data, flate.BestCompression))
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestDecodeStoredBlock(t *testing.T) {
	data := []byte("Hello")
	got := decode(t, encode(t, data, flate.NoCompression))
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got := decode(t, encode(t, nil, flate.DefaultCompression))
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDecodeSelfOverlappingBackReference(t *testing.T) {
	// "abab...ab" (100 bytes): after "ab" is emitted, a distance-2
	// reference longer than 2 must wrap around and reproduce the rest
	// from just the 2 bytes behind it, exercising the same self-overlap
	// as window's own test.
	data := bytes.Repeat([]byte("ab"), 50)
	got := decode(t, encode(t, data, flate.BestCompression))
	if !bytes.Equal(got, data) {
		t.Errorf("got %d bytes, want %d", len(got), len(data))
	}
}

func TestDecodeRejectsReservedBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=3 (0b11) packed into the first byte's low 3 bits.
	br := bitreader.New(bufio.NewReader(bytes.NewReader([]byte{0b111})))
	sink := window.New(&bytes.Buffer{})
	if err := deflate.Decode(br, sink); err == nil {
		t.Fatal("expected an error for a reserved block type")
	}
}
