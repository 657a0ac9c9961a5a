package huffman_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/huffman"
)

func identity(sym uint16) (uint16, bool) { return sym, true }

func newReader(data []byte) *bitreader.Reader {
	return bitreader.New(bufio.NewReader(bytes.NewReader(data)))
}

func TestReadSymbol(t *testing.T) {
	table, err := huffman.New([]uint8{2, 3, 4, 3, 3, 4, 2}, identity)
	if err != nil {
		t.Fatal(err)
	}
	br := newReader([]byte{0b10111001, 0b11001010, 0b11101101})

	for i, want := range []uint16{1, 2, 3, 6, 0, 2, 4} {
		got, err := table.ReadSymbol(br)
		if err != nil {
			t.Fatalf("symbol %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d, want %d", i, got, want)
		}
	}
	if _, err := table.ReadSymbol(br); err == nil {
		t.Errorf("expected an error once the stream's bits are exhausted")
	}
}

func TestReadSymbolWithZeroLengths(t *testing.T) {
	table, err := huffman.New([]uint8{3, 4, 5, 5, 0, 0, 6, 6, 4, 0, 6, 0, 7}, identity)
	if err != nil {
		t.Fatal(err)
	}
	br := newReader([]byte{
		0b00100000, 0b00100001, 0b00010101, 0b10010101, 0b00110101, 0b00011101,
	})
	for i, want := range []uint16{0, 1, 2, 3, 6, 7, 8, 10, 12} {
		got, err := table.ReadSymbol(br)
		if err != nil {
			t.Fatalf("symbol %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d, want %d", i, got, want)
		}
	}
}

func TestOversubscribed(t *testing.T) {
	// Two symbols of length 1 is already every length-1 code there is;
	// a third is oversubscribed.
	_, err := huffman.New([]uint8{1, 1, 1}, identity)
	if err == nil {
		t.Fatal("expected an oversubscribed-code error")
	}
}

func TestIncompleteSingleCodeIsUsable(t *testing.T) {
	// sym0 is unused (length 0); sym1 is the sole length-1 code, "0".
	// Code "1" is simply unassigned. This is the degenerate single-code
	// case RFC 1951 permits; no special-casing is needed or performed.
	table, err := huffman.New([]uint8{0, 1}, identity)
	if err != nil {
		t.Fatal(err)
	}
	br := newReader([]byte{0x00})
	got, err := table.ReadSymbol(br)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestUnmappableSymbolRejectedAtConstruction(t *testing.T) {
	never := func(uint16) (uint16, bool) { return 0, false }
	_, err := huffman.New([]uint8{1, 1}, never)
	if err == nil {
		t.Fatal("expected a construction error for an unmappable symbol")
	}
}
