// Package huffman builds and decodes canonical Huffman codes as used by
// DEFLATE (RFC 1951 §3.2.2): a code is fully determined by a vector of
// per-symbol code lengths, with codes assigned in length-then-symbol
// order. Construction and decoding follow the bit-serial algorithm of the
// RFC directly; a lookup-table fast path (root table over the first few
// bits with overflow subtables) is a valid, purely performance-motivated
// alternative that this package does not need at the scale of one block's
// worth of symbols.
package huffman

import (
	"fmt"

	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/gzerr"
)

// MaxBits is the longest code length DEFLATE allows for any alphabet.
const MaxBits = 15

// invalidLengths reports a code-length vector that cannot be read,
// either because it assigns more codes to some length than that length
// can represent (oversubscribed) or because decoding ran MaxBits bits
// without matching any assigned code.
func invalidLengths(reason string) error {
	return gzerr.New(gzerr.InvalidHuffmanLengths, reason)
}

// key packs a (code, length) pair into a single map key. Codes are at
// most 15 bits, so the length fits comfortably above them.
type key uint32

func makeKey(code uint16, length uint8) key {
	return key(code) | key(length)<<15
}

// Table is a canonical Huffman decode table over logical symbol type T. A
// Table is built fresh for every block's litlen/distance/tree-code
// alphabet (they are cheap and hold no state beyond the map) or reused
// immutably for DEFLATE's fixed tables.
type Table[T any] struct {
	byCode map[key]T
}

// New builds a Table from code lengths L[0..len(lengths)), each 0..=15 (0
// meaning the symbol is unused). translate maps a raw symbol index
// (0..len(lengths)) to a decoded value; it returns ok=false for a symbol
// index the alphabet does not define, which New treats as a construction
// error rather than silently dropping the code the way a careless port
// might.
func New[T any](lengths []uint8, translate func(sym uint16) (T, bool)) (*Table[T], error) {
	var blCount [MaxBits + 1]int
	for _, l := range lengths {
		if l > MaxBits {
			return nil, invalidLengths(fmt.Sprintf("length %d exceeds %d", l, MaxBits))
		}
		blCount[l]++
	}
	blCount[0] = 0

	var nextCode [MaxBits + 1]int
	code := 0
	for b := 1; b <= MaxBits; b++ {
		code = (code + blCount[b-1]) << 1
		nextCode[b] = code
	}

	byCode := make(map[key]T, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		if nextCode[l] >= (1 << l) {
			return nil, invalidLengths("oversubscribed code")
		}
		val, ok := translate(uint16(sym))
		if !ok {
			return nil, invalidLengths(fmt.Sprintf("symbol %d has no alphabet mapping", sym))
		}
		byCode[makeKey(uint16(nextCode[l]), l)] = val
		nextCode[l]++
	}
	return &Table[T]{byCode: byCode}, nil
}

// ReadSymbol accumulates bits one at a time from br, MSB-first, until the
// accumulated (code, length) pair matches one of the table's entries. It
// fails after MaxBits bits with no match: canonical codes guarantee no two
// symbols share a (code, length) pair, so a match, once found, is unique.
func (t *Table[T]) ReadSymbol(br *bitreader.Reader) (T, error) {
	var code uint16
	for length := uint8(1); length <= MaxBits; length++ {
		bit, err := br.ReadBit()
		if err != nil {
			var zero T
			return zero, err
		}
		code <<= 1
		if bit {
			code |= 1
		}
		if val, ok := t.byCode[makeKey(code, length)]; ok {
			return val, nil
		}
	}
	var zero T
	return zero, invalidLengths("no symbol matched within 15 bits")
}
