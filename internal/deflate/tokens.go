package deflate

// LitLenToken is what a symbol decoded off the litlen alphabet means:
// a literal byte to emit, the end-of-block marker, or the base/extra-bits
// pair of a length that introduces a back-reference (RFC 1951 §3.2.5).
type LitLenToken struct {
	kind      litLenKind
	literal   byte
	base      uint16
	extraBits uint8
}

type litLenKind uint8

const (
	litLenLiteral litLenKind = iota
	litLenEndOfBlock
	litLenLength
	litLenReserved // symbols 286, 287: assigned a code by the fixed table but never produced by a real compressor
)

func (t LitLenToken) IsLiteral() bool    { return t.kind == litLenLiteral }
func (t LitLenToken) Literal() byte      { return t.literal }
func (t LitLenToken) IsEndOfBlock() bool { return t.kind == litLenEndOfBlock }
func (t LitLenToken) IsLength() bool     { return t.kind == litLenLength }
func (t LitLenToken) Base() uint16       { return t.base }
func (t LitLenToken) ExtraBits() uint8   { return t.extraBits }
func (t LitLenToken) IsReserved() bool   { return t.kind == litLenReserved }

// litLenAlphabetSize is the number of symbols (0..287) the litlen
// alphabet spans; symbols 286 and 287 are assigned code lengths by the
// fixed table but have no meaning (RFC 1951 §3.2.6).
const litLenAlphabetSize = 288

// translateLitLen maps a raw symbol index to its token. It never fails:
// every index in range has a defined (if reserved) meaning, so a code
// length assigned to 286 or 287 still builds into the table and is only
// rejected, as an invalid symbol, if a block actually decodes it.
func translateLitLen(sym uint16) (LitLenToken, bool) {
	switch {
	case sym < 256:
		return LitLenToken{kind: litLenLiteral, literal: byte(sym)}, true
	case sym == 256:
		return LitLenToken{kind: litLenEndOfBlock}, true
	case sym <= 285:
		base, extra := lengthBaseExtra[sym-257][0], lengthBaseExtra[sym-257][1]
		return LitLenToken{kind: litLenLength, base: base, extraBits: uint8(extra)}, true
	case sym <= 287:
		return LitLenToken{kind: litLenReserved}, true
	default:
		return LitLenToken{}, false
	}
}

// lengthBaseExtra holds, for litlen symbols 257..285 (index 0..28), the
// base length and number of extra bits that follow it in the stream.
var lengthBaseExtra = [29][2]uint16{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// DistanceToken is the base/extra-bits pair a decoded distance symbol
// expands to (RFC 1951 §3.2.5).
type DistanceToken struct {
	base      uint16
	extraBits uint8
	reserved  bool
}

func (t DistanceToken) Base() uint16     { return t.base }
func (t DistanceToken) ExtraBits() uint8 { return t.extraBits }
func (t DistanceToken) IsReserved() bool { return t.reserved }

// distAlphabetSize is the number of symbols (0..31) the distance
// alphabet spans; symbols 30 and 31 are assigned code lengths by the
// fixed table but have no meaning.
const distAlphabetSize = 32

// distanceBaseExtra holds, for distance symbols 0..29, the base
// distance and number of extra bits that follow it in the stream.
var distanceBaseExtra = [30][2]uint16{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

func translateDistance(sym uint16) (DistanceToken, bool) {
	switch {
	case sym <= 29:
		base, extra := distanceBaseExtra[sym][0], distanceBaseExtra[sym][1]
		return DistanceToken{base: base, extraBits: uint8(extra)}, true
	case sym <= 31:
		return DistanceToken{reserved: true}, true
	default:
		return DistanceToken{}, false
	}
}

// treeCodeKind distinguishes the three meanings a code-length alphabet
// symbol can have while decoding a dynamic block's HLIT+HDIST lengths
// (RFC 1951 §3.2.7).
type treeCodeKind uint8

const (
	treeCodeLength treeCodeKind = iota
	treeCodeCopyPrev
	treeCodeRepeatZero
)

type treeCodeToken struct {
	kind      treeCodeKind
	length    uint8 // valid when kind == treeCodeLength
	base      uint16
	extraBits uint8
}

// translateTreeCode maps a raw code-length-alphabet symbol (0..18) to
// its meaning. The permutation that maps HCLEN's transmission order to
// these symbol indices lives in codeLengthOrder (trees.go), not here.
func translateTreeCode(sym uint16) (treeCodeToken, bool) {
	switch {
	case sym <= 15:
		return treeCodeToken{kind: treeCodeLength, length: uint8(sym)}, true
	case sym == 16:
		return treeCodeToken{kind: treeCodeCopyPrev}, true
	case sym == 17:
		return treeCodeToken{kind: treeCodeRepeatZero, base: 3, extraBits: 3}, true
	case sym == 18:
		return treeCodeToken{kind: treeCodeRepeatZero, base: 11, extraBits: 7}, true
	default:
		return treeCodeToken{}, false
	}
}
