package deflate

import (
	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/gzerr"
	"github.com/coreward/gzdecode/internal/huffman"
)

// fixedLitLenLengths and fixedDistLengths are RFC 1951 §3.2.6's literal
// Huffman code lengths for a type 01 (fixed) block: symbols 0..143 get
// length 8, 144..255 get 9, 256..279 get 7, 280..287 get 8; every
// distance symbol gets length 5.
var fixedLitLenLengths = func() []uint8 {
	lengths := make([]uint8, litLenAlphabetSize)
	for i := range lengths {
		switch {
		case i <= 143:
			lengths[i] = 8
		case i <= 255:
			lengths[i] = 9
		case i <= 279:
			lengths[i] = 7
		default:
			lengths[i] = 8
		}
	}
	return lengths
}()

var fixedDistLengths = func() []uint8 {
	lengths := make([]uint8, distAlphabetSize)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}()

// fixedLitLenTree and fixedDistTree are built once and reused by every
// fixed block in the process; they hold no per-stream state.
var fixedLitLenTree, fixedErrLitLen = huffman.New(fixedLitLenLengths, translateLitLen)
var fixedDistTree, fixedErrDist = huffman.New(fixedDistLengths, translateDistance)

func init() {
	if fixedErrLitLen != nil {
		panic("deflate: fixed litlen table is malformed: " + fixedErrLitLen.Error())
	}
	if fixedErrDist != nil {
		panic("deflate: fixed distance table is malformed: " + fixedErrDist.Error())
	}
}

// codeLengthOrder is the order HCLEN's 3-bit lengths are transmitted in,
// RFC 1951 §3.2.7: the code-length alphabet's own symbols are permuted
// so that the most commonly needed ones (tree structure, repeat codes)
// come first and trailing zero lengths can be omitted.
var codeLengthOrder = [19]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// readDynamicTrees parses a type 10 (dynamic Huffman) block header: the
// HLIT/HDIST/HCLEN counts, the code-length alphabet itself, and then the
// RLE-compressed length vectors for the litlen and distance alphabets.
func readDynamicTrees(br *bitreader.Reader) (*huffman.Table[LitLenToken], *huffman.Table[DistanceToken], error) {
	hlitSeq, err := br.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitSeq.Bits) + 257

	hdistSeq, err := br.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdist := int(hdistSeq.Bits) + 1

	hclenSeq, err := br.ReadBits(4)
	if err != nil {
		return nil, nil, err
	}
	hclen := int(hclenSeq.Bits) + 4

	var codeLengthLengths [19]uint8
	for i := 0; i < hclen; i++ {
		seq, err := br.ReadBits(3)
		if err != nil {
			return nil, nil, err
		}
		codeLengthLengths[codeLengthOrder[i]] = uint8(seq.Bits)
	}

	codeLengthTree, err := huffman.New(codeLengthLengths[:], translateTreeCode)
	if err != nil {
		return nil, nil, err
	}

	lengths := make([]uint8, 0, hlit+hdist)
	for len(lengths) < hlit+hdist {
		tok, err := codeLengthTree.ReadSymbol(br)
		if err != nil {
			return nil, nil, err
		}
		switch tok.kind {
		case treeCodeLength:
			lengths = append(lengths, tok.length)
		case treeCodeCopyPrev:
			if len(lengths) == 0 {
				return nil, nil, gzerr.New(gzerr.DistanceCodeButNoHistory, "copy-previous code with no preceding length")
			}
			seq, err := br.ReadBits(2)
			if err != nil {
				return nil, nil, err
			}
			repeat := int(seq.Bits) + 3
			last := lengths[len(lengths)-1]
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, last)
			}
		case treeCodeRepeatZero:
			seq, err := br.ReadBits(uint(tok.extraBits))
			if err != nil {
				return nil, nil, err
			}
			repeat := int(tok.base) + int(seq.Bits)
			for i := 0; i < repeat; i++ {
				lengths = append(lengths, 0)
			}
		}
	}
	if len(lengths) != hlit+hdist {
		return nil, nil, gzerr.New(gzerr.InvalidHuffmanLengths, "code length run overshot HLIT+HDIST")
	}

	litLenTree, err := huffman.New(lengths[:hlit], translateLitLen)
	if err != nil {
		return nil, nil, err
	}
	distTree, err := huffman.New(lengths[hlit:], translateDistance)
	if err != nil {
		return nil, nil, err
	}
	return litLenTree, distTree, nil
}
