// Package deflate implements RFC 1951 DEFLATE decompression: block
// header dispatch, stored/fixed/dynamic blocks, and the litlen/distance
// token stream that drives a window.Sink's literal and back-reference
// output.
package deflate

import (
	"encoding/binary"
	"io"

	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/gzerr"
	"github.com/coreward/gzdecode/internal/window"
)

// BlockType is DEFLATE's 2-bit BTYPE field (RFC 1951 §3.2.3).
type BlockType uint8

const (
	BlockStored BlockType = iota
	BlockFixed
	BlockDynamic
)

// BlockHeader is the 3-bit header (BFINAL, BTYPE) every block starts with.
type BlockHeader struct {
	Final bool
	Type  BlockType
}

func readBlockHeader(br *bitreader.Reader) (BlockHeader, error) {
	finalSeq, err := br.ReadBits(1)
	if err != nil {
		return BlockHeader{}, err
	}
	typeSeq, err := br.ReadBits(2)
	if err != nil {
		return BlockHeader{}, err
	}
	switch typeSeq.Bits {
	case 0:
		return BlockHeader{Final: finalSeq.Bits != 0, Type: BlockStored}, nil
	case 1:
		return BlockHeader{Final: finalSeq.Bits != 0, Type: BlockFixed}, nil
	case 2:
		return BlockHeader{Final: finalSeq.Bits != 0, Type: BlockDynamic}, nil
	default:
		return BlockHeader{}, gzerr.New(gzerr.BadBlockType, "BTYPE 3 is reserved")
	}
}

// Decode reads a full DEFLATE stream (one or more blocks, the last with
// BFINAL set) from br and emits its decompressed bytes to sink.
func Decode(br *bitreader.Reader, sink *window.Sink) error {
	for {
		header, err := readBlockHeader(br)
		if err != nil {
			return err
		}
		if err := decodeBlock(header, br, sink); err != nil {
			return err
		}
		if header.Final {
			return nil
		}
	}
}

func decodeBlock(header BlockHeader, br *bitreader.Reader, sink *window.Sink) error {
	if header.Type == BlockStored {
		return decodeStoredBlock(br, sink)
	}

	litLenTree, distTree := fixedLitLenTree, fixedDistTree
	if header.Type == BlockDynamic {
		var err error
		litLenTree, distTree, err = readDynamicTrees(br)
		if err != nil {
			return err
		}
	}
	return decodeCompressedBlock(litLenTree, distTree, br, sink)
}

func decodeStoredBlock(br *bitreader.Reader, sink *window.Sink) error {
	src := br.Align()
	var lenBuf [4]byte
	if err := readFull(src, lenBuf[:]); err != nil {
		return err
	}
	length := binary.LittleEndian.Uint16(lenBuf[0:2])
	nlength := binary.LittleEndian.Uint16(lenBuf[2:4])
	if length != ^nlength {
		return gzerr.New(gzerr.StoredLengthMismatch, "LEN does not match one's complement of NLEN")
	}

	remaining := int(length)
	buf := make([]byte, 0, 4096)
	for remaining > 0 {
		chunk := cap(buf)
		if chunk > remaining {
			chunk = remaining
		}
		buf = buf[:chunk]
		if err := readFull(src, buf); err != nil {
			return err
		}
		if err := sink.Emit(buf); err != nil {
			return wrapSinkError(err)
		}
		remaining -= chunk
	}
	return nil
}

func readFull(src bitreader.ByteSource, p []byte) error {
	for i := range p {
		b, err := src.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		p[i] = b
	}
	return nil
}

type litLenTable interface {
	ReadSymbol(br *bitreader.Reader) (LitLenToken, error)
}

type distTable interface {
	ReadSymbol(br *bitreader.Reader) (DistanceToken, error)
}

func decodeCompressedBlock(litLenTree litLenTable, distTree distTable, br *bitreader.Reader, sink *window.Sink) error {
	for {
		tok, err := litLenTree.ReadSymbol(br)
		if err != nil {
			return err
		}
		switch {
		case tok.IsEndOfBlock():
			return nil
		case tok.IsLiteral():
			if err := sink.Emit([]byte{tok.Literal()}); err != nil {
				return wrapSinkError(err)
			}
		case tok.IsLength():
			extraSeq, err := br.ReadBits(uint(tok.ExtraBits()))
			if err != nil {
				return err
			}
			length := int(tok.Base()) + int(extraSeq.Bits)

			distTok, err := distTree.ReadSymbol(br)
			if err != nil {
				return err
			}
			if distTok.IsReserved() {
				return gzerr.New(gzerr.InvalidSymbol, "distance code 30 or 31 is reserved")
			}
			distExtraSeq, err := br.ReadBits(uint(distTok.ExtraBits()))
			if err != nil {
				return err
			}
			distance := int(distTok.Base()) + int(distExtraSeq.Bits)

			if err := sink.BackReference(distance, length); err != nil {
				return wrapDistanceError(err)
			}
		default: // litLenReserved
			return gzerr.New(gzerr.InvalidSymbol, "litlen code 286 or 287 is reserved")
		}
	}
}

func wrapSinkError(err error) error {
	if err == io.ErrShortWrite {
		return gzerr.New(gzerr.WriteShort, err.Error())
	}
	return gzerr.New(gzerr.WriteIO, err.Error())
}

func wrapDistanceError(err error) error {
	if _, ok := err.(*window.ErrBadDistance); ok {
		return gzerr.New(gzerr.InvalidDistance, err.Error())
	}
	return wrapSinkError(err)
}
