// Package bitreader adapts a byte-oriented source into the LSB-first bit
// stream that DEFLATE (RFC 1951) is packed in: within a byte, bit 0 is the
// least significant bit and is consumed first.
package bitreader

import (
	"io"
)

// ByteSource is the minimal pull-based source a Reader consumes. A
// *bufio.Reader satisfies it directly.
type ByteSource interface {
	io.ByteReader
}

// Sequence is a packed run of up to 16 bits, (bits, len) with bits < 2^len.
// The first bit consumed from the stream occupies position 0.
type Sequence struct {
	Bits uint16
	Len  uint8
}

// Concat places other in the higher bits of seq: concat(a,b).bits =
// (b.bits << a.len) | a.bits. Panics if the combined length exceeds 16,
// mirroring the precondition in the data model.
func (seq Sequence) Concat(other Sequence) Sequence {
	if int(seq.Len)+int(other.Len) > 16 {
		panic("bitreader: concatenated sequence exceeds 16 bits")
	}
	return Sequence{
		Bits: seq.Bits | (other.Bits << seq.Len),
		Len:  seq.Len + other.Len,
	}
}

// Reader reads bits, LSB-first, from an underlying ByteSource. Its Read*
// methods return an error instead of panicking so that EOF can be reported
// through the normal decompress error path.
type Reader struct {
	src    ByteSource
	bitBuf uint32
	nBits  uint
	nBytes int64
}

// New returns a Reader over src.
func New(src ByteSource) *Reader {
	return &Reader{src: src}
}

// BytesRead returns the number of bytes pulled from the underlying source
// so far, including any bits still buffered but not yet consumed by a
// ReadBits call.
func (r *Reader) BytesRead() int64 {
	return r.nBytes
}

// ReadBits consumes the next n (0..=16) bits and returns them as a Sequence
// whose Bits field packs them so the first bit consumed is bit 0.
func (r *Reader) ReadBits(n uint) (Sequence, error) {
	if n > 16 {
		panic("bitreader: ReadBits called with n > 16")
	}
	for r.nBits < n {
		b, err := r.src.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return Sequence{}, err
		}
		r.nBytes++
		r.bitBuf |= uint32(b) << r.nBits
		r.nBits += 8
	}
	mask := uint32(1)<<n - 1
	v := uint16(r.bitBuf & mask)
	r.bitBuf >>= n
	r.nBits -= n
	return Sequence{Bits: v, Len: uint8(n)}, nil
}

// ReadBit reads a single bit and reports whether it was set.
func (r *Reader) ReadBit() (bool, error) {
	seq, err := r.ReadBits(1)
	if err != nil {
		return false, err
	}
	return seq.Bits != 0, nil
}

// Align discards any bits buffered from a partially-consumed byte (they
// are lost, not returned) and hands back the underlying source so the
// caller can read whole bytes directly, e.g. for a stored block's LEN/NLEN
// header.
func (r *Reader) Align() ByteSource {
	r.bitBuf = 0
	r.nBits = 0
	return r.src
}
