// Package gzipcontainer parses the RFC 1952 gzip container that wraps a
// DEFLATE payload: one member header, the compressed body (handled by
// package deflate), and a CRC32/ISIZE footer, repeated for as many
// members as are concatenated in the stream.
package gzipcontainer

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/coreward/gzdecode/internal/gzerr"
)

const (
	id1          = 0x1f
	id2          = 0x8b
	cmDeflate    = 8
	flagText     = 1 << 0
	flagHdrCRC   = 1 << 1
	flagExtra    = 1 << 2
	flagName     = 1 << 3
	flagComment  = 1 << 4
	flagReserved = 0b11100000
)

// MemberFlags is the gzip header's FLG byte, decoded bit by bit (RFC
// 1952 §2.3.1).
type MemberFlags struct {
	IsText     bool
	HasCRC     bool
	HasExtra   bool
	HasName    bool
	HasComment bool
}

func decodeFlags(b byte) (MemberFlags, error) {
	if b&flagReserved != 0 {
		return MemberFlags{}, gzerr.New(gzerr.ReservedFlagSet, "")
	}
	return MemberFlags{
		IsText:     b&flagText != 0,
		HasCRC:     b&flagHdrCRC != 0,
		HasExtra:   b&flagExtra != 0,
		HasName:    b&flagName != 0,
		HasComment: b&flagComment != 0,
	}, nil
}

// MemberHeader is one gzip member's fixed and optional header fields.
type MemberHeader struct {
	ModificationTime uint32
	ExtraFlags       byte
	OS               byte
	Extra            []byte
	Name             string
	Comment          string
	Flags            MemberFlags
}

// ReadMemberHeader reads and validates one member's header from r,
// including its optional FHCRC check. It returns io.EOF (not wrapped) if
// r is already at a clean end of stream before any byte of a new member
// is read, so the top-level driver can distinguish "no more members"
// from a truncated one.
func ReadMemberHeader(r *bufio.Reader) (MemberHeader, error) {
	crcState := crc32.NewIEEE()

	first, err := r.ReadByte()
	if err != nil {
		return MemberHeader{}, err
	}
	if first != id1 {
		return MemberHeader{}, gzerr.New(gzerr.BadMagic, "")
	}
	crcState.Write([]byte{first})

	second, err := readByte(r)
	if err != nil {
		return MemberHeader{}, err
	}
	if second != id2 {
		return MemberHeader{}, gzerr.New(gzerr.BadMagic, "")
	}
	crcState.Write([]byte{second})

	cm, err := readByteCRC(r, crcState)
	if err != nil {
		return MemberHeader{}, err
	}
	if cm != cmDeflate {
		return MemberHeader{}, gzerr.New(gzerr.UnsupportedCompressionMethod, "")
	}

	flagByte, err := readByteCRC(r, crcState)
	if err != nil {
		return MemberHeader{}, err
	}
	flags, err := decodeFlags(flagByte)
	if err != nil {
		return MemberHeader{}, err
	}

	var mtimeBuf [4]byte
	if err := readFullCRC(r, crcState, mtimeBuf[:]); err != nil {
		return MemberHeader{}, err
	}
	mtime := binary.LittleEndian.Uint32(mtimeBuf[:])

	xfl, err := readByteCRC(r, crcState)
	if err != nil {
		return MemberHeader{}, err
	}
	os, err := readByteCRC(r, crcState)
	if err != nil {
		return MemberHeader{}, err
	}

	header := MemberHeader{
		ModificationTime: mtime,
		ExtraFlags:       xfl,
		OS:               os,
		Flags:            flags,
	}

	if flags.HasExtra {
		var xlenBuf [2]byte
		if err := readFullCRC(r, crcState, xlenBuf[:]); err != nil {
			return MemberHeader{}, err
		}
		xlen := binary.LittleEndian.Uint16(xlenBuf[:])
		extra := make([]byte, xlen)
		if err := readFullCRC(r, crcState, extra); err != nil {
			return MemberHeader{}, err
		}
		header.Extra = extra
	}

	if flags.HasName {
		name, err := readCStringCRC(r, crcState)
		if err != nil {
			return MemberHeader{}, err
		}
		header.Name = name
	}

	if flags.HasComment {
		comment, err := readCStringCRC(r, crcState)
		if err != nil {
			return MemberHeader{}, err
		}
		header.Comment = comment
	}

	if flags.HasCRC {
		var wantBuf [2]byte
		if err := readFull(r, wantBuf[:]); err != nil {
			return MemberHeader{}, err
		}
		want := binary.LittleEndian.Uint16(wantBuf[:])
		got := uint16(crcState.Sum32() & 0xffff)
		if got != want {
			return MemberHeader{}, gzerr.New(gzerr.HeaderCRCMismatch, "")
		}
	}

	return header, nil
}

// MemberFooter is the trailing CRC32 and ISIZE fields (RFC 1952 §2.3.1).
type MemberFooter struct {
	CRC32 uint32
	ISIZE uint32
}

// ReadMemberFooter reads the 8-byte footer following a member's
// compressed body.
func ReadMemberFooter(r *bufio.Reader) (MemberFooter, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return MemberFooter{}, err
	}
	return MemberFooter{
		CRC32: binary.LittleEndian.Uint32(buf[0:4]),
		ISIZE: binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return b, nil
}

func readFull(r io.Reader, p []byte) error {
	_, err := io.ReadFull(r, p)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readByteCRC, readFullCRC and readCStringCRC fold every header byte
// they consume into crcState as they go, so the FHCRC check at the end
// of the header needs no second pass over the bytes already read.
func readByteCRC(r *bufio.Reader, crcState hashWriter) (byte, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, err
	}
	crcState.Write([]byte{b})
	return b, nil
}

func readFullCRC(r *bufio.Reader, crcState hashWriter, p []byte) error {
	if err := readFull(r, p); err != nil {
		return err
	}
	crcState.Write(p)
	return nil
}

func readCStringCRC(r *bufio.Reader, crcState hashWriter) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	crcState.Write([]byte(s))
	return s[:len(s)-1], nil
}

// hashWriter is the subset of hash.Hash32 the CRC-tracking readers need.
type hashWriter interface {
	Write(p []byte) (int, error)
}
