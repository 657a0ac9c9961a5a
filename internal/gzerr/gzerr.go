// Package gzerr defines the error taxonomy shared by the layers of the
// decoder (Huffman tables, DEFLATE engine, gzip container): a typed,
// errors.Is-compatible kind in place of ad hoc error strings. Truncated
// input is reported as io.ErrUnexpectedEOF, not through this package.
package gzerr

import "fmt"

// Kind identifies why a stream was rejected as malformed.
type Kind int

const (
	_ Kind = iota
	UnexpectedEOF
	BadMagic
	UnsupportedCompressionMethod
	ReservedFlagSet
	HeaderCRCMismatch
	BadBlockType
	StoredLengthMismatch
	InvalidHuffmanLengths
	InvalidSymbol
	InvalidDistance
	DistanceCodeButNoHistory
	LengthMismatch
	CRC32Mismatch
	WriteShort
	WriteIO
)

var kindNames = map[Kind]string{
	UnexpectedEOF:                "unexpected end of file",
	BadMagic:                     "bad magic number",
	UnsupportedCompressionMethod: "unsupported compression method",
	ReservedFlagSet:              "reserved flag bit set",
	HeaderCRCMismatch:            "header crc16 mismatch",
	BadBlockType:                 "bad block type",
	StoredLengthMismatch:         "stored block length mismatch",
	InvalidHuffmanLengths:        "invalid huffman code lengths",
	InvalidSymbol:                "invalid symbol",
	InvalidDistance:              "invalid back-reference distance",
	DistanceCodeButNoHistory:     "copy-previous code with no preceding code length",
	LengthMismatch:               "footer length mismatch",
	CRC32Mismatch:                "footer crc32 mismatch",
	WriteShort:                   "sink accepted fewer bytes than requested",
	WriteIO:                      "sink write failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// FormatError reports that a stream violates the gzip/DEFLATE format. It
// carries a Kind so callers can match on errors.Is/errors.As instead of
// parsing message text.
type FormatError struct {
	Kind   Kind
	Detail string
}

func New(kind Kind, detail string) *FormatError {
	return &FormatError{Kind: kind, Detail: detail}
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return "gzip: " + e.Kind.String()
	}
	return fmt.Sprintf("gzip: %s: %s", e.Kind, e.Detail)
}

// Is reports whether target is a *FormatError with the same Kind, so
// callers can write errors.Is(err, gzerr.New(gzerr.BadMagic, "")).
func (e *FormatError) Is(target error) bool {
	other, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
