// Package gzip decompresses RFC 1952 gzip streams carrying RFC 1951
// DEFLATE payloads. It exists independently of the standard library's
// compress/gzip to expose the bit-level and container-level structure
// of the format rather than hide it behind a single black-box Reader.
package gzip

import (
	"bufio"
	"io"

	"github.com/coreward/gzdecode/internal/bitreader"
	"github.com/coreward/gzdecode/internal/deflate"
	"github.com/coreward/gzdecode/internal/gzerr"
	"github.com/coreward/gzdecode/internal/gzipcontainer"
	"github.com/coreward/gzdecode/internal/window"
)

// A FormatError reports that a stream violates the gzip or DEFLATE
// format. Use errors.As to recover one from an error returned by
// Decompress or a Reader.
type FormatError = gzerr.FormatError

// MemberInfo is the header metadata of one gzip member, surfaced to
// callers that want to inspect a stream's headers. Reaching each later
// member still requires decompressing the bodies before it.
type MemberInfo struct {
	ModificationTime uint32
	OS               byte
	Name             string
	Comment          string
	IsText           bool
}

type options struct {
	onMember func(MemberInfo)
}

// ReaderOption configures NewReader and Decompress.
type ReaderOption func(*options)

// WithMemberCallback calls fn with each member's header metadata as it
// is parsed, before that member's body is decompressed. It is how a
// caller inspects member names/comments/timestamps without writing a
// separate parser, the way cmd/gunzip's "inspect" subcommand does.
func WithMemberCallback(fn func(MemberInfo)) ReaderOption {
	return func(o *options) {
		o.onMember = fn
	}
}

// Decompress reads one or more concatenated gzip members from source
// and writes their decompressed, concatenated payload to sink. Every
// member's CRC-32 and ISIZE trailer is validated against what was
// actually produced; the first violation aborts the whole call, per the
// propagation policy of a single-pass, non-recovering decoder.
func Decompress(source io.Reader, sink io.Writer, opts ...ReaderOption) error {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}

	br := bufio.NewReader(source)
	for {
		header, err := gzipcontainer.ReadMemberHeader(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if o.onMember != nil {
			o.onMember(MemberInfo{
				ModificationTime: header.ModificationTime,
				OS:               header.OS,
				Name:             header.Name,
				Comment:          header.Comment,
				IsText:           header.Flags.IsText,
			})
		}

		win := window.New(sink)
		bitR := bitreader.New(br)
		if err := deflate.Decode(bitR, win); err != nil {
			return err
		}
		bitR.Align()

		footer, err := gzipcontainer.ReadMemberFooter(br)
		if err != nil {
			return err
		}
		if footer.ISIZE != uint32(win.BytesEmitted()) {
			return gzerr.New(gzerr.LengthMismatch, "")
		}
		if footer.CRC32 != win.CRC32() {
			return gzerr.New(gzerr.CRC32Mismatch, "")
		}
	}
}

// NewReader returns an io.Reader over the decompressed contents of r,
// which must hold one or more concatenated gzip members. Decompression
// runs in a single goroutine against an io.Pipe: CloseWithError delivers
// a decode failure to the consumer as the error from Read instead of a
// bare io.EOF.
func NewReader(r io.Reader, opts ...ReaderOption) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(Decompress(r, pw, opts...))
	}()
	return pr
}
