package main

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"
)

// progressWriter wraps w so that every Write also advances a byte-count
// progress bar, used while streaming a single large member to a file (a
// terminal already shows scrolling output, so the bar is skipped there).
type progressWriter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.bar.Add(n)
	}
	return n, err
}

// wrapWithProgress returns w unchanged unless a progress bar was
// requested and makes sense for the current output: size must be known
// and stdout must not be an interactive terminal the bar would garble.
func wrapWithProgress(w io.Writer, size int64, want bool) io.Writer {
	if !want || size <= 0 {
		return w
	}
	if terminal.IsTerminal(int(os.Stdout.Fd())) {
		return w
	}
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(true))
	return &progressWriter{w: w, bar: bar}
}
