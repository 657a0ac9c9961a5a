package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cenkalti/backoff/v3"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

// openSource opens name for reading: an http(s) URL, an s3:// object, or
// a local path, returning its size (zero or negative if unknown) and a
// cleanup func.
// Remote opens are retried with exponential backoff, since a transient
// network failure should not abort the whole cat/inspect run the way a
// malformed gzip stream does.
func openSource(ctx context.Context, name string) (io.Reader, int64, func() error, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		var resp *http.Response
		op := func() error {
			var err error
			resp, err = http.Get(name)
			return err
		}
		if err := backoff.Retry(op, retryPolicy()); err != nil {
			return nil, 0, nil, fmt.Errorf("fetching %s: %w", name, err)
		}
		return resp.Body, resp.ContentLength, resp.Body.Close, nil
	}

	var (
		size   int64
		reader io.Reader
		closer func() error
	)
	op := func() error {
		info, err := file.Stat(ctx, name)
		if err != nil {
			return err
		}
		size = info.Size()
		fh, err := file.Open(ctx, name)
		if err != nil {
			return err
		}
		reader = fh.Reader(ctx)
		closer = func() error { return fh.Close(ctx) }
		return nil
	}
	var err error
	if strings.HasPrefix(name, "s3://") {
		err = backoff.Retry(op, retryPolicy())
	} else {
		err = op()
	}
	if err != nil {
		return nil, 0, nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return reader, size, closer, nil
}

// createSink opens name for writing, or returns os.Stdout if name is empty.
func createSink(ctx context.Context, name string) (io.Writer, func() error, error) {
	if len(name) == 0 {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), func() error { return f.Close(ctx) }, nil
}

// retryPolicy bounds remote-open retries to a handful of short attempts;
// a gzip source that is still unreachable after this long is treated as
// a hard failure rather than retried indefinitely.
func retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	return b
}
