package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	gzip "github.com/coreward/gzdecode"
)

func newCatCommand() *cobra.Command {
	var (
		output   string
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "cat [sources...]",
		Short: "decompress gzip sources to stdout or a file",
		Long:  "decompress one or more gzip sources, local, http(s) or s3, concatenating their contents the way gzip -c does. With no sources, reads stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd.Context(), args, output, progress)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or s3 path, omit for stdout")
	cmd.Flags().BoolVar(&progress, "progress", true, "display a progress bar when output is not an interactive terminal")
	return cmd
}

func runCat(ctx context.Context, args []string, output string, progress bool) error {
	if len(args) == 0 {
		return catOne(ctx, os.Stdin, 0, output, progress)
	}
	if len(args) == 1 {
		trace("opening %s", args[0])
		rd, size, cleanup, err := openSource(ctx, args[0])
		if err != nil {
			return err
		}
		defer cleanup()
		return catOne(ctx, rd, size, output, progress)
	}

	// Multiple independent sources decode concurrently; each gets its own
	// serial Decompress call and its own slice of the output, joined back
	// together in argument order once every goroutine has finished.
	results := make([][]byte, len(args))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			trace("opening %s", name)
			rd, _, cleanup, err := openSource(gctx, name)
			if err != nil {
				return err
			}
			defer cleanup()
			var buf bytes.Buffer
			if err := gzip.Decompress(rd, &buf); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			trace("decompressed %s: %d bytes", name, buf.Len())
			results[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sink, cleanup, err := createSink(ctx, output)
	if err != nil {
		return err
	}
	defer cleanup()
	for _, b := range results {
		if _, err := sink.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func catOne(ctx context.Context, rd io.Reader, size int64, output string, progress bool) error {
	sink, cleanup, err := createSink(ctx, output)
	if err != nil {
		return err
	}
	defer cleanup()
	sink = wrapWithProgress(sink, size, progress)
	return gzip.Decompress(rd, sink)
}
