// Command gunzip decompresses gzip streams from local files, HTTP(S)
// URLs or S3 objects, with cat and inspect subcommands.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	root := &cobra.Command{
		Use:   "gunzip",
		Short: "decompress gzip streams from local files, http(s) or s3",
	}
	root.PersistentFlags().BoolVar(&verboseTrace, "verbose", false, "log per-source trace information")
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	root.AddCommand(newCatCommand(), newInspectCommand())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
