package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/spf13/cobra"

	gzip "github.com/coreward/gzdecode"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [sources...]",
		Short: "print gzip member headers, decoding and discarding their bodies",
		Long:  "print each member's name, comment, modification time, OS and text flag without writing any decompressed bytes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := inspectOne(cmd.Context(), name); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			return nil
		},
	}
	return cmd
}

func inspectOne(ctx context.Context, name string) error {
	rd, _, cleanup, err := openSource(ctx, name)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("=== %s ===\n", name)
	err = gzip.Decompress(rd, ioutil.Discard, gzip.WithMemberCallback(func(m gzip.MemberInfo) {
		mtime := "unset"
		if m.ModificationTime != 0 {
			mtime = time.Unix(int64(m.ModificationTime), 0).UTC().Format(time.RFC3339)
		}
		fmt.Printf("name=%-20q mtime=%-22s os=%#02x text=%v comment=%q\n",
			m.Name, mtime, m.OS, m.IsText, m.Comment)
	}))
	return err
}
