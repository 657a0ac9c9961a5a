package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTraceSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	verboseTrace = false
	trace("decompressed %s", "member")
	if buf.Len() != 0 {
		t.Errorf("expected no log output when verboseTrace is false, got %q", buf.String())
	}
}

func TestTraceLogsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer log.SetOutput(os.Stderr)

	verboseTrace = true
	defer func() { verboseTrace = false }()
	trace("decompressed %s: %d bytes", "member", 42)
	if !strings.Contains(buf.String(), "decompressed member: 42 bytes") {
		t.Errorf("got %q, missing expected trace line", buf.String())
	}
}
