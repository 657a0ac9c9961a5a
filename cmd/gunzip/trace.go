package main

import "log"

// verboseTrace gates per-source logging behind a single flag rather than
// always emitting it, so normal runs stay quiet.
var verboseTrace = false

func trace(format string, args ...interface{}) {
	if verboseTrace {
		log.Printf(format, args...)
	}
}
