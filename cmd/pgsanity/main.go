package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/LittleBiggler/pgsanity/internal/cli"
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgsanity.ExitPanic)
		}
	}()

	if os.Getenv("PGSANITY_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(pgsanity.ExitCodeForError(err))
	}
}
