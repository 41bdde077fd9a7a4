package cmd

import (
	"fmt"
	"os"
)

// Exitf prints a fatal error to stderr and exits with status 1. Command
// mains use it for failures outside the run function, where there is no
// caller left to return an error to.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
