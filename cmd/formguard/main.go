// Command formguard validates HTML forms from the command line and serves
// them over HTTP with live validation.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Set at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and maps the outcome to an exit code:
// 0 on success, 1 when a form is invalid, 2 on any other failure.
func run(args []string) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalidForm):
		return 1
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 2
	}
}
