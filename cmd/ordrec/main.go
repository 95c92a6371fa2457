package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/ordrec/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		code := cli.GetExitCode(err)
		// Commands report their own errors; cobra usage and flag errors do not.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}
