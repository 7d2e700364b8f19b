package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/benchsplit/internal/cli"
)

func main() {
	err := cli.Execute()

	// Usage errors have already printed the usage line
	var usageErr *cli.UsageError
	if err != nil && !errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(cli.ExitCode(err))
}
