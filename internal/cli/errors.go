package cli

import "errors"

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 1
)

const usageLine = "Usage: benchsplit <input_filename> <date>"

// UsageError reports a malformed invocation. The usage text has already
// been printed when it is returned.
type UsageError struct {
	Message  string
	ExitCode int
}

func (e *UsageError) Error() string {
	return e.Message
}

// ExitCode maps the result of Execute to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return usageErr.ExitCode
	}
	return ExitFailure
}
