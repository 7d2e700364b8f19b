package pipeline

import "errors"

var (
	// ErrInputNotFound is returned when the benchmark log does not exist
	ErrInputNotFound = errors.New("input not found")
	// ErrInputUnreadable is returned when the log cannot be decoded as UTF-8 text
	ErrInputUnreadable = errors.New("input unreadable")
	// ErrInputTooLarge is returned when the log exceeds the configured byte limit
	ErrInputTooLarge = errors.New("input too large")
	// ErrOutputDirMissing is returned when a category directory does not exist
	ErrOutputDirMissing = errors.New("output directory missing")
	// ErrInvalidDate is returned for date labels that would escape the category directory
	ErrInvalidDate = errors.New("invalid date label")
)
