package extract

import "fmt"

// ExtractError represents a failure to open, parse, or read a document.
// Path is kept for callers; it is left out of the message because the
// error log already prefixes every line with it.
type ExtractError struct {
	Path  string
	Op    string
	Cause error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
