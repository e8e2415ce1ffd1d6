package scan

import "fmt"

// OutputError reports a failure to prepare or write one of the run's output
// files. It is always fatal.
type OutputError struct {
	Path  string
	Op    string
	Cause error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output error: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("output error: %s %s", e.Op, e.Path)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}
