package discovery

import "fmt"

// EnumerationError represents a failure to list the scan root
type EnumerationError struct {
	Root  string
	Cause error
}

func (e *EnumerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enumeration error: cannot list %s: %v", e.Root, e.Cause)
	}
	return fmt.Sprintf("enumeration error: cannot list %s", e.Root)
}

func (e *EnumerationError) Unwrap() error {
	return e.Cause
}
