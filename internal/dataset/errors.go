package dataset

import "fmt"

// LoadError represents a fatal failure loading an input file: the file is
// missing, unreadable, unparseable as a whole, or lacks required columns.
// Individual malformed rows are not LoadErrors; they are skipped and counted.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
