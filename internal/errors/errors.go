//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// ValidationError indicates a task field failed validation.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError indicates no task has the given ID.
type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %d", e.ID)
}

// CorruptStateError indicates the tasks file exists but cannot be trusted.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt tasks file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e CorruptStateError) Unwrap() error {
	return e.Err
}
