//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"errors"
	"io"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{
			name: "formats field, value and reason",
			err:  ValidationError{Field: "priority", Value: "Urgent", Reason: "must be one of High, Medium, Low"},
			want: `invalid priority "Urgent": must be one of High, Medium, Low`,
		},
		{
			name: "omits empty value",
			err:  ValidationError{Field: "title", Reason: "must not be empty"},
			want: "invalid title: must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError{ID: 99}
	want := "task not found: 99"
	if got := err.Error(); got != want {
		t.Errorf("NotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestCorruptStateError(t *testing.T) {
	err := CorruptStateError{Path: "/tmp/tasks.json", Err: io.ErrUnexpectedEOF}
	want := "corrupt tasks file /tmp/tasks.json: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("CorruptStateError.Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("CorruptStateError should unwrap to its cause")
	}

	var target CorruptStateError
	if !errors.As(error(err), &target) || target.Path != "/tmp/tasks.json" {
		t.Errorf("errors.As failed, got %+v", target)
	}
}
