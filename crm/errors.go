package crm

import "fmt"

// ValidationError blocks a submission outright; nothing is partially saved.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// NotFoundError means an update targeted an unknown lead id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lead %s not found", e.ID)
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// TransientError wraps a network or persistence failure. Reads recover by
// falling back to the demo dataset; writes surface the message and keep the
// user's in-progress edits so they can retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransientError(err error) bool {
	_, ok := err.(*TransientError)
	return ok
}
