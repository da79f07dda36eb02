package storage

import "fmt"

// NotFoundError is returned when no task exists for the given id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("task %s not found", e.ID) }

// NotFound marks the error for matching at the HTTP layer.
func (NotFoundError) NotFound() {}

// ValidationError is returned when a create or update request carries
// unacceptable input.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// InvalidInput marks the error for matching at the HTTP layer.
func (ValidationError) InvalidInput() {}
