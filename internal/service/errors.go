package service

import "fmt"

// NotFoundError covers both missing entities and authorization-by-obscurity
// failures (e.g. booking your own item).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError is a business-rule violation: invalid time range,
// unavailable item, already approved booking, bad pagination.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func badRequestf(format string, args ...any) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is a uniqueness or concurrent-update conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError is a malformed, missing or out-of-range field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// UnknownStateError carries an unrecognized booking state filter token.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return "Unknown state: " + e.State
}

func validatePage(from, size int) error {
	if from < 0 || size <= 0 {
		return badRequestf("'size' must be > 0 and 'from' must be >= 0. size = %d, from = %d", size, from)
	}
	return nil
}

// pageOffset snaps the offset to a page boundary, matching page-based
// pagination: from=3, size=2 lands on page 1, offset 2.
func pageOffset(from, size int) int {
	return (from / size) * size
}
