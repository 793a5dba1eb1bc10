package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStorageIO  Kind = "storage_io"
)

type ValidationError struct {
	message string
}

type NotFoundError struct {
	resource string
	id       any
}

type ConflictError struct {
	message string
}

type StorageIOError struct {
	message string
	cause   error
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{resource: resource, id: id}
}

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{message: fmt.Sprintf(format, args...)}
}

func StorageIO(cause error, message string) *StorageIOError {
	return &StorageIOError{message: message, cause: cause}
}

func (e *ValidationError) Error() string { return e.message }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.resource, e.id)
}

func (e *ConflictError) Error() string { return e.message }

func (e *StorageIOError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.cause)
}

func (e *StorageIOError) Unwrap() error { return e.cause }

// KindOf reports the taxonomy bucket of err. Unknown errors count as storage failures.
func KindOf(err error) Kind {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		uniqueErr     *UniqueViolationError
		foreignErr    *ForeignKeyViolationError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &conflictErr), errors.As(err, &uniqueErr), errors.As(err, &foreignErr):
		return KindConflict
	default:
		return KindStorageIO
	}
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show to a caller. Storage failures are not
// detailed beyond their top-level message.
func Message(err error) string {
	var storageErr *StorageIOError
	if errors.As(err, &storageErr) {
		return storageErr.message
	}
	if KindOf(err) == KindStorageIO {
		return "internal storage error"
	}
	return err.Error()
}
