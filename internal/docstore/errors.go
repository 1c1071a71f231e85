package docstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every error returned for an unknown document ID.
var ErrNotFound = errors.New("document not found")

// NotFoundError reports an operation on a document ID that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document with ID %s not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for any *NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a missing document error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
