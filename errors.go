package localsearch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/localsearch/index"
)

var (
	// ErrEmptyKey is returned when a document with an empty key is given to
	// a mutation.
	ErrEmptyKey = index.ErrEmptyKey

	// ErrIndexNotFound is returned when a service lookup names an
	// unregistered index.
	ErrIndexNotFound = errors.New("index not found")
)

// ErrIndexExists indicates a duplicate index registration.
type ErrIndexExists struct {
	ID string
}

func (e *ErrIndexExists) Error() string {
	return fmt.Sprintf("index already registered: %q", e.ID)
}
