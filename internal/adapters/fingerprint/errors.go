package fingerprint

import (
	"errors"
	"fmt"
)

var (
	// ErrRepositoryClosed indicates the repository has been closed.
	ErrRepositoryClosed = errors.New("repository is closed")
)

// DatabaseError wraps database-specific errors with context.
type DatabaseError struct {
	Op  string // operation that failed (e.g. "open", "insert")
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("oui database %s failed: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
