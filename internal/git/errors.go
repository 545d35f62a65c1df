package git

import (
	"errors"
	"fmt"
)

var (
	// ErrNotARepository is returned when the analyzed directory is not inside a Git repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNotFound is returned when a path does not exist at the requested commit.
	ErrNotFound = errors.New("path not found at commit")
	// ErrInvalidRevision is returned for a revision that git would read as an option.
	ErrInvalidRevision = errors.New("invalid revision")
)

// RepositoryError wraps a failed repository operation.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repoError(op string, err error) error {
	return &RepositoryError{Op: op, Err: err}
}
