package compass

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName   = errors.New("invalid name")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrPersistence   = errors.New("persistence failure")
)

// PersistenceError reports an I/O or decode failure against the backing file.
type PersistenceError struct {
	Op   string // "load", "save", "import"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
