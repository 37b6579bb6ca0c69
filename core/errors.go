package core

import (
	"errors"
	"fmt"
)

// ErrQuit is returned by input sources when the player asks to leave
var ErrQuit = errors.New("quit requested")

// UnknownTypeError reports a type tag that was never registered
type UnknownTypeError struct {
	Tag TypeTag
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entity type %s", e.Tag)
}

// InvalidEntityError reports an out-of-range or already removed identity
type InvalidEntityError struct {
	ID     int
	Reason string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity %d: %s", e.ID, e.Reason)
}

// StaleReferenceError reports a handle whose slot was freed or reused by another entity
type StaleReferenceError struct {
	Ref Ref
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("stale entity reference %s", e.Ref)
}

// Unwrap lets errors.As match a stale handle as an invalid entity too
func (e *StaleReferenceError) Unwrap() error {
	return &InvalidEntityError{ID: e.Ref.Index, Reason: "stale reference"}
}
