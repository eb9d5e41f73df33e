package hxview

import (
	"errors"
	"fmt"
)

// Sentinel errors for view operations.
var (
	ErrViewDestroyed     = errors.New("hxview: view destroyed")
	ErrBehaviorDestroyed = errors.New("hxview: behavior destroyed")
	ErrInvalidDefinition = errors.New("hxview: invalid view definition")
	ErrUnknownView       = errors.New("hxview: unknown view definition")
	ErrNoElement         = errors.New("hxview: no element matches selector")
)

// ViewDestroyedError is returned when an operation that requires a live view
// is invoked after Destroy. It matches ErrViewDestroyed with errors.Is.
type ViewDestroyedError struct {
	CID string
}

func (e *ViewDestroyedError) Error() string {
	return fmt.Sprintf("hxview: view (cid: %q) has already been destroyed and cannot be used", e.CID)
}

// Is reports whether target is ErrViewDestroyed.
func (e *ViewDestroyedError) Is(target error) bool {
	return target == ErrViewDestroyed
}

// IsViewDestroyed checks if err is a destroyed-view error.
func IsViewDestroyed(err error) bool {
	return errors.Is(err, ErrViewDestroyed)
}

// IsInvalidDefinition checks if err came from loading a malformed definition.
func IsInvalidDefinition(err error) bool {
	return errors.Is(err, ErrInvalidDefinition)
}
