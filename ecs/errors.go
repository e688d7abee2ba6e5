package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnregisteredComponent is returned by type-erased insertion paths when the
	// component type has neither a storage nor a registered factory.
	ErrUnregisteredComponent = errors.New("ecs: component type not registered")

	// ErrNoSuchEntity is returned when an entity id was not allocated by the world.
	ErrNoSuchEntity = errors.New("ecs: no such entity")
)

// BorrowConflictError reports an attempt to borrow a storage or resource in a way
// that conflicts with a borrow that is still live. It is raised with panic at the
// point of the second borrow.
type BorrowConflictError struct {
	Kind      string // "component" or "resource"
	Type      reflect.Type
	Requested Access
	Held      Access
	Holders   int
}

func (e *BorrowConflictError) Error() string {
	return fmt.Sprintf("ecs: cannot borrow %s %s as %s: already borrowed as %s by %d live borrow(s)",
		e.Kind, e.Type, e.Requested, e.Held, e.Holders)
}

// MissingResourceError reports that a system required a resource that was never inserted.
type MissingResourceError struct {
	Type reflect.Type
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("ecs: required resource %s is not present in the world", e.Type)
}

// SystemError is returned by the Scheduler when a system panics. The frame in which
// it happened is abandoned: no further systems run and pending commands are dropped.
type SystemError struct {
	System string
	Stage  Stage
	Frame  uint64
	Cause  any
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("ecs: system %s failed in stage %s (frame %d): %v", e.System, e.Stage, e.Frame, e.Cause)
}

// Unwrap exposes the panic value when it is an error.
func (e *SystemError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
