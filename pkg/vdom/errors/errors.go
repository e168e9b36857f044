// Package errors defines the fatal error taxonomy of the reconciler
// core. Every condition here is fatal at the reconciler boundary: the
// core does not attempt to recover from any of them (spec.md §7).
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is against these; the concrete *Error
// types below wrap them via Unwrap, except RendererError, whose Unwrap
// returns its Cause.
var (
	// ErrDuplicateIdentity is the "dynamic components must be given
	// keys" fatal condition: two siblings shared a (location, key)
	// identity.
	ErrDuplicateIdentity = errors.New("vdom: dynamic components must be given keys")

	// ErrMissingNativeType is returned when Mount's native_parent View
	// does not report a NativeType.
	ErrMissingNativeType = errors.New("vdom: mount root has no native type")

	// ErrAliasingBorrow is the fatal condition raised when the tree
	// container is asked for two disjoint mutable references to the
	// same node.
	ErrAliasingBorrow = errors.New("vdom: aliasing mutable borrow of the same node")

	// ErrRendererFailure wraps a renderer-reported failure (e.g. a
	// platform rejecting an attribute value), propagated as fatal.
	ErrRendererFailure = errors.New("vdom: renderer call failed")
)

// DuplicateIdentityError carries the colliding identity's location and
// optional key for diagnostics.
type DuplicateIdentityError struct {
	Line, Column int
	Key          string
	HasKey       bool
}

func (e *DuplicateIdentityError) Error() string {
	if e.HasKey {
		return fmt.Sprintf("dynamic components must be given keys: duplicate identity at %d:%d#%s", e.Line, e.Column, e.Key)
	}
	return fmt.Sprintf("dynamic components must be given keys: duplicate identity at %d:%d", e.Line, e.Column)
}

func (e *DuplicateIdentityError) Unwrap() error { return ErrDuplicateIdentity }

// MissingNativeTypeError names the View that failed to report a
// native type where one was required.
type MissingNativeTypeError struct {
	What string
}

func (e *MissingNativeTypeError) Error() string {
	return fmt.Sprintf("vdom: %s has no native type", e.What)
}

func (e *MissingNativeTypeError) Unwrap() error { return ErrMissingNativeType }

// AliasingBorrowError names the node id involved in a disjoint-borrow
// violation.
type AliasingBorrowError struct {
	NodeID int
}

func (e *AliasingBorrowError) Error() string {
	return fmt.Sprintf("vdom: aliasing mutable borrow of node %d", e.NodeID)
}

func (e *AliasingBorrowError) Unwrap() error { return ErrAliasingBorrow }

// RendererError wraps a failure reported by a Renderer method.
type RendererError struct {
	Op    string
	Cause error
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("vdom: renderer op %q failed: %v", e.Op, e.Cause)
}

func (e *RendererError) Unwrap() error { return e.Cause }
