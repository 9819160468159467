package fsm

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by ProcessEvent when the machine has no
// settled state yet.
var ErrNotInitialized = errors.New("state machine not initialized")

// ErrStateNotFound indicates the factory has no behavior for a state identity.
type ErrStateNotFound struct {
	State string
}

func (e *ErrStateNotFound) Error() string {
	return fmt.Sprintf("no behavior registered for state '%s'", e.State)
}

func NewErrStateNotFound(state any) *ErrStateNotFound {
	return &ErrStateNotFound{State: fmt.Sprintf("%v", state)}
}

// ErrInvalidState indicates a behavior rejected entry into a state.
type ErrInvalidState struct {
	State  string
	Reason string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("entry into state '%s' rejected: %s", e.State, e.Reason)
}

func NewErrInvalidState(state any, reason string) *ErrInvalidState {
	return &ErrInvalidState{State: fmt.Sprintf("%v", state), Reason: reason}
}

// ErrInvalidEvent indicates a callback rejected an event.
type ErrInvalidEvent struct {
	Reason string
}

func (e *ErrInvalidEvent) Error() string {
	return fmt.Sprintf("event rejected: %s", e.Reason)
}

func NewErrInvalidEvent(reason string) *ErrInvalidEvent {
	return &ErrInvalidEvent{Reason: reason}
}

// ErrInternal is reserved for engine-internal invariant violations. The
// engine does not construct it today; it exists so callers can branch on
// the full error surface.
type ErrInternal struct {
	Reason string
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("internal state machine error: %s", e.Reason)
}

func IsStateNotFoundError(err error) bool {
	var e *ErrStateNotFound
	return errors.As(err, &e)
}

func IsInvalidStateError(err error) bool {
	var e *ErrInvalidState
	return errors.As(err, &e)
}

func IsInvalidEventError(err error) bool {
	var e *ErrInvalidEvent
	return errors.As(err, &e)
}

func IsInternalError(err error) bool {
	var e *ErrInternal
	return errors.As(err, &e)
}
