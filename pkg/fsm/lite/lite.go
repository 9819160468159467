package lite

import "errors"

var (
	// ErrNotInitialized is returned by ProcessEvent when the machine has no
	// settled state yet.
	ErrNotInitialized = errors.New("state machine not initialized")

	// ErrStateNotFound is returned when the factory has no behavior for a
	// state identity.
	ErrStateNotFound = errors.New("state behavior not found")
)

type responseKind int

const (
	responseHandled responseKind = iota
	responseTransition
)

// Response is the result of a lifecycle callback: Handled or Transition.
// The zero value behaves like Handled.
type Response[S comparable] struct {
	kind responseKind
	next S
}

// Handled reports that the callback absorbed the call.
func Handled[S comparable]() Response[S] {
	return Response[S]{kind: responseHandled}
}

// Transition requests a move to the given state identity.
func Transition[S comparable](next S) Response[S] {
	return Response[S]{kind: responseTransition, next: next}
}

// State is the permissive behavior contract: entries and events always
// succeed.
type State[S comparable, C, E any] interface {
	OnEnter(c *C) Response[S]
	OnEvent(event E, c *C) Response[S]
	OnExit(c *C)
}

// Factory maps a state identity to a freshly constructed behavior; a plain
// switch or map lookup is enough. Returning nil surfaces as
// ErrStateNotFound.
type Factory[S comparable, C, E any] func(state S) State[S, C, E]
