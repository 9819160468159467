package fsm

type responseKind int

const (
	responseHandled responseKind = iota
	responseTransition
	responseReject
)

// Response is the tagged result of a lifecycle callback. Construct values
// with Handled, Transition or Reject; the zero value behaves like Handled.
type Response[S comparable] struct {
	kind   responseKind
	next   S
	reason string
}

// Handled reports that the callback absorbed the call and requests no
// transition.
func Handled[S comparable]() Response[S] {
	return Response[S]{kind: responseHandled}
}

// Transition requests a move to the given state identity. Returned from
// OnEnter it chains the entry cascade; returned from an event callback it
// triggers exit of the active state followed by the entry cascade.
func Transition[S comparable](next S) Response[S] {
	return Response[S]{kind: responseTransition, next: next}
}

// Reject reports a callback-level failure. During event dispatch it surfaces
// to the caller as *ErrInvalidEvent, during state entry as *ErrInvalidState;
// in both cases the machine stays in its last valid state.
func Reject[S comparable](reason string) Response[S] {
	return Response[S]{kind: responseReject, reason: reason}
}
