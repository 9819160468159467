package fsm

// State is the behavior bound to one state identity. One instance exists
// per identity per machine; it is created lazily and kept for the machine's
// lifetime, so mutable fields persist across visits to the state.
type State[S comparable, C, E any] interface {
	// OnEnter runs once per entry-cascade step. Answering Transition
	// continues the cascade into the next state without this state being
	// settled and without any OnExit call.
	OnEnter(c *C) Response[S]

	// OnEvent receives an event dispatched to the settled state.
	OnEvent(event E, c *C) Response[S]

	// OnExit runs once when the settled state is being left, before the
	// next state's entry cascade begins. Side effects only.
	OnExit(c *C)
}

// EventHandler inspects every incoming event before the active state does.
// Answering Transition to a different state redirects the machine and skips
// the active state's OnEvent for that call; Handled passes the event on;
// Reject aborts the dispatch. It is never consulted for OnEnter or OnExit.
type EventHandler[S comparable, C, E any] interface {
	OnEvent(event E, c *C) Response[S]
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc[S comparable, C, E any] func(event E, c *C) Response[S]

func (f EventHandlerFunc[S, C, E]) OnEvent(event E, c *C) Response[S] {
	return f(event, c)
}

// Factory maps a state identity to a constructed behavior. A machine calls
// it at most once per identity and caches the result, so behaviors meant to
// be machine-local should be built fresh on each call. Returning nil marks
// the identity as unknown and surfaces to the caller as *ErrStateNotFound.
type Factory[S comparable, C, E any] func(state S) State[S, C, E]
