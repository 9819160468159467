// Package fsm provides a generic finite-state-machine execution engine:
// given a closed set of state identities, a mutable shared context, and an
// event type, it drives state entry/exit lifecycle, dispatches events to
// the active state, and resolves chains of automatic transitions until the
// machine settles.
//
// The package revolves around three small contracts (State, Factory and
// the optional EventHandler) that leave domain modelling entirely to the
// caller while the engine handles:
//  1. Lazy construction and lifetime-long caching of one behavior instance
//     per state identity
//  2. Entry cascades: OnEnter may answer with Transition, chaining into the
//     next state without any OnExit in between
//  3. Event dispatch with global-handler precedence over the active state
//  4. Keeping the machine in its last valid state when a callback rejects
//     an event or a state entry
//
// Two engines share identical semantics: Machine is purely synchronous,
// while AsyncMachine passes a context.Context into every callback so
// behaviors may block on I/O or timers. Neither engine starts goroutines;
// exactly one lifecycle callback is in flight per machine instance.
//
// # Architecture
//
// A machine owns the caller-supplied context value, the current state
// identity and a map of state identity to behavior instance. Behaviors are
// built on first reference through the Factory (typically obtained from a
// Registry) and reused for the machine's lifetime, so mutable fields on a
// behavior persist across visits to its state. The current state changes
// only inside the transition-resolution loop.
//
// # Usage
//
//	const (
//	    Draft     Phase = "draft"
//	    Published Phase = "published"
//	)
//
//	reg := fsm.NewRegistry[Phase, Doc, Action]().
//	    Register(Draft, func() fsm.State[Phase, Doc, Action] { return &draft{} }).
//	    Register(Published, func() fsm.State[Phase, Doc, Action] { return &published{} })
//
//	machine := fsm.New(reg.Factory(), Doc{}, nil)
//	if err := machine.Init(Draft); err != nil {
//	    // the initial entry cascade failed
//	}
//	if err := machine.ProcessEvent(Publish); err != nil {
//	    // a callback rejected the event or the entry into the next state
//	}
//
// # Error Handling
//
// Rich error types with helper predicates (e.g. IsInvalidStateError) let
// callers tell a rejected entry from a rejected event or a missing
// registration. Any rejection aborts the running operation and leaves the
// current state untouched; the engine never retries and never logs errors.
//
// # Concurrency
//
// A machine is exclusively owned by its caller. It may be moved between
// goroutines but must not be used from two goroutines at once; serialize
// externally (one driving goroutine per machine). Callbacks receive the
// context as *C and must not retain it beyond the call.
package fsm
