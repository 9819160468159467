// Package lite is the permissive counterpart of package fsm: behaviors
// answer only Handled or Transition and cannot reject an event or a state
// entry, there is no global event handler, and the error surface collapses
// to two sentinels (ErrNotInitialized, ErrStateNotFound).
//
// Cascade resolution is otherwise identical to package fsm: entry chains
// run without intermediate OnExit calls, an immediate self-loop settles the
// machine, a self-transition from an event callback is a no-op, and one
// behavior instance per state identity is cached for the machine's
// lifetime. Pick lite when every state entry is unconditional; pick fsm
// when callbacks need a rejection path.
package lite
