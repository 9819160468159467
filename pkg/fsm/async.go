package fsm

import (
	"context"
	"log/slog"
)

// AsyncState is the behavior contract for AsyncMachine. Each callback
// receives the context passed to the driving Init or ProcessEvent call and
// may block; the engine forwards it untouched and performs no deadline or
// cancellation handling of its own.
type AsyncState[S comparable, C, E any] interface {
	OnEnter(ctx context.Context, c *C) Response[S]
	OnEvent(ctx context.Context, event E, c *C) Response[S]
	OnExit(ctx context.Context, c *C)
}

// AsyncEventHandler is the global interceptor for AsyncMachine, consulted
// before the active state on every event.
type AsyncEventHandler[S comparable, C, E any] interface {
	OnEvent(ctx context.Context, event E, c *C) Response[S]
}

// AsyncEventHandlerFunc adapts a plain function to the AsyncEventHandler
// interface.
type AsyncEventHandlerFunc[S comparable, C, E any] func(ctx context.Context, event E, c *C) Response[S]

func (f AsyncEventHandlerFunc[S, C, E]) OnEvent(ctx context.Context, event E, c *C) Response[S] {
	return f(ctx, event, c)
}

// AsyncFactory maps a state identity to a freshly constructed async
// behavior. Returning nil surfaces as *ErrStateNotFound.
type AsyncFactory[S comparable, C, E any] func(state S) AsyncState[S, C, E]

// AsyncMachine is the blocking-callback variant of Machine with identical
// semantics: same cascade resolution, same handler precedence, same
// rollback rules. Exactly one callback is in flight at a time; the machine
// is driven by a single goroutine.
type AsyncMachine[S comparable, C, E any] struct {
	factory     AsyncFactory[S, C, E]
	states      map[S]AsyncState[S, C, E]
	context     C
	handler     AsyncEventHandler[S, C, E]
	current     S
	initialized bool
	logger      *slog.Logger
}

// NewAsync constructs an async machine around the given factory and context
// value. handler may be nil. No callbacks run until Init.
func NewAsync[S comparable, C, E any](factory AsyncFactory[S, C, E], context C, handler AsyncEventHandler[S, C, E], opts ...Option) *AsyncMachine[S, C, E] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &AsyncMachine[S, C, E]{
		factory: factory,
		states:  make(map[S]AsyncState[S, C, E]),
		context: context,
		handler: handler,
		logger:  s.logger,
	}
}

// Init runs the entry cascade from initial until a state settles and makes
// that state current. Calling Init on an initialized machine is a no-op.
// On error no current state is set and Init may be retried.
func (m *AsyncMachine[S, C, E]) Init(ctx context.Context, initial S) error {
	if m.initialized {
		return nil
	}
	settled, err := m.enter(ctx, initial)
	if err != nil {
		return err
	}
	m.current = settled
	m.initialized = true
	m.logger.Debug("state machine initialized", "state", settled)
	return nil
}

// ProcessEvent drives one event through the dispatch algorithm exactly like
// Machine.ProcessEvent, passing ctx into every callback on the way.
func (m *AsyncMachine[S, C, E]) ProcessEvent(ctx context.Context, event E) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if m.handler != nil {
		switch r := m.handler.OnEvent(ctx, event, &m.context); r.kind {
		case responseReject:
			return NewErrInvalidEvent(r.reason)
		case responseTransition:
			if r.next != m.current {
				return m.transitionTo(ctx, r.next)
			}
		}
	}
	state, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	switch r := state.OnEvent(ctx, event, &m.context); r.kind {
	case responseReject:
		return NewErrInvalidEvent(r.reason)
	case responseTransition:
		if r.next != m.current {
			return m.transitionTo(ctx, r.next)
		}
	}
	return nil
}

// Current returns the settled state identity. ok is false until Init
// succeeds.
func (m *AsyncMachine[S, C, E]) Current() (S, bool) {
	return m.current, m.initialized
}

// Context returns a copy of the context value.
func (m *AsyncMachine[S, C, E]) Context() C {
	return m.context
}

func (m *AsyncMachine[S, C, E]) transitionTo(ctx context.Context, next S) error {
	outgoing, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	outgoing.OnExit(ctx, &m.context)
	settled, err := m.enter(ctx, next)
	if err != nil {
		return err
	}
	m.logger.Debug("state machine transition", "from", m.current, "to", settled)
	m.current = settled
	return nil
}

func (m *AsyncMachine[S, C, E]) enter(ctx context.Context, from S) (S, error) {
	candidate := from
	for {
		state, err := m.behavior(candidate)
		if err != nil {
			var zero S
			return zero, err
		}
		switch r := state.OnEnter(ctx, &m.context); r.kind {
		case responseReject:
			var zero S
			return zero, NewErrInvalidState(candidate, r.reason)
		case responseTransition:
			if r.next != candidate {
				candidate = r.next
				continue
			}
		}
		return candidate, nil
	}
}

func (m *AsyncMachine[S, C, E]) behavior(state S) (AsyncState[S, C, E], error) {
	if s, ok := m.states[state]; ok {
		return s, nil
	}
	s := m.factory(state)
	if s == nil {
		return nil, NewErrStateNotFound(state)
	}
	m.states[state] = s
	return s, nil
}
