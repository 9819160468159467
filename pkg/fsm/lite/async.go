package lite

import "context"

// AsyncState is the permissive behavior contract for AsyncMachine. Each
// callback receives the context passed to the driving call and may block.
type AsyncState[S comparable, C, E any] interface {
	OnEnter(ctx context.Context, c *C) Response[S]
	OnEvent(ctx context.Context, event E, c *C) Response[S]
	OnExit(ctx context.Context, c *C)
}

// AsyncFactory maps a state identity to a freshly constructed async
// behavior. Returning nil surfaces as ErrStateNotFound.
type AsyncFactory[S comparable, C, E any] func(state S) AsyncState[S, C, E]

// AsyncMachine is the blocking-callback variant of Machine with identical
// semantics.
type AsyncMachine[S comparable, C, E any] struct {
	factory     AsyncFactory[S, C, E]
	states      map[S]AsyncState[S, C, E]
	context     C
	current     S
	initialized bool
}

// NewAsync constructs an async machine around the given factory and context
// value. No callbacks run until Init.
func NewAsync[S comparable, C, E any](factory AsyncFactory[S, C, E], context C) *AsyncMachine[S, C, E] {
	return &AsyncMachine[S, C, E]{
		factory: factory,
		states:  make(map[S]AsyncState[S, C, E]),
		context: context,
	}
}

// Init runs the entry cascade from initial until a state settles and makes
// that state current. Calling Init on an initialized machine is a no-op.
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
	return nil
}

// ProcessEvent dispatches one event to the active state, passing ctx into
// every callback on the way.
func (m *AsyncMachine[S, C, E]) ProcessEvent(ctx context.Context, event E) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	state, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	if r := state.OnEvent(ctx, event, &m.context); r.kind == responseTransition && r.next != m.current {
		return m.transitionTo(ctx, r.next)
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
		if r := state.OnEnter(ctx, &m.context); r.kind == responseTransition && r.next != candidate {
			candidate = r.next
			continue
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
		return nil, ErrStateNotFound
	}
	m.states[state] = s
	return s, nil
}
