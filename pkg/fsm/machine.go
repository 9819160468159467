package fsm

import "log/slog"

// Machine is the synchronous engine. It owns the context value, the current
// state identity and the behavior cache. Not safe for concurrent use; one
// goroutine drives a machine at a time.
type Machine[S comparable, C, E any] struct {
	factory     Factory[S, C, E]
	states      map[S]State[S, C, E]
	context     C
	handler     EventHandler[S, C, E]
	current     S
	initialized bool
	logger      *slog.Logger
}

// New constructs a machine around the given factory and context value.
// handler may be nil when no global interceptor is wanted. No callbacks run
// until Init.
func New[S comparable, C, E any](factory Factory[S, C, E], context C, handler EventHandler[S, C, E], opts ...Option) *Machine[S, C, E] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Machine[S, C, E]{
		factory: factory,
		states:  make(map[S]State[S, C, E]),
		context: context,
		handler: handler,
		logger:  s.logger,
	}
}

// Init runs the entry cascade from initial until a state settles and makes
// that state current. Calling Init on an initialized machine is a no-op.
// On error no current state is set and Init may be retried.
func (m *Machine[S, C, E]) Init(initial S) error {
	if m.initialized {
		return nil
	}
	settled, err := m.enter(initial)
	if err != nil {
		return err
	}
	m.current = settled
	m.initialized = true
	m.logger.Debug("state machine initialized", "state", settled)
	return nil
}

// ProcessEvent drives one event through the dispatch algorithm: the global
// handler first (if any), then the active state's OnEvent unless the
// handler redirected the machine. A Transition response to a different
// state exits the active state and cascades entry into the next one; a
// Transition to the current state is a no-op.
func (m *Machine[S, C, E]) ProcessEvent(event E) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if m.handler != nil {
		switch r := m.handler.OnEvent(event, &m.context); r.kind {
		case responseReject:
			return NewErrInvalidEvent(r.reason)
		case responseTransition:
			if r.next != m.current {
				return m.transitionTo(r.next)
			}
		}
	}
	state, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	switch r := state.OnEvent(event, &m.context); r.kind {
	case responseReject:
		return NewErrInvalidEvent(r.reason)
	case responseTransition:
		if r.next != m.current {
			return m.transitionTo(r.next)
		}
	}
	return nil
}

// Current returns the settled state identity. ok is false until Init
// succeeds.
func (m *Machine[S, C, E]) Current() (S, bool) {
	return m.current, m.initialized
}

// Context returns a copy of the context value.
func (m *Machine[S, C, E]) Context() C {
	return m.context
}

// transitionTo exits the current state and cascades entry into next. When
// the cascade fails the current state is left unchanged; exit side effects
// that already ran are not undone.
func (m *Machine[S, C, E]) transitionTo(next S) error {
	outgoing, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	outgoing.OnExit(&m.context)
	settled, err := m.enter(next)
	if err != nil {
		return err
	}
	m.logger.Debug("state machine transition", "from", m.current, "to", settled)
	m.current = settled
	return nil
}

// enter resolves the entry cascade starting at from: fetch-or-create the
// candidate's behavior, run OnEnter, follow Transition answers until one
// settles. A candidate transitioning into itself settles immediately; a
// longer cycle across several entry steps is not detected and will loop
// forever, so state graphs must keep multi-step settling sequences acyclic.
func (m *Machine[S, C, E]) enter(from S) (S, error) {
	candidate := from
	for {
		state, err := m.behavior(candidate)
		if err != nil {
			var zero S
			return zero, err
		}
		switch r := state.OnEnter(&m.context); r.kind {
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

// behavior returns the cached behavior for state, constructing it through
// the factory on first reference.
func (m *Machine[S, C, E]) behavior(state S) (State[S, C, E], error) {
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
