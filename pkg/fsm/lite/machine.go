package lite

// Machine is the synchronous permissive engine. Not safe for concurrent
// use; one goroutine drives a machine at a time.
type Machine[S comparable, C, E any] struct {
	factory     Factory[S, C, E]
	states      map[S]State[S, C, E]
	context     C
	current     S
	initialized bool
}

// New constructs a machine around the given factory and context value. No
// callbacks run until Init.
func New[S comparable, C, E any](factory Factory[S, C, E], context C) *Machine[S, C, E] {
	return &Machine[S, C, E]{
		factory: factory,
		states:  make(map[S]State[S, C, E]),
		context: context,
	}
}

// Init runs the entry cascade from initial until a state settles and makes
// that state current. Calling Init on an initialized machine is a no-op.
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
	return nil
}

// ProcessEvent dispatches one event to the active state. A Transition
// answer to a different state exits the active state and cascades entry
// into the next one; a Transition to the current state is a no-op.
func (m *Machine[S, C, E]) ProcessEvent(event E) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	state, err := m.behavior(m.current)
	if err != nil {
		return err
	}
	if r := state.OnEvent(event, &m.context); r.kind == responseTransition && r.next != m.current {
		return m.transitionTo(r.next)
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
	m.current = settled
	return nil
}

// enter resolves the entry cascade. An immediate self-loop settles; longer
// cycles across several entry steps are not detected.
func (m *Machine[S, C, E]) enter(from S) (S, error) {
	candidate := from
	for {
		state, err := m.behavior(candidate)
		if err != nil {
			var zero S
			return zero, err
		}
		if r := state.OnEnter(&m.context); r.kind == responseTransition && r.next != candidate {
			candidate = r.next
			continue
		}
		return candidate, nil
	}
}

func (m *Machine[S, C, E]) behavior(state S) (State[S, C, E], error) {
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
