package fsm

// Constructor builds a fresh behavior for one state identity.
type Constructor[S comparable, C, E any] func() State[S, C, E]

// Registry is an explicit state-identity-to-constructor mapping. It is the
// data-driven way to cover a closed state set: register one constructor per
// identity, then hand Factory() to New. Registration happens up front, from
// one goroutine, before the machine runs.
type Registry[S comparable, C, E any] struct {
	ctors map[S]Constructor[S, C, E]
}

// NewRegistry returns an empty registry.
func NewRegistry[S comparable, C, E any]() *Registry[S, C, E] {
	return &Registry[S, C, E]{ctors: make(map[S]Constructor[S, C, E])}
}

// Register binds a constructor to a state identity and returns the registry
// for chaining. Registering the same identity again replaces the previous
// constructor.
func (r *Registry[S, C, E]) Register(state S, newState Constructor[S, C, E]) *Registry[S, C, E] {
	r.ctors[state] = newState
	return r
}

// Factory returns a Factory backed by the registered constructors. For an
// unregistered identity it returns nil, which a machine reports as
// *ErrStateNotFound.
func (r *Registry[S, C, E]) Factory() Factory[S, C, E] {
	return func(state S) State[S, C, E] {
		if ctor, ok := r.ctors[state]; ok {
			return ctor()
		}
		return nil
	}
}

// AsyncConstructor builds a fresh async behavior for one state identity.
type AsyncConstructor[S comparable, C, E any] func() AsyncState[S, C, E]

// AsyncRegistry is the Registry counterpart for AsyncMachine.
type AsyncRegistry[S comparable, C, E any] struct {
	ctors map[S]AsyncConstructor[S, C, E]
}

// NewAsyncRegistry returns an empty async registry.
func NewAsyncRegistry[S comparable, C, E any]() *AsyncRegistry[S, C, E] {
	return &AsyncRegistry[S, C, E]{ctors: make(map[S]AsyncConstructor[S, C, E])}
}

// Register binds a constructor to a state identity and returns the registry
// for chaining. Registering the same identity again replaces the previous
// constructor.
func (r *AsyncRegistry[S, C, E]) Register(state S, newState AsyncConstructor[S, C, E]) *AsyncRegistry[S, C, E] {
	r.ctors[state] = newState
	return r
}

// Factory returns an AsyncFactory backed by the registered constructors.
// For an unregistered identity it returns nil, which a machine reports as
// *ErrStateNotFound.
func (r *AsyncRegistry[S, C, E]) Factory() AsyncFactory[S, C, E] {
	return func(state S) AsyncState[S, C, E] {
		if ctor, ok := r.ctors[state]; ok {
			return ctor()
		}
		return nil
	}
}
