package fsm_test

import (
	"fmt"

	"github.com/nano-e/ne-fsm/pkg/fsm"
)

// A minimal bootstrap machine: a service sits in Null until asked to start,
// counts startup attempts while Starting, and settles in Ready.

type BootPhase string

const (
	Null     BootPhase = "null"
	Starting BootPhase = "starting"
	Ready    BootPhase = "ready"
)

type BootSignal string

const (
	Start   BootSignal = "start"
	Started BootSignal = "started"
)

type BootContext struct {
	Attempts int
}

type nullState struct{}

func (nullState) OnEnter(c *BootContext) fsm.Response[BootPhase] { return fsm.Handled[BootPhase]() }

func (nullState) OnEvent(e BootSignal, c *BootContext) fsm.Response[BootPhase] {
	if e == Start {
		return fsm.Transition(Starting)
	}
	return fsm.Handled[BootPhase]()
}

func (nullState) OnExit(c *BootContext) {}

type startingState struct{}

func (startingState) OnEnter(c *BootContext) fsm.Response[BootPhase] {
	c.Attempts++
	return fsm.Handled[BootPhase]()
}

func (startingState) OnEvent(e BootSignal, c *BootContext) fsm.Response[BootPhase] {
	if e == Started {
		return fsm.Transition(Ready)
	}
	return fsm.Handled[BootPhase]()
}

func (startingState) OnExit(c *BootContext) {}

type readyState struct{}

func (readyState) OnEnter(c *BootContext) fsm.Response[BootPhase] { return fsm.Handled[BootPhase]() }

func (readyState) OnEvent(e BootSignal, c *BootContext) fsm.Response[BootPhase] {
	return fsm.Handled[BootPhase]()
}

func (readyState) OnExit(c *BootContext) {}

func ExampleNew() {
	reg := fsm.NewRegistry[BootPhase, BootContext, BootSignal]().
		Register(Null, func() fsm.State[BootPhase, BootContext, BootSignal] { return nullState{} }).
		Register(Starting, func() fsm.State[BootPhase, BootContext, BootSignal] { return startingState{} }).
		Register(Ready, func() fsm.State[BootPhase, BootContext, BootSignal] { return readyState{} })

	machine := fsm.New(reg.Factory(), BootContext{}, nil)
	if err := machine.Init(Null); err != nil {
		fmt.Println("init:", err)
		return
	}
	for _, signal := range []BootSignal{Start, Started} {
		if err := machine.ProcessEvent(signal); err != nil {
			fmt.Println("process:", err)
			return
		}
	}

	state, _ := machine.Current()
	fmt.Printf("%s after %d attempt(s)\n", state, machine.Context().Attempts)
	// Output: ready after 1 attempt(s)
}
