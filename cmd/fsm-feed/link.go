package main

import (
	"log/slog"
	"time"

	"github.com/nano-e/ne-fsm/pkg/fsm"
)

// LinkState enumerates the phases of a supervised link.
type LinkState string

const (
	LinkDown     LinkState = "down"
	LinkStarting LinkState = "starting"
	LinkUp       LinkState = "up"
)

// Event kinds carried in LinkEvent.Kind.
const (
	EventLinkStarted = "link-started"
	EventLinkLost    = "link-lost"
)

// LinkEvent is the wire form of one link notification. The JSON shape is
// shared with other processes when the Redis feed carries the events.
type LinkEvent struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

// LinkContext counts what happened to the link over the machine's lifetime.
type LinkContext struct {
	Attempts int
	Drops    int
}

type linkBehavior = fsm.State[LinkState, LinkContext, LinkEvent]

func newLinkRegistry(log *slog.Logger) *fsm.Registry[LinkState, LinkContext, LinkEvent] {
	return fsm.NewRegistry[LinkState, LinkContext, LinkEvent]().
		Register(LinkDown, func() linkBehavior { return &downState{log: log} }).
		Register(LinkStarting, func() linkBehavior { return &startingState{log: log} }).
		Register(LinkUp, func() linkBehavior { return &upState{log: log} })
}

// downState immediately hands off to starting; the supervisor never rests
// while the link is down.
type downState struct{ log *slog.Logger }

func (s *downState) OnEnter(c *LinkContext) fsm.Response[LinkState] {
	s.log.Info("link down", "attempts", c.Attempts, "drops", c.Drops)
	return fsm.Transition(LinkStarting)
}

func (s *downState) OnEvent(event LinkEvent, c *LinkContext) fsm.Response[LinkState] {
	return fsm.Transition(LinkStarting)
}

func (s *downState) OnExit(*LinkContext) {}

type startingState struct{ log *slog.Logger }

func (s *startingState) OnEnter(c *LinkContext) fsm.Response[LinkState] {
	c.Attempts++
	s.log.Info("bringing link up", "attempt", c.Attempts)
	return fsm.Handled[LinkState]()
}

func (s *startingState) OnEvent(event LinkEvent, c *LinkContext) fsm.Response[LinkState] {
	switch event.Kind {
	case EventLinkStarted:
		return fsm.Transition(LinkUp)
	default:
		s.log.Debug("event ignored", "state", string(LinkStarting), "kind", event.Kind)
		return fsm.Handled[LinkState]()
	}
}

func (s *startingState) OnExit(*LinkContext) {}

type upState struct{ log *slog.Logger }

func (s *upState) OnEnter(c *LinkContext) fsm.Response[LinkState] {
	s.log.Info("link established", "attempts", c.Attempts)
	return fsm.Handled[LinkState]()
}

func (s *upState) OnEvent(event LinkEvent, c *LinkContext) fsm.Response[LinkState] {
	switch event.Kind {
	case EventLinkLost:
		return fsm.Transition(LinkDown)
	default:
		s.log.Debug("event ignored", "state", string(LinkUp), "kind", event.Kind)
		return fsm.Handled[LinkState]()
	}
}

func (s *upState) OnExit(c *LinkContext) {
	c.Drops++
}
