package main

import (
	"context"
	"log/slog"

	"github.com/nano-e/ne-fsm/pkg/fsm"
)

// CallState enumerates the phases of a phone call.
type CallState string

const (
	CallIdle         CallState = "idle"
	CallDialing      CallState = "dialing"
	CallRinging      CallState = "ringing"
	CallConnected    CallState = "connected"
	CallDisconnected CallState = "disconnected"
)

// CallEvent enumerates the signals that drive a call forward.
type CallEvent string

const (
	EventDial         CallEvent = "dial"
	EventIncomingCall CallEvent = "incoming-call"
	EventAnswer       CallEvent = "answer"
	EventReject       CallEvent = "reject"
	EventHangUp       CallEvent = "hang-up"
	EventReset        CallEvent = "reset"
)

// CallContext travels with the machine across states.
type CallContext struct {
	SessionID  string
	Retries    int
	MaxRetries int
}

type callBehavior = fsm.AsyncState[CallState, CallContext, CallEvent]

// newCallRegistry wires one behavior per call state. Every behavior shares
// the demo's logger.
func newCallRegistry(log *slog.Logger) *fsm.AsyncRegistry[CallState, CallContext, CallEvent] {
	return fsm.NewAsyncRegistry[CallState, CallContext, CallEvent]().
		Register(CallIdle, func() callBehavior { return &idleState{log: log} }).
		Register(CallDialing, func() callBehavior { return &dialingState{log: log} }).
		Register(CallRinging, func() callBehavior { return &ringingState{log: log} }).
		Register(CallConnected, func() callBehavior { return &connectedState{log: log} }).
		Register(CallDisconnected, func() callBehavior { return &disconnectedState{log: log} })
}

type idleState struct{ log *slog.Logger }

func (s *idleState) OnEnter(ctx context.Context, c *CallContext) fsm.Response[CallState] {
	s.log.InfoContext(ctx, "line idle", "session_id", c.SessionID)
	return fsm.Handled[CallState]()
}

func (s *idleState) OnEvent(ctx context.Context, event CallEvent, c *CallContext) fsm.Response[CallState] {
	switch event {
	case EventDial:
		return fsm.Transition(CallDialing)
	case EventIncomingCall:
		return fsm.Transition(CallRinging)
	default:
		s.log.DebugContext(ctx, "event ignored", "state", string(CallIdle), "event", string(event))
		return fsm.Handled[CallState]()
	}
}

func (s *idleState) OnExit(context.Context, *CallContext) {}

type dialingState struct{ log *slog.Logger }

func (s *dialingState) OnEnter(ctx context.Context, c *CallContext) fsm.Response[CallState] {
	c.Retries++
	if c.Retries > c.MaxRetries {
		s.log.WarnContext(ctx, "giving up call",
			"session_id", c.SessionID,
			"attempts", c.Retries-1,
		)
		c.Retries = 0
		return fsm.Transition(CallDisconnected)
	}
	s.log.InfoContext(ctx, "dialing remote party",
		"session_id", c.SessionID,
		"attempt", c.Retries,
	)
	return fsm.Handled[CallState]()
}

func (s *dialingState) OnEvent(ctx context.Context, event CallEvent, c *CallContext) fsm.Response[CallState] {
	switch event {
	case EventAnswer:
		return fsm.Transition(CallConnected)
	case EventReject:
		return fsm.Transition(CallIdle)
	default:
		s.log.DebugContext(ctx, "event ignored", "state", string(CallDialing), "event", string(event))
		return fsm.Handled[CallState]()
	}
}

func (s *dialingState) OnExit(context.Context, *CallContext) {}

type ringingState struct{ log *slog.Logger }

func (s *ringingState) OnEnter(ctx context.Context, c *CallContext) fsm.Response[CallState] {
	s.log.InfoContext(ctx, "incoming call ringing", "session_id", c.SessionID)
	return fsm.Handled[CallState]()
}

func (s *ringingState) OnEvent(ctx context.Context, event CallEvent, c *CallContext) fsm.Response[CallState] {
	switch event {
	case EventAnswer:
		return fsm.Transition(CallConnected)
	case EventReject:
		return fsm.Transition(CallIdle)
	default:
		s.log.DebugContext(ctx, "event ignored", "state", string(CallRinging), "event", string(event))
		return fsm.Handled[CallState]()
	}
}

func (s *ringingState) OnExit(context.Context, *CallContext) {}

type connectedState struct{ log *slog.Logger }

func (s *connectedState) OnEnter(ctx context.Context, c *CallContext) fsm.Response[CallState] {
	s.log.InfoContext(ctx, "call established",
		"session_id", c.SessionID,
		"attempts", c.Retries,
	)
	return fsm.Handled[CallState]()
}

func (s *connectedState) OnEvent(ctx context.Context, event CallEvent, c *CallContext) fsm.Response[CallState] {
	switch event {
	case EventHangUp:
		return fsm.Transition(CallDisconnected)
	default:
		s.log.DebugContext(ctx, "event ignored", "state", string(CallConnected), "event", string(event))
		return fsm.Handled[CallState]()
	}
}

func (s *connectedState) OnExit(context.Context, *CallContext) {}

type disconnectedState struct{ log *slog.Logger }

func (s *disconnectedState) OnEnter(ctx context.Context, c *CallContext) fsm.Response[CallState] {
	s.log.InfoContext(ctx, "call ended", "session_id", c.SessionID)
	return fsm.Handled[CallState]()
}

func (s *disconnectedState) OnEvent(ctx context.Context, event CallEvent, c *CallContext) fsm.Response[CallState] {
	switch event {
	case EventReset:
		return fsm.Transition(CallIdle)
	default:
		s.log.DebugContext(ctx, "event ignored", "state", string(CallDisconnected), "event", string(event))
		return fsm.Handled[CallState]()
	}
}

func (s *disconnectedState) OnExit(context.Context, *CallContext) {}
