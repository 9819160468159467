package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nano-e/ne-fsm/pkg/fsm"
)

func newTestLink(t *testing.T) *fsm.Machine[LinkState, LinkContext, LinkEvent] {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	link := fsm.New(newLinkRegistry(log).Factory(), LinkContext{}, nil, fsm.WithLogger(log))
	require.NoError(t, link.Init(LinkDown))
	return link
}

func TestLink_InitCascadesToStarting(t *testing.T) {
	link := newTestLink(t)

	state, ok := link.Current()
	require.True(t, ok)
	assert.Equal(t, LinkStarting, state)
	assert.Equal(t, 1, link.Context().Attempts)
}

func TestLink_CyclesThroughUpAndDown(t *testing.T) {
	link := newTestLink(t)

	require.NoError(t, link.ProcessEvent(LinkEvent{Kind: EventLinkStarted}))
	state, _ := link.Current()
	assert.Equal(t, LinkUp, state)

	// Losing the link lands in down, which immediately retries.
	require.NoError(t, link.ProcessEvent(LinkEvent{Kind: EventLinkLost}))
	state, _ = link.Current()
	assert.Equal(t, LinkStarting, state)

	c := link.Context()
	assert.Equal(t, 2, c.Attempts)
	assert.Equal(t, 1, c.Drops)
}

func TestLink_IgnoresUnrelatedEvents(t *testing.T) {
	link := newTestLink(t)

	require.NoError(t, link.ProcessEvent(LinkEvent{Kind: "link-flapped"}))
	state, _ := link.Current()
	assert.Equal(t, LinkStarting, state)
	assert.Equal(t, 1, link.Context().Attempts)
}

func TestAlternator(t *testing.T) {
	next := alternator()

	first := next()
	second := next()
	third := next()

	assert.Equal(t, EventLinkStarted, first.Kind)
	assert.Equal(t, EventLinkLost, second.Kind)
	assert.Equal(t, EventLinkStarted, third.Kind)
	assert.False(t, first.At.IsZero())
}

func TestNewFeed(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("hub source", func(t *testing.T) {
		f, err := newFeed(context.Background(), log, appConfig{Source: "hub"})
		require.NoError(t, err)
		require.NoError(t, f.Close())
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := newFeed(context.Background(), log, appConfig{Source: "carrier-pigeon"})
		require.Error(t, err)
	})
}
