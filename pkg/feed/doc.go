// Package feed provides event-production helpers for driving a state
// machine: the engine itself makes no assumption about where events come
// from, so these types bridge producers (goroutines, timers, Redis
// pub/sub) to the single goroutine that owns the machine.
//
// Source is the consuming side: a receive-only event channel. Channel and
// Ticker are in-process producers; Hub fans events out to several
// subscribers; RedisFeed carries events across processes over a Redis
// pub/sub channel. Hub and RedisFeed both satisfy Feed, so a driving loop
// can switch between in-memory and Redis delivery through configuration.
//
// All types in this package are safe for concurrent use; they exist to
// cross goroutine boundaries. Delivery to a slow subscriber is lossy by
// design (events are dropped rather than blocking the producer), matching
// the pace of a machine that only ever processes one event at a time.
package feed
