package feed

import "context"

// Source delivers events to a machine-driving loop. The channel closes when
// the source is exhausted or closed.
type Source[E any] interface {
	Events() <-chan E
}

// Subscriber is a closable Source handed out by a Feed. Close detaches it
// and closes the event channel; it is idempotent.
type Subscriber[E any] interface {
	Source[E]
	Close() error
}

// Feed pairs publishing with subscribing. Hub delivers in memory, RedisFeed
// across processes; a driving loop can treat both alike.
type Feed[E any] interface {
	Publish(ctx context.Context, event E) error
	Subscribe(ctx context.Context) (Subscriber[E], error)
	Close() error
}

// Channel is a Source backed by a buffered channel, for callers that push
// events from their own goroutines.
type Channel[E any] struct {
	ch chan E
}

// NewChannel creates a Channel with the given buffer size (minimum 1).
func NewChannel[E any](buffer int) *Channel[E] {
	return &Channel[E]{ch: make(chan E, max(buffer, 1))}
}

// Events returns the receive side of the channel.
func (c *Channel[E]) Events() <-chan E {
	return c.ch
}

// Send delivers one event, blocking until the buffer accepts it or ctx is
// done.
func (c *Channel[E]) Send(ctx context.Context, event E) error {
	select {
	case c.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the event channel. Pending events stay readable. No Send may
// run concurrently with or after Close.
func (c *Channel[E]) Close() {
	close(c.ch)
}
