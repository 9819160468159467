package feed

import (
	"context"
	"sync"
)

// Hub fans events out to all active subscribers in memory. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type Hub[E any] struct {
	mu     sync.RWMutex
	subs   map[*hubSub[E]]struct{}
	buffer int
	closed bool
}

// NewHub creates a hub whose subscribers buffer up to buffer events
// (minimum 1).
func NewHub[E any](buffer int) *Hub[E] {
	return &Hub[E]{
		subs:   make(map[*hubSub[E]]struct{}),
		buffer: max(buffer, 1),
	}
}

// Subscribe registers a new subscriber. The subscription is detached
// automatically when ctx is cancelled, or explicitly via Close.
func (h *Hub[E]) Subscribe(ctx context.Context) (Subscriber[E], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrFeedClosed
	}
	sub := &hubSub[E]{
		hub:  h,
		ch:   make(chan E, h.buffer),
		done: make(chan struct{}),
	}
	h.subs[sub] = struct{}{}
	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				h.drop(sub)
			case <-sub.done:
			}
		}()
	}
	return sub, nil
}

// Publish fans one event out to every subscriber. The context parameter
// exists for Feed interface consistency; in-memory delivery never blocks.
func (h *Hub[E]) Publish(ctx context.Context, event E) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrFeedClosed
	}
	for sub := range h.subs {
		sub.send(event)
	}
	return nil
}

// Close detaches every subscriber and rejects further Publish and Subscribe
// calls. Idempotent.
func (h *Hub[E]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for sub := range h.subs {
		sub.shutdown()
	}
	clear(h.subs)
	return nil
}

func (h *Hub[E]) drop(sub *hubSub[E]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	sub.shutdown()
}

type hubSub[E any] struct {
	hub  *Hub[E]
	ch   chan E
	done chan struct{}
	once sync.Once
}

func (s *hubSub[E]) Events() <-chan E {
	return s.ch
}

// Close detaches the subscriber from its hub. Idempotent.
func (s *hubSub[E]) Close() error {
	s.hub.drop(s)
	return nil
}

// send runs under the hub's read lock; shutdown runs under the write lock,
// so a send never races the channel close.
func (s *hubSub[E]) send(event E) {
	select {
	case s.ch <- event:
	default:
	}
}

func (s *hubSub[E]) shutdown() {
	s.once.Do(func() {
		close(s.done)
		close(s.ch)
	})
}
