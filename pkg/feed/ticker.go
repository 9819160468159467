package feed

import (
	"sync"
	"time"
)

// Ticker is a Source that emits a generated event on a fixed interval.
// Ticks are dropped when the consumer lags behind the buffer.
type Ticker[E any] struct {
	ch     chan E
	gen    func() E
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTicker starts emitting gen() every interval until Stop is called.
func NewTicker[E any](interval time.Duration, gen func() E) *Ticker[E] {
	t := &Ticker[E]{
		ch:     make(chan E, 16),
		gen:    gen,
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Ticker[E]) run() {
	defer func() {
		t.ticker.Stop()
		close(t.ch)
	}()
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.gen():
			default:
				// consumer lags, drop the tick
			}
		case <-t.stop:
			return
		}
	}
}

// Events returns the event channel; it closes after Stop.
func (t *Ticker[E]) Events() <-chan E {
	return t.ch
}

// Stop ends the ticker. Idempotent.
func (t *Ticker[E]) Stop() {
	t.once.Do(func() { close(t.stop) })
}
