package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/dashbook/dashbook/errors"
	"go.uber.org/atomic"
)

const DefaultBusCapacity = 256

var ErrBusClosed = errors.NewServiceNotStartedError("live event bus is closed")

// LagError is returned by Recv when the subscriber fell further behind than the bus retains.
// The subscription has already been moved to the oldest retained event.
type LagError struct {
	Missed uint64
}

func (e *LagError) Error() string {
	return fmt.Sprintf("subscriber lagged, %d events dropped", e.Missed)
}

// Bus is a single producer, multi consumer ring of the most recent events. Publishing never
// blocks on slow subscribers, they lose the oldest events instead.
type Bus struct {
	mu          sync.Mutex
	ring        []Event
	seq         uint64
	notify      chan struct{}
	closed      bool
	subscribers *atomic.Int64
}

func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultBusCapacity
	}

	initPrometheusMetrics()

	return &Bus{
		ring:        make([]Event, capacity),
		notify:      make(chan struct{}),
		subscribers: atomic.NewInt64(0),
	}
}

// Publish assigns the next sequence number, overwriting the oldest slot once the ring is full.
// Publishing to a closed bus is a no-op and returns 0.
func (b *Bus) Publish(ev Event) uint64 {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return 0
	}

	b.seq++
	ev.seq = b.seq
	b.ring[(b.seq-1)%uint64(len(b.ring))] = ev

	notify := b.notify
	b.notify = make(chan struct{})
	seq := b.seq

	b.mu.Unlock()

	close(notify)

	prometheusLiveEventsPublished.WithLabelValues(string(ev.Type)).Inc()

	return seq
}

// Subscribe returns a subscription that starts at the next event to be published.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	next := b.seq + 1
	b.mu.Unlock()

	b.subscribers.Inc()
	prometheusLiveSubscribers.Inc()

	return &Subscription{
		bus:    b,
		next:   next,
		lagged: atomic.NewUint64(0),
		done:   atomic.NewBool(false),
	}
}

// Close wakes every blocked reader, all further Recv calls return ErrBusClosed. It is safe to call twice.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.notify)
}

func (b *Bus) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.seq
}

func (b *Bus) Subscribers() int {
	return int(b.subscribers.Load())
}

func (b *Bus) Capacity() int {
	return len(b.ring)
}

// oldest is the lowest sequence still held in the ring, callers hold mu.
func (b *Bus) oldest() uint64 {
	capacity := uint64(len(b.ring))
	if b.seq <= capacity {
		return 1
	}

	return b.seq - capacity + 1
}

// Subscription is read by a single goroutine.
type Subscription struct {
	bus    *Bus
	next   uint64
	lagged *atomic.Uint64
	done   *atomic.Bool
}

// Recv blocks until the next event, a lag, bus closure or ctx cancellation.
func (s *Subscription) Recv(ctx context.Context) (Event, error) {
	for {
		s.bus.mu.Lock()

		if s.bus.closed {
			s.bus.mu.Unlock()
			return Event{}, ErrBusClosed
		}

		if s.next <= s.bus.seq {
			if oldest := s.bus.oldest(); s.next < oldest {
				missed := oldest - s.next
				s.next = oldest
				s.bus.mu.Unlock()

				s.lagged.Add(missed)
				prometheusLiveEventsDropped.Add(float64(missed))

				return Event{}, &LagError{Missed: missed}
			}

			ev := s.bus.ring[(s.next-1)%uint64(len(s.bus.ring))]
			s.next++
			s.bus.mu.Unlock()

			return ev, nil
		}

		notify := s.bus.notify
		s.bus.mu.Unlock()

		select {
		case <-notify:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Lagged is the total number of events this subscriber has lost.
func (s *Subscription) Lagged() uint64 {
	return s.lagged.Load()
}

// Unsubscribe releases the subscription. It is safe to call twice.
func (s *Subscription) Unsubscribe() {
	if s.done.CompareAndSwap(false, true) {
		s.bus.subscribers.Dec()
		prometheusLiveSubscribers.Dec()
	}
}
