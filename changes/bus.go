/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package changes

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultSubscriptionBuffer is the channel buffer for each subscription.
const DefaultSubscriptionBuffer = 64

// Bus is a multicast channel of Changes. Successful mutations publish their
// affected-collection set and every subscription whose interest set
// intersects it receives the event.
//
// Subscriptions are hot: they observe only events published after Subscribe
// and must be closed by the caller, otherwise they receive events
// indefinitely. Delivery to a given subscription preserves publish order;
// there is no ordering guarantee across subscriptions. Publish never blocks
// on a slow consumer: an event that does not fit a subscription's buffer is
// dropped for that subscription.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string]*Subscription
	bufSize int
	closed  bool
	logger  *slog.Logger
}

// Subscription is the handle for one subscriber of a Bus.
type Subscription struct {
	id       string
	interest map[string]struct{}
	ch       chan Changes

	bus *Bus

	closeOnce sync.Once
}

// NewBus creates a Bus with the given per-subscription buffer size.
// Pass nil logger for slog.Default, zero bufSize for DefaultSubscriptionBuffer.
func NewBus(bufSize int, logger *slog.Logger) *Bus {
	if bufSize <= 0 {
		bufSize = DefaultSubscriptionBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:    make(map[string]*Subscription),
		bufSize: bufSize,
		logger:  logger.With("component", "changes-bus"),
	}
}

// Subscribe registers interest in the given collections and returns the
// subscription handle. The caller must call Close on the handle when done;
// a forgotten subscription is a leak, it is never reclaimed automatically.
func (b *Bus) Subscribe(collections ...string) (*Subscription, error) {
	if len(collections) == 0 {
		return nil, fmt.Errorf("changes: subscription requires at least one collection")
	}
	interest := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		if c == "" {
			return nil, fmt.Errorf("changes: collection identifier must be non-empty")
		}
		interest[c] = struct{}{}
	}

	sub := &Subscription{
		id:       uuid.New().String(),
		interest: interest,
		ch:       make(chan Changes, b.bufSize),
		bus:      b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, fmt.Errorf("changes: bus is closed")
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", sub.id, "collections", collections)
	return sub, nil
}

// Publish delivers the event to every subscription whose interest set
// intersects it. Subscriber-side failures never reach the publisher:
// full buffers drop the event for that subscription only.
func (b *Bus) Publish(c Changes) {
	if c.Len() == 0 {
		return
	}

	// Sends are non-blocking, so they stay under the read lock. Close and
	// Subscription.Close take the write lock, which rules out a send on a
	// closed channel.
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !c.Intersects(sub.interest) {
			continue
		}
		select {
		case sub.ch <- c:
		default:
			b.logger.Warn("dropped changes for slow subscriber", "sub_id", sub.id, "changes", c.String())
		}
	}
}

// Close shuts down the bus and closes all subscription channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
	b.logger.Debug("bus closed")
}

// Events returns the channel delivering published Changes to this
// subscription. The channel is closed by Subscription.Close or Bus.Close.
func (s *Subscription) Events() <-chan Changes {
	return s.ch
}

// Close removes the subscription from the bus and closes its channel.
// An event racing with Close is either delivered before removal or not at
// all; a closed subscription never receives another event.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if _, ok := s.bus.subs[s.id]; !ok {
			// Bus.Close already removed us and closed the channel.
			return
		}
		delete(s.bus.subs, s.id)
		close(s.ch)
		s.bus.logger.Debug("subscriber removed", "sub_id", s.id)
	})
}
