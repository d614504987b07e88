// Package bus provides the in-process notification fan-out for committed
// status transitions. Delivery is synchronous and registration-ordered so
// observers see transitions in exactly the order they were committed.
package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/domain/entity"
)

// Listener receives a committed transition event
type Listener func(ctx context.Context, event entity.TransitionEvent)

// Subscription is the handle returned by Subscribe. Cancelling it removes
// the listener; cancelling twice is a no-op.
type Subscription struct {
	bus  *NotificationBus
	id   uint64
	name string
	once sync.Once
}

// Name returns the listener name given at subscription time
func (s *Subscription) Name() string {
	return s.name
}

// Cancel removes the listener from the bus
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.remove(s.id)
	})
}

type registration struct {
	id       uint64
	name     string
	listener Listener
}

// NotificationBus notifies registered listeners whenever a transition
// commits. A listener that panics is recovered and logged; it never stops
// delivery to the remaining listeners or surfaces to the publisher.
type NotificationBus struct {
	mu            sync.RWMutex
	nextID        uint64
	registrations []registration
	logger        *zap.Logger
}

// New creates a notification bus
func New(logger *zap.Logger) *NotificationBus {
	return &NotificationBus{logger: logger}
}

// Subscribe registers a listener under a name used for logging.
// Listeners are invoked in subscription order.
func (b *NotificationBus) Subscribe(name string, listener Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.registrations = append(b.registrations, registration{
		id:       b.nextID,
		name:     name,
		listener: listener,
	})

	b.logger.Debug("Listener subscribed",
		zap.String("listener", name),
		zap.Int("total", len(b.registrations)))

	return &Subscription{bus: b, id: b.nextID, name: name}
}

// ListenerCount returns the number of registered listeners
func (b *NotificationBus) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.registrations)
}

// Publish delivers the event to every registered listener synchronously
func (b *NotificationBus) Publish(ctx context.Context, event entity.TransitionEvent) {
	b.mu.RLock()
	current := make([]registration, len(b.registrations))
	copy(current, b.registrations)
	b.mu.RUnlock()

	for _, reg := range current {
		b.deliver(ctx, reg, event)
	}
}

func (b *NotificationBus) deliver(ctx context.Context, reg registration, event entity.TransitionEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Listener panicked",
				zap.String("listener", reg.name),
				zap.String("record_id", event.RecordID),
				zap.Any("panic", r))
		}
	}()

	reg.listener(ctx, event)
}

func (b *NotificationBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	filtered := b.registrations[:0]
	for _, reg := range b.registrations {
		if reg.id != id {
			filtered = append(filtered, reg)
		}
	}
	b.registrations = filtered
}
