package events

import (
	"sync"
	"time"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
)

// Subscriber represents a client subscribed to lifecycle events
type Subscriber struct {
	ID        string
	Kinds     map[Kind]bool // Filter by kind (empty for all kinds)
	Channel   chan *Event
	connected bool
	mutex     sync.RWMutex
}

// NewSubscriber creates a new event subscriber
func NewSubscriber(id string, bufferSize int) *Subscriber {
	return &Subscriber{
		ID:        id,
		Kinds:     make(map[Kind]bool),
		Channel:   make(chan *Event, bufferSize),
		connected: true,
	}
}

// SetKindFilter sets the event kind filter
func (s *Subscriber) SetKindFilter(kinds []Kind) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Kinds = make(map[Kind]bool)
	for _, k := range kinds {
		s.Kinds[k] = true
	}
}

// ShouldReceive checks if the subscriber wants this event
func (s *Subscriber) ShouldReceive(e *Event) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.connected {
		return false
	}
	return len(s.Kinds) == 0 || s.Kinds[e.Kind]
}

// Send delivers an event without blocking. It reports false when the
// subscriber is gone or its queue is full.
func (s *Subscriber) Send(e *Event) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.connected {
		return false
	}

	select {
	case s.Channel <- e:
		return true
	default:
		log.Warnf("Dropping %s event for subscriber %s (channel full)", e.Kind, s.ID)
		return false
	}
}

// Close closes the subscriber
func (s *Subscriber) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.connected {
		s.connected = false
		close(s.Channel)
	}
}

// IsConnected returns whether the subscriber is connected
func (s *Subscriber) IsConnected() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.connected
}

// Bus fans lifecycle events out to subscribers
type Bus struct {
	subscribers map[string]*Subscriber
	mutex       sync.RWMutex
	stats       BusStats
}

// BusStats holds statistics for the event bus
type BusStats struct {
	TotalEvents       uint64
	DroppedEvents     uint64
	ActiveSubscribers int
	LastEventTime     time.Time
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string]*Subscriber),
	}
}

// Subscribe adds a subscriber. A subscriber with the same ID is replaced.
func (b *Bus) Subscribe(subscriber *Subscriber) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if old, exists := b.subscribers[subscriber.ID]; exists && old != subscriber {
		old.Close()
	}
	b.subscribers[subscriber.ID] = subscriber
	b.stats.ActiveSubscribers = len(b.subscribers)

	log.Infof("Added event subscriber: %s (total: %d)", subscriber.ID, b.stats.ActiveSubscribers)
}

// Unsubscribe removes a subscriber from the bus
func (b *Bus) Unsubscribe(subscriberID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if subscriber, exists := b.subscribers[subscriberID]; exists {
		subscriber.Close()
		delete(b.subscribers, subscriberID)
		b.stats.ActiveSubscribers = len(b.subscribers)

		log.Infof("Removed event subscriber: %s (total: %d)", subscriberID, b.stats.ActiveSubscribers)
	}
}

// Publish delivers e to every matching subscriber and returns how many
// received it.
func (b *Bus) Publish(e *Event) int {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mutex.RLock()
	subscribers := make([]*Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.ShouldReceive(e) {
			subscribers = append(subscribers, sub)
		}
	}
	b.mutex.RUnlock()

	sent := 0
	dropped := 0
	for _, subscriber := range subscribers {
		if subscriber.Send(e) {
			sent++
		} else {
			dropped++
		}
	}

	b.mutex.Lock()
	b.stats.TotalEvents++
	b.stats.DroppedEvents += uint64(dropped)
	b.stats.LastEventTime = e.Time
	b.mutex.Unlock()

	return sent
}

// GetStats returns bus statistics. Subscribers closed by their reader but
// not yet unsubscribed are not counted as active.
func (b *Bus) GetStats() BusStats {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	stats := b.stats
	stats.ActiveSubscribers = 0
	for _, sub := range b.subscribers {
		if sub.IsConnected() {
			stats.ActiveSubscribers++
		}
	}
	return stats
}

// GetSubscriberCount returns the number of active subscribers
func (b *Bus) GetSubscriberCount() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.subscribers)
}

// Shutdown closes all subscribers
func (b *Bus) Shutdown() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for id, subscriber := range b.subscribers {
		subscriber.Close()
		log.Debugf("Closed event subscriber: %s", id)
	}

	b.subscribers = make(map[string]*Subscriber)
	b.stats.ActiveSubscribers = 0

	log.Info("Event bus shutdown complete")
}
