package events

import (
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is used for subscriptions that ask for a non-positive buffer.
const DefaultBufferSize = 256

// Handler is a callback registered with On.
type Handler func(Event)

// subscriber is one channel subscription. An empty topic receives every topic.
type subscriber struct {
	topic string
	ch    chan Event
}

type handlerEntry struct {
	id   uint64
	kind string // Empty matches every event type
	fn   Handler
}

// EventBus delivers chart events to channel subscribers and to callbacks
// registered per event type. Channel delivery never blocks the publisher;
// an event that does not fit a subscriber's buffer is dropped for that
// subscriber and counted in Dropped.
type EventBus struct {
	mu       sync.RWMutex
	subs     []subscriber
	handlers []handlerEntry
	nextID   uint64
	closed   bool
	dropped  atomic.Uint64
}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe returns a channel receiving events published to topic.
func (b *EventBus) Subscribe(topic string, bufSize int) <-chan Event {
	return b.subscribe(topic, bufSize)
}

// SubscribeAll returns a channel receiving events from every topic.
func (b *EventBus) SubscribeAll(bufSize int) <-chan Event {
	return b.subscribe("", bufSize)
}

func (b *EventBus) subscribe(topic string, bufSize int) <-chan Event {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	ch := make(chan Event, bufSize)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, subscriber{topic: topic, ch: ch})
	return ch
}

// Unsubscribe removes a channel returned by Subscribe or SubscribeAll and closes it.
// Unknown channels are ignored.
func (b *EventBus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// On registers fn for events whose EventType is kind, or for every event
// when kind is empty. Handlers run on the publishing goroutine after channel
// delivery, in registration order. The returned func unregisters fn and may
// be called more than once.
func (b *EventBus) On(kind string, fn Handler) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, handlerEntry{id: id, kind: kind, fn: fn})

	return func() { b.removeHandler(id) }
}

func (b *EventBus) removeHandler(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, h := range b.handlers {
		if h.id == id {
			// Copy so a Publish iterating the old slice is unaffected
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Publish sends event to the subscribers of topic and of all topics, then
// calls the matching handlers. Publishing on a closed bus does nothing.
func (b *EventBus) Publish(topic string, event Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	for _, s := range b.subs {
		if s.topic != "" && s.topic != topic {
			continue
		}
		select {
		case s.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
	handlers := b.handlers
	b.mu.RUnlock()

	kind := event.EventType()
	for _, h := range handlers {
		if h.kind == "" || h.kind == kind {
			h.fn(event)
		}
	}
}

// Dropped returns how many channel deliveries were skipped because a
// subscriber's buffer was full.
func (b *EventBus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel and forgets all handlers.
// Safe to call multiple times (idempotent).
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	b.handlers = nil
}
