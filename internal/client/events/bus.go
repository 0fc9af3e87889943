// Package events is the in-process notification bus that keeps independent
// consumers (sidebar, header) in sync after a mutation made elsewhere.
//
// Notifications carry no payload contract beyond the topic: consumers always
// refetch through the services instead of trusting event data.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/acadium/dashboard/internal/logging"
)

type Topic string

const (
	TopicFavoritesChanged   Topic = "favorites_changed"
	TopicRecentPagesChanged Topic = "recent_pages_changed"
	TopicProfileUpdated     Topic = "profile_updated"
)

// Origin says where a change was observed.
type Origin string

const (
	// OriginLocal marks a mutation performed by this process.
	OriginLocal Origin = "local"
	// OriginRemote marks a change pushed by the remote service.
	OriginRemote Origin = "remote"
)

type Event struct {
	Topic  Topic
	Origin Origin
}

type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is owned by the application root and passed by reference. It is safe
// for concurrent use; handlers run synchronously on the publisher's
// goroutine, outside the bus lock, so a handler may unsubscribe itself.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic][]subscription
	nextID uint64
	log    logging.Logger
}

func NewBus(log logging.Logger) *Bus {
	return &Bus{
		subs: make(map[Topic][]subscription),
		log:  log,
	}
}

// Subscribe registers fn for topic and returns the func that deregisters it.
// The returned func is safe to call more than once.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			b.subs[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish announces a local change on topic.
func (b *Bus) Publish(topic Topic) {
	b.PublishEvent(Event{Topic: topic, Origin: OriginLocal})
}

// PublishEvent delivers evt to every current subscriber of its topic, in
// subscription order. A panicking handler is logged and skipped.
func (b *Bus) PublishEvent(evt Event) {
	if evt.Origin == "" {
		evt.Origin = OriginLocal
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[evt.Topic]))
	for _, s := range b.subs[evt.Topic] {
		handlers = append(handlers, s.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, evt)
	}
}

func (b *Bus) deliver(h Handler, evt Event) {
	defer func() {
		if p := recover(); p != nil {
			b.log.Error(context.Background(), "event handler panicked",
				"topic", string(evt.Topic), "panic", fmt.Sprint(p))
		}
	}()
	h(evt)
}

// Len returns the number of live subscriptions for topic.
func (b *Bus) Len(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
