// Package realtime provides the live-feed subscription layer: an in-process
// hub with replace-latest delivery, optionally fanned out across instances
// by a Redis pub/sub bus.
package realtime

import (
	"encoding/json"
	"sync"
	"time"
)

// Event kinds published to feed topics.
const (
	EventPostCreated   = "post.created"
	EventReplyAdded    = "reply.added"
	EventCollaboration = "post.collaboration"
)

// Event is one feed update. Topic is the community the event belongs to.
type Event struct {
	Topic     string          `json:"topic"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Subscription is one consumer's handle on a topic. C never blocks the
// publisher: its buffer holds a single event, and a newer event replaces an
// undelivered one (replace-latest, no queuing). Callers must Cancel when the
// consuming view is torn down or the hub leaks the listener.
type Subscription struct {
	C     <-chan Event
	topic string
	ch    chan Event
	hub   *Hub
	once  sync.Once
}

// Cancel detaches the subscription and closes C.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

// Hub fans events out to per-topic subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe attaches a new listener to topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan Event, 1)
	sub := &Subscription{C: ch, ch: ch, topic: topic, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	return sub
}

// Publish delivers event to every subscriber of its topic. Delivery is
// replace-latest: a subscriber that has not consumed the previous event
// sees only the newest one.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			// Stale undelivered snapshot; supersede it.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of listeners on topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.topic]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.topic)
		}
	}
}
