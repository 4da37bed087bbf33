package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/treasurehunt/internal/hunt"
)

// EventMismatch is published when a submission is rejected. It is not a
// state change so the hunt package has no event for it.
const EventMismatch hunt.EventType = "mismatch"

// SessionEvent is the payload published to session subscribers.
type SessionEvent struct {
	Type      hunt.EventType    `json:"type"`
	Location  int               `json:"location"`
	Challenge *int              `json:"challenge,omitempty"`
	Phase     hunt.Phase        `json:"phase"`
	Kind      hunt.MismatchKind `json:"kind,omitempty"`
}

func eventFrom(ev hunt.Event) SessionEvent {
	return SessionEvent{Type: ev.Type, Location: ev.Location, Challenge: ev.Challenge, Phase: ev.Phase}
}

// Broker is an in-process pub/sub for session events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session. Slow
// subscribers miss events rather than block the publisher.
func (b *Broker) Publish(sessionID string, event SessionEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}
