package sessions

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"saberlist/internal/shared"
)

// subscriptionBuffer bounds how many undelivered events a single session can
// accumulate before further events for its key are dropped.
const subscriptionBuffer = 16

// Hub implements [Gateway] over inbound chat events pushed by a transport
// (e.g. the webhook server). It holds at most one live subscription per
// correlation key; a second Subscribe for the same key is rejected rather
// than superseding the first.
type Hub struct {
	mu     sync.RWMutex
	subs   map[CorrelationKey]*Subscription
	logger *log.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		subs:   make(map[CorrelationKey]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a subscription for the given correlation key.
//
// Returns shared.ErrDuplicateSession if a subscription for the key is
// already live.
func (h *Hub) Subscribe(key CorrelationKey) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subs[key]; exists {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateSession, key)
	}

	sub := &Subscription{
		key:     key,
		ch:      make(chan Message, subscriptionBuffer),
		onClose: h.release,
	}
	h.subs[key] = sub

	return sub, nil
}

// release removes a subscription and closes its channel. Runs under the hub
// lock so no dispatch can race the close.
func (h *Hub) release(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.subs[sub.key]; ok && current == sub {
		delete(h.subs, sub.key)
	}
	close(sub.ch)
}

// Dispatch routes an inbound event to the subscription for its correlation
// key, preserving arrival order per key. Events without a matching
// subscription, and events that would overflow a session's buffer, are
// dropped. Reports whether the event was delivered.
func (h *Hub) Dispatch(msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sub, ok := h.subs[msg.Key()]
	if !ok {
		return false
	}

	select {
	case sub.ch <- msg:
		return true
	default:
		if h.logger != nil {
			h.logger.Warn("dropping chat event, subscription buffer full", "key", msg.Key().String())
		}
		return false
	}
}

// Has reports whether a subscription is live for the key.
func (h *Hub) Has(key CorrelationKey) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.subs[key]
	return ok
}

// Active returns the number of live subscriptions.
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
