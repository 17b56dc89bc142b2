// package sessions implements the interactive difficulty-selection protocol:
// short-lived, per-request state machines fed by an external chat-event
// stream through correlation-key-scoped subscriptions.
package sessions

import (
	"context"
	"sync"
)

// CorrelationKey identifies the (channel, requester) pair a session is bound
// to. Inbound chat events are routed to at most one session per key.
type CorrelationKey struct {
	ChannelID string
	AuthorID  string
}

func (k CorrelationKey) String() string {
	return k.ChannelID + ":" + k.AuthorID
}

// Message is one inbound chat event from the external chat collaborator.
// Only the raw text is interpreted, as a single difficulty-tier token.
type Message struct {
	ChannelID string `json:"channel_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
}

// Key returns the correlation key the message belongs to.
func (m Message) Key() CorrelationKey {
	return CorrelationKey{ChannelID: m.ChannelID, AuthorID: m.AuthorID}
}

// Subscription is an explicit handle on the chat-event stream, owned by the
// session that acquired it. Close is idempotent and must be called on every
// terminal path so no stale subscription outlives its session.
type Subscription struct {
	key     CorrelationKey
	ch      chan Message
	once    sync.Once
	onClose func(*Subscription)
}

// Messages returns the stream of events correlated to this subscription's key.
// The channel is closed when the subscription is released.
func (s *Subscription) Messages() <-chan Message {
	return s.ch
}

// Key returns the correlation key this subscription is filtered to.
func (s *Subscription) Key() CorrelationKey {
	return s.key
}

// Close releases the subscription. Safe to call multiple times.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// Gateway is the boundary to the chat-event collaborator: it hands out
// subscriptions filtered to a correlation key.
type Gateway interface {
	Subscribe(key CorrelationKey) (*Subscription, error)
}

// Deliverer is the boundary to the outbound chat collaborator. It receives
// the finalized playlist and any user-facing session notices.
type Deliverer interface {
	// DeliverPlaylist hands the finalized selection to the delivery collaborator.
	DeliverPlaylist(ctx context.Context, result *Result) error

	// Notify sends a user-facing message to the session's channel.
	Notify(ctx context.Context, key CorrelationKey, text string) error
}
