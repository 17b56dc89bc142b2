package sessions

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"saberlist/internal/models"
	"saberlist/internal/shared"
)

// State is the lifecycle state of a difficulty-selection session.
type State int

const (
	AwaitingChoice State = iota
	Complete
	TimedOut
	Cancelled
)

func (s State) String() string {
	switch s {
	case AwaitingChoice:
		return "awaiting_choice"
	case Complete:
		return "complete"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	default:
		return ""
	}
}

// Result is the terminal outcome of a session. On Complete the playlist
// carries one chosen difficulty per song, aligned to the original song order.
type Result struct {
	SessionID string
	Key       CorrelationKey
	State     State
	Playlist  *models.Playlist
}

// SessionOpts contains the dependencies and parameters for a session.
type SessionOpts struct {
	Playlist  *models.Playlist
	Key       CorrelationKey
	Gateway   Gateway
	Deliverer Deliverer
	Deadline  time.Duration // fixed from creation, not renewed by invalid input
	Logger    *log.Logger
}

// Session is a transient, per-request difficulty-selection state machine.
//
// It owns a subscription on the chat-event stream for the lifetime of the
// request and guarantees release on completion, timeout, and cancellation.
// Sessions share no mutable state with each other.
type Session struct {
	id        string
	key       CorrelationKey
	playlist  *models.Playlist
	gateway   Gateway
	deliverer Deliverer
	deadline  time.Duration
	logger    *log.Logger

	mu     sync.Mutex
	state  State
	cursor int
}

// NewSession creates a session in AwaitingChoice for the first song.
func NewSession(opts SessionOpts) *Session {
	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = 120 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	id := shared.GenerateID()

	return &Session{
		id:        id,
		key:       opts.Key,
		playlist:  opts.Playlist,
		gateway:   opts.Gateway,
		deliverer: opts.Deliverer,
		deadline:  deadline,
		logger:    logger.With("session", id, "key", opts.Key.String()),
		state:     AwaitingChoice,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the index of the song currently awaiting a choice.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Run drives the session to a terminal state and returns its result.
//
// The subscription is acquired before the first prompt and released on every
// return path. Events are processed strictly in arrival order; each valid
// choice is attributed to the then-current cursor position. Invalid or
// uncorrelated input is ignored and does not renew the deadline.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	sub, err := s.gateway.Subscribe(s.key)
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	timer := time.NewTimer(s.deadline)
	defer timer.Stop()

	s.prompt(ctx)

	for {
		select {
		case msg, ok := <-sub.Messages():
			if !ok {
				return s.finish(Cancelled), shared.ErrSessionCancelled
			}
			if msg.Key() != s.key {
				continue
			}
			if done := s.applyChoice(ctx, msg.Content); done {
				result := s.finish(Complete)
				if err := s.deliverer.DeliverPlaylist(ctx, result); err != nil {
					s.logger.Error("failed to deliver finalized playlist", "err", err)
				}
				return result, nil
			}

		case <-timer.C:
			s.logger.Info("session deadline elapsed", "cursor", s.Cursor())
			result := s.finish(TimedOut)
			s.notify(ctx, fmt.Sprintf("Difficulty selection for %q expired.", s.playlist.Title))
			return result, shared.ErrSessionTimeout

		case <-ctx.Done():
			return s.finish(Cancelled), shared.ErrSessionCancelled
		}
	}
}

// applyChoice parses raw as a difficulty for the song at the cursor.
// A valid, available tier records the choice and advances the cursor;
// reports whether the last song was just chosen.
func (s *Session) applyChoice(ctx context.Context, raw string) bool {
	s.mu.Lock()
	song := &s.playlist.Songs[s.cursor]

	tier, ok := models.ParseDifficulty(raw)
	if !ok || !song.Difficulties.Available(tier) {
		s.mu.Unlock()
		s.logger.Debug("ignoring invalid difficulty choice", "input", raw, "song", song.Name)
		return false
	}

	song.ChosenDifficulty = tier
	s.cursor++
	done := s.cursor == len(s.playlist.Songs)
	s.mu.Unlock()

	if !done {
		s.prompt(ctx)
	}
	return done
}

// prompt asks the requester for the current song's difficulty.
func (s *Session) prompt(ctx context.Context) {
	s.mu.Lock()
	song := s.playlist.Songs[s.cursor]
	s.mu.Unlock()

	text := fmt.Sprintf("Choose a difficulty for %q (%s)",
		song.Name, strings.Join(song.Difficulties.Names(), ", "))
	s.notify(ctx, text)
}

// notify sends a user-facing message, logging delivery failures.
func (s *Session) notify(ctx context.Context, text string) {
	if err := s.deliverer.Notify(ctx, s.key, text); err != nil {
		s.logger.Warn("failed to notify requester", "err", err)
	}
}

// finish records the terminal state exactly once and builds the result.
func (s *Session) finish(state State) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == AwaitingChoice {
		s.state = state
	}

	return &Result{
		SessionID: s.id,
		Key:       s.key,
		State:     s.state,
		Playlist:  s.playlist,
	}
}
