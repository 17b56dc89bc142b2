package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"saberlist/internal/sessions"
	"saberlist/internal/shared"
)

// SessionStarter builds a playlist and runs a difficulty-selection session
// bound to a correlation key. Satisfied by *tasks.BuildEngine.
type SessionStarter interface {
	Recruit(
		ctx context.Context,
		gateway sessions.Gateway,
		deliverer sessions.Deliverer,
		deadline time.Duration,
		ids []string,
		title, image string,
		key sessions.CorrelationKey,
	) (*sessions.Result, error)
}

// SessionGateway is the hub surface the session-start endpoint needs: handing
// out subscriptions plus a liveness check for duplicate rejection.
type SessionGateway interface {
	sessions.Gateway
	Has(key sessions.CorrelationKey) bool
}

// sessionRequest is the JSON body of POST /sessions.
type sessionRequest struct {
	ChannelID string   `json:"channel_id"`
	AuthorID  string   `json:"author_id"`
	Title     string   `json:"title"`
	Image     string   `json:"image"`
	IDs       []string `json:"ids"`
}

// SessionsHandler starts difficulty-selection sessions on behalf of the chat
// integration. The session runs in its own goroutine; the response only
// acknowledges acceptance.
type SessionsHandler struct {
	gateway   SessionGateway
	starter   SessionStarter
	deliverer sessions.Deliverer
	deadline  time.Duration
	secret    string
	logger    *log.Logger
}

// NewSessionsHandler creates a session-start handler.
func NewSessionsHandler(
	gateway SessionGateway,
	starter SessionStarter,
	deliverer sessions.Deliverer,
	deadline time.Duration,
	secret string,
	logger *log.Logger,
) *SessionsHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SessionsHandler{
		gateway:   gateway,
		starter:   starter,
		deliverer: deliverer,
		deadline:  deadline,
		secret:    secret,
		logger:    logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *SessionsHandler) Routes() []string {
	return []string{"/sessions"}
}

// ServeHTTP handles POST /sessions.
//
// Validates the request synchronously (identity, title, identifiers, no live
// session for the key) and runs the build + selection session asynchronously.
// The duplicate check here is advisory; the hub enforces it authoritatively
// at Subscribe time.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.secret != "" {
		provided := r.Header.Get("X-Gateway-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid session payload", http.StatusBadRequest)
		return
	}
	if req.ChannelID == "" || req.AuthorID == "" {
		http.Error(w, "Session is missing channel or author identity", http.StatusBadRequest)
		return
	}
	if err := shared.ValidateFilename(req.Title); err != nil {
		http.Error(w, "Invalid playlist title", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, shared.ErrEmptyPlaylist.Error(), http.StatusBadRequest)
		return
	}

	key := sessions.CorrelationKey{ChannelID: req.ChannelID, AuthorID: req.AuthorID}
	if h.gateway.Has(key) {
		http.Error(w, shared.ErrDuplicateSession.Error(), http.StatusConflict)
		return
	}

	go h.run(req, key)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]bool{"accepted": true})
}

// run drives one session to completion, reporting build failures back to the
// requester's channel.
func (h *SessionsHandler) run(req sessionRequest, key sessions.CorrelationKey) {
	ctx := context.Background()

	result, err := h.starter.Recruit(ctx, h.gateway, h.deliverer, h.deadline, req.IDs, req.Title, req.Image, key)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrInvalidPlaylist), errors.Is(err, shared.ErrEmptyPlaylist):
			if notifyErr := h.deliverer.Notify(ctx, key, err.Error()); notifyErr != nil {
				h.logger.Warn("failed to report build failure", "key", key.String(), "err", notifyErr)
			}
		case errors.Is(err, shared.ErrSessionTimeout), errors.Is(err, shared.ErrSessionCancelled):
			// Terminal session outcomes already notified by the session itself.
		}
		h.logger.Info("session ended without completion", "key", key.String(), "err", err)
		return
	}

	h.logger.Info("session complete", "key", key.String(), "session", result.SessionID)
}
