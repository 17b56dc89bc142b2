package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"saberlist/internal/sessions"
)

// Dispatcher routes an inbound chat event to the session subscribed to its
// correlation key. Satisfied by *sessions.Hub.
type Dispatcher interface {
	Dispatch(msg sessions.Message) bool
	Active() int
}

// EventsHandler accepts chat events pushed by the chat-platform integration.
// Implements the Handler interface for registration with a Router.
type EventsHandler struct {
	hub    Dispatcher
	secret string
}

// NewEventsHandler creates a handler feeding the given dispatcher.
// When secret is non-empty, requests must carry it in X-Gateway-Secret.
func NewEventsHandler(hub Dispatcher, secret string) *EventsHandler {
	return &EventsHandler{hub: hub, secret: secret}
}

// Routes returns the HTTP routes this handler serves.
func (h *EventsHandler) Routes() []string {
	return []string{"/events"}
}

// ServeHTTP handles POST /events.
//
// Accepts a JSON body {channel_id, author_id, content} and dispatches it.
// Always responds 202 for well-formed events, delivered or not, so the chat
// integration never retries events for channels without an active session.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var msg sessions.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return
	}
	if msg.ChannelID == "" || msg.AuthorID == "" {
		http.Error(w, "Event is missing channel or author identity", http.StatusBadRequest)
		return
	}

	delivered := h.hub.Dispatch(msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]bool{"delivered": delivered})
}

// HealthHandler reports server liveness and the active session count.
type HealthHandler struct {
	hub Dispatcher
}

// NewHealthHandler creates a health handler backed by the dispatcher.
func NewHealthHandler(hub Dispatcher) *HealthHandler {
	return &HealthHandler{hub: hub}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":          "ok",
		"active_sessions": h.hub.Active(),
	})
}

// LoggingMiddleware logs each request's method, path, status, and duration.
func LoggingMiddleware(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
