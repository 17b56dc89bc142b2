package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"saberlist/internal/sessions"
	"saberlist/internal/tasks"
	tu "saberlist/internal/testing"
)

func newSessionsFixture(t *testing.T, secret string) (*SessionsHandler, *sessions.Hub, *tu.MockCatalog, *tu.RecordingSender) {
	t.Helper()

	catalog := tu.NewMockCatalog()
	engine := tasks.NewBuildEngine(catalog, nil, "tester", nil)
	hub := sessions.NewHub(nil)
	sender := &tu.RecordingSender{}
	deliverer := tasks.NewArtifactDeliverer(t.TempDir(), sender, nil)

	handler := NewSessionsHandler(hub, engine, deliverer, 2*time.Second, secret, nil)
	return handler, hub, catalog, sender
}

func postSession(handler *SessionsHandler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body)))
	return rec
}

func TestSessionsHandler(t *testing.T) {
	key := sessions.CorrelationKey{ChannelID: "chan", AuthorID: "user"}

	t.Run("accepted session runs to completion", func(t *testing.T) {
		handler, hub, catalog, sender := newSessionsFixture(t, "")
		catalog.ByKey["abc123"] = tu.SampleSong("abc123", "Song A")

		rec := postSession(handler, `{"channel_id":"chan","author_id":"user","title":"My Mix","ids":["abc123"]}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}

		deadline := time.Now().Add(2 * time.Second)
		for !hub.Has(key) {
			if time.Now().After(deadline) {
				t.Fatal("session never subscribed")
			}
			time.Sleep(time.Millisecond)
		}

		hub.Dispatch(sessions.Message{ChannelID: "chan", AuthorID: "user", Content: "expert"})

		for len(sender.SentFiles()) == 0 {
			if time.Now().After(deadline) {
				t.Fatal("playlist never delivered")
			}
			time.Sleep(time.Millisecond)
		}
	})

	t.Run("build failure is reported to the requester", func(t *testing.T) {
		handler, _, _, sender := newSessionsFixture(t, "")

		rec := postSession(handler, `{"channel_id":"chan","author_id":"user","title":"My Mix","ids":["nope"]}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}

		deadline := time.Now().Add(2 * time.Second)
		for len(sender.SentTexts()) == 0 {
			if time.Now().After(deadline) {
				t.Fatal("build failure never reported")
			}
			time.Sleep(time.Millisecond)
		}
		if texts := sender.SentTexts(); !strings.Contains(texts[0], "invalid") {
			t.Errorf("unexpected failure notice: %s", texts[0])
		}
	})

	t.Run("live key is rejected with conflict", func(t *testing.T) {
		handler, hub, _, _ := newSessionsFixture(t, "")

		sub, err := hub.Subscribe(key)
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
		defer sub.Close()

		rec := postSession(handler, `{"channel_id":"chan","author_id":"user","title":"My Mix","ids":["abc123"]}`)
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("validation failures are rejected", func(t *testing.T) {
		handler, _, _, _ := newSessionsFixture(t, "")

		cases := map[string]string{
			"not json":        "nope",
			"missing channel": `{"author_id":"user","title":"My Mix","ids":["a"]}`,
			"missing author":  `{"channel_id":"chan","title":"My Mix","ids":["a"]}`,
			"unsafe title":    `{"channel_id":"chan","author_id":"user","title":"a/b","ids":["a"]}`,
			"empty title":     `{"channel_id":"chan","author_id":"user","ids":["a"]}`,
			"no identifiers":  `{"channel_id":"chan","author_id":"user","title":"My Mix","ids":[]}`,
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				if rec := postSession(handler, body); rec.Code != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", rec.Code)
				}
			})
		}
	})

	t.Run("secret is enforced", func(t *testing.T) {
		handler, _, _, _ := newSessionsFixture(t, "hunter2")

		rec := postSession(handler, `{"channel_id":"chan","author_id":"user","title":"My Mix","ids":["a"]}`)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("non-POST is rejected", func(t *testing.T) {
		handler, _, _, _ := newSessionsFixture(t, "")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
