// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"saberlist/internal/models"
	"saberlist/internal/sessions"
	"saberlist/internal/shared"
)

// MockCatalog is a test double for [services.Catalog] backed by fixed song
// maps. Lookup counts are tracked so tests can assert cache behavior.
type MockCatalog struct {
	mu     sync.Mutex
	ByKey  map[string]*models.Song
	ByHash map[string]*models.Song
	Err    error

	KeyCalls  int
	HashCalls int
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		ByKey:  map[string]*models.Song{},
		ByHash: map[string]*models.Song{},
	}
}

func (m *MockCatalog) MapByKey(ctx context.Context, key string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeyCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	song, ok := m.ByKey[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, shared.ErrSongNotFound)
	}
	return song, nil
}

func (m *MockCatalog) MapByHash(ctx context.Context, hash string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HashCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	song, ok := m.ByHash[hash]
	if !ok {
		return nil, fmt.Errorf("%s: %w", hash, shared.ErrSongNotFound)
	}
	return song, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// Calls returns the total number of catalog lookups made.
func (m *MockCatalog) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.KeyCalls + m.HashCalls
}

// RecordingSender is a test double for [tasks.FileSender] capturing every
// file and text sent.
type RecordingSender struct {
	mu    sync.Mutex
	Files []string
	Texts []string
	Keys  []sessions.CorrelationKey
	Err   error

	// ExistedAtSend records whether each sent file existed on disk at the
	// time of the send call.
	ExistedAtSend []bool
}

func (s *RecordingSender) SendFile(ctx context.Context, key sessions.CorrelationKey, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	_, statErr := os.Stat(path)
	s.ExistedAtSend = append(s.ExistedAtSend, statErr == nil)
	s.Files = append(s.Files, path)
	s.Keys = append(s.Keys, key)
	return nil
}

func (s *RecordingSender) SendText(ctx context.Context, key sessions.CorrelationKey, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Texts = append(s.Texts, text)
	s.Keys = append(s.Keys, key)
	return nil
}

// SentFiles returns a copy of the sent file paths, safe to call while a
// session goroutine is still delivering.
func (s *RecordingSender) SentFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Files...)
}

// SentTexts returns a copy of the sent texts.
func (s *RecordingSender) SentTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Texts...)
}

// SampleSong builds a song with every difficulty tier available.
func SampleSong(key, name string) *models.Song {
	return &models.Song{
		Hash:     "hash-" + key,
		Key:      key,
		Name:     name,
		CoverURL: "https://beatsaver.com/storage/" + key + ".jpg",
		Difficulties: models.SongDifficulties{
			Easy:       true,
			Normal:     true,
			Hard:       true,
			Expert:     true,
			ExpertPlus: true,
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return data
}

var _ io.Writer = (*FWriter)(nil)
