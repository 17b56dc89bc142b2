package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"saberlist/internal/sessions"
)

// WebhookSender implements the outbound chat boundary over HTTP: messages and
// playlist files are posted to the chat integration's callback API.
//
// POST {base}/messages with {channel_id, author_id, content}
// POST {base}/files    as multipart with channel_id, author_id, file
type WebhookSender struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewWebhookSender creates a sender posting to baseURL. When secret is
// non-empty it is attached to every request as X-Gateway-Secret.
func NewWebhookSender(baseURL, secret string) *WebhookSender {
	return &WebhookSender{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendText posts a text message to the requester's channel.
func (s *WebhookSender) SendText(ctx context.Context, key sessions.CorrelationKey, text string) error {
	payload, err := json.Marshal(map[string]string{
		"channel_id": key.ChannelID,
		"author_id":  key.AuthorID,
		"content":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal outbound message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create outbound request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req)
}

// SendFile posts the file at path to the requester's channel as a multipart
// upload.
func (s *WebhookSender) SendFile(ctx context.Context, key sessions.CorrelationKey, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open outbound file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("channel_id", key.ChannelID); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.WriteField("author_id", key.AuthorID); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read outbound file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/files", &body)
	if err != nil {
		return fmt.Errorf("failed to create outbound request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return s.do(req)
}

func (s *WebhookSender) do(req *http.Request) error {
	if s.secret != "" {
		req.Header.Set("X-Gateway-Secret", s.secret)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("outbound request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("outbound request rejected: status %d", resp.StatusCode)
	}

	return nil
}
