package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"saberlist/internal/server"
	"saberlist/internal/sessions"
	"saberlist/internal/tasks"
)

// Serve runs the chat-event webhook server with the session hub.
//
// Inbound chat events arrive on POST /events and are routed to live
// difficulty-selection sessions; POST /sessions starts a new session. When
// no outbound callback URL is configured, deliveries go to stdout instead of
// the chat integration.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	gateway := r.config.Gateway
	hub := sessions.NewHub(r.logger)

	var sender tasks.FileSender
	if gateway.OutboundURL != "" {
		sender = server.NewWebhookSender(gateway.OutboundURL, gateway.Secret)
	} else {
		r.logger.Warn("gateway.outbound_url not configured, deliveries print to stdout")
		sender = &consoleSender{output: r.output}
	}

	deliverer := tasks.NewArtifactDeliverer(r.config.Playlist.OutputDir, sender, r.logger)

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(server.NewEventsHandler(hub, gateway.Secret))
	router.Handler(server.NewHealthHandler(hub))
	router.Handler(server.NewSessionsHandler(hub, r.engine, deliverer, r.config.Session.Deadline(), gateway.Secret, r.logger))

	srv := &http.Server{
		Addr:              gateway.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("gateway server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("gateway server failed: %w", err)
	case <-notifyCtx.Done():
	}

	r.logger.Info("shutting down gateway server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("gateway shutdown failed: %w", err)
	}

	return nil
}

// consoleSender prints deliveries to the CLI output. Stands in for the chat
// integration when no outbound callback is configured.
type consoleSender struct {
	output io.Writer
}

func (s *consoleSender) SendText(ctx context.Context, key sessions.CorrelationKey, text string) error {
	_, err := fmt.Fprintf(s.output, "[%s] %s\n", key.String(), text)
	return err
}

func (s *consoleSender) SendFile(ctx context.Context, key sessions.CorrelationKey, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	_, err = fmt.Fprintf(s.output, "[%s] %s:\n%s\n", key.String(), filepath.Base(path), data)
	return err
}
