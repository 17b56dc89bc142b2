package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"saberlist/internal/formatter"
	"saberlist/internal/sessions"
	"saberlist/internal/shared"
)

// FileSender is the outbound chat-platform boundary: it transfers a file or
// a text message into the requester's channel.
type FileSender interface {
	SendFile(ctx context.Context, key sessions.CorrelationKey, path string) error
	SendText(ctx context.Context, key sessions.CorrelationKey, text string) error
}

// ArtifactDeliverer implements [sessions.Deliverer] by writing the playlist
// artifact to disk, handing it to the chat collaborator, and removing it.
// The artifact is transient; only the delivered copy survives.
type ArtifactDeliverer struct {
	dir    string
	sender FileSender
	logger *log.Logger
}

// NewArtifactDeliverer creates a deliverer writing artifacts into dir.
func NewArtifactDeliverer(dir string, sender FileSender, logger *log.Logger) *ArtifactDeliverer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ArtifactDeliverer{dir: dir, sender: sender, logger: logger}
}

// DeliverPlaylist writes, sends, and removes the finalized playlist artifact.
func (d *ArtifactDeliverer) DeliverPlaylist(ctx context.Context, result *sessions.Result) error {
	path, err := formatter.WriteBPList(result.Playlist, d.dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			d.logger.Warn("failed to remove transient artifact", "path", path, "err", err)
		}
	}()

	if err := d.sender.SendFile(ctx, result.Key, path); err != nil {
		return fmt.Errorf("failed to deliver playlist artifact: %w", err)
	}

	return nil
}

// Notify forwards a user-facing message to the requester's channel.
func (d *ArtifactDeliverer) Notify(ctx context.Context, key sessions.CorrelationKey, text string) error {
	return d.sender.SendText(ctx, key, text)
}
