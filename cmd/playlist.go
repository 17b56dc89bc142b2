package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"saberlist/internal/formatter"
	"saberlist/internal/models"
	"saberlist/internal/shared"
	"saberlist/internal/tasks"
)

// PlaylistBuild resolves the given map keys and writes the playlist artifact.
func (r *Runner) PlaylistBuild(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return shared.ErrEmptyPlaylist
	}

	image, err := loadImage(cmd.String("image"))
	if err != nil {
		return err
	}

	r.logger.Info("building playlist", "title", title, "songs", len(ids))

	playlist, err := r.buildWithProgress(ctx, ids, title, image)
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Playlist.OutputDir
	}

	path, err := formatter.WriteBPList(playlist, outputDir)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Wrote %s (%d songs)", path, len(playlist.Songs))

	if cmd.Bool("text") {
		if _, err := r.output.Write(formatter.ExportToText(playlist)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return nil
}

// buildWithProgress runs the engine build while streaming progress messages
// to the CLI output.
func (r *Runner) buildWithProgress(ctx context.Context, ids []string, title, image string) (*models.Playlist, error) {
	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	playlist, err := r.engine.Build(ctx, progress, ids, title, image)
	close(progress)
	<-done

	return playlist, err
}

// loadImage reads an image file and returns its base64 encoding for the
// playlist artifact. An empty path yields an empty image.
func loadImage(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
