package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"saberlist/internal/formatter"
	"saberlist/internal/shared"
	"saberlist/internal/ui"
)

// TUI builds a playlist and launches the interactive difficulty picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return shared.ErrEmptyPlaylist
	}

	image, err := loadImage(cmd.String("image"))
	if err != nil {
		return err
	}

	playlist, err := r.buildWithProgress(ctx, ids, title, image)
	if err != nil {
		return err
	}

	if err := ui.Run(playlist); err != nil {
		if errors.Is(err, shared.ErrSessionCancelled) {
			return r.writePlain("Selection cancelled, no playlist written.\n")
		}
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

	return r.writePlainln("✓ Wrote %s (%d songs)", path, len(playlist.Songs))
}
