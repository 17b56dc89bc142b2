package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"saberlist/internal/formatter"
	"saberlist/internal/models"
	"saberlist/internal/shared"
)

// SongByKey resolves a single map by catalog key and prints it.
func (r *Runner) SongByKey(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: map key", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving map", "key", key)

	song, err := r.catalog.MapByKey(ctx, key)
	if err != nil {
		return err
	}

	return r.printSong(cmd, song)
}

// SongByHash resolves a single map by content hash and prints it.
func (r *Runner) SongByHash(ctx context.Context, cmd *cli.Command) error {
	hash := cmd.StringArg("hash")
	if hash == "" {
		return fmt.Errorf("%w: map hash", shared.ErrMissingArgument)
	}

	r.logger.Info("resolving map", "hash", hash)

	song, err := r.catalog.MapByHash(ctx, hash)
	if err != nil {
		return err
	}

	return r.printSong(cmd, song)
}

func (r *Runner) printSong(cmd *cli.Command, song *models.Song) error {
	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}

	if _, err := r.output.Write(formatter.SongSummary(song)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
