package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"saberlist/internal/shared"
	"saberlist/internal/tasks"
)

// snapshotter is the optional cache surface for bulk inspection. Both the
// in-memory and the persistent cover cache implement it.
type snapshotter interface {
	Snapshot() map[string]string
	Len() int
}

// CacheList prints every cached cover entry.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	cache, ok := r.covers.(snapshotter)
	if !ok {
		return fmt.Errorf("cover cache does not support listing")
	}

	entries := cache.Snapshot()
	if len(entries) == 0 {
		return r.writePlain("Cover cache is empty.\n")
	}

	return r.writeJSON(entries, true)
}

// CacheLookup prints the cached cover URL for a hash, without resolving.
func (r *Runner) CacheLookup(ctx context.Context, cmd *cli.Command) error {
	hash := cmd.StringArg("hash")
	if hash == "" {
		return fmt.Errorf("%w: map hash", shared.ErrMissingArgument)
	}

	url, ok := r.covers.Lookup(hash)
	if !ok {
		return r.writePlain("Not cached: %s\n", hash)
	}

	return r.writePlain("%s\n", url)
}

// CacheWarm resolves covers for the given hashes, filling the cache.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	hashes := cmd.Args().Slice()
	if len(hashes) == 0 {
		return fmt.Errorf("%w: at least one map hash", shared.ErrMissingArgument)
	}

	r.logger.Info("warming cover cache", "hashes", len(hashes))

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	urls := r.engine.CoverURLs(ctx, progress, hashes, tasks.CoverWarmOpts{
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	<-done

	r.writePlainln("✓ Resolved %d/%d covers", len(urls), len(hashes))
	return nil
}
