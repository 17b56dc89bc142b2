// package tasks implements the playlist build workflows.
//
// The core abstraction is BuildEngine, which resolves identifier batches
// against the catalog, assembles playlists, and starts interactive
// difficulty-selection sessions. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"saberlist/internal/models"
	"saberlist/internal/services"
	"saberlist/internal/sessions"
	"saberlist/internal/shared"
)

// BuildEngine orchestrates identifier resolution and playlist assembly.
type BuildEngine struct {
	catalog services.Catalog
	covers  services.CoverCache
	author  string
	logger  *log.Logger
}

// NewBuildEngine creates a new BuildEngine with the provided dependencies.
func NewBuildEngine(catalog services.Catalog, covers services.CoverCache, author string, logger *log.Logger) *BuildEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BuildEngine{
		catalog: catalog,
		covers:  covers,
		author:  author,
		logger:  logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BuildEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Build resolves each identifier in order and assembles the playlist.
//
// Resolution failures do not abort the batch: the failed position is kept as
// an absent entry so assembly fails with the invalid-identifier message.
// Transport faults degrade to the same outcome but are logged distinctly.
func (e *BuildEngine) Build(ctx context.Context, progress chan<- ProgressUpdate, ids []string, title, image string) (*models.Playlist, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("catalog not initialized")
	}

	songs := make([]*models.Song, len(ids))
	for i, id := range ids {
		e.sendProgress(progress, resolvingUpdate(i+1, len(ids), id))

		song, err := e.catalog.MapByKey(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrCatalogUnavailable) {
				e.logger.Error("catalog request failed", "key", id, "err", err)
			} else {
				e.logger.Info("identifier did not resolve", "key", id)
			}
			e.sendProgress(progress, resolveFailedUpdate(i+1, len(ids), id, err))
			continue
		}

		songs[i] = song
		e.sendProgress(progress, resolvedUpdate(i+1, len(ids), song.Name))
	}

	e.sendProgress(progress, assemblingUpdate(title, len(songs)))
	return Assemble(songs, title, image, e.author)
}

// Recruit builds the playlist and runs a difficulty-selection session bound
// to the originating correlation key. Blocks until the session reaches a
// terminal state.
func (e *BuildEngine) Recruit(
	ctx context.Context,
	gateway sessions.Gateway,
	deliverer sessions.Deliverer,
	deadline time.Duration,
	ids []string,
	title, image string,
	key sessions.CorrelationKey,
) (*sessions.Result, error) {
	playlist, err := e.Build(ctx, nil, ids, title, image)
	if err != nil {
		return nil, err
	}

	session := sessions.NewSession(sessions.SessionOpts{
		Playlist:  playlist,
		Key:       key,
		Gateway:   gateway,
		Deliverer: deliverer,
		Deadline:  deadline,
		Logger:    e.logger,
	})

	return session.Run(ctx)
}

// CoverWarmOpts configures concurrent batch cover resolution.
type CoverWarmOpts struct {
	NumWorkers int // Concurrent workers (default: 4)
}

// CoverURLs returns the cover URL for each hash, hitting the cache first and
// falling back to a by-hash catalog resolution on miss. This is the light
// path for workflows that already know hashes and only need artwork.
//
// Misses are fetched concurrently by a bounded worker pool; cache writes are
// safe under concurrent access and unresolvable hashes are skipped.
func (e *BuildEngine) CoverURLs(ctx context.Context, progress chan<- ProgressUpdate, hashes []string, opts CoverWarmOpts) map[string]string {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	urls := make(map[string]string, len(hashes))
	var (
		mu     sync.Mutex
		misses []string
	)

	for _, hash := range hashes {
		if e.covers != nil {
			if url, ok := e.covers.Lookup(hash); ok {
				urls[hash] = url
				continue
			}
		}
		misses = append(misses, hash)
	}

	jobs := make(chan string, len(misses))
	for _, hash := range misses {
		jobs <- hash
	}
	close(jobs)

	var wg sync.WaitGroup
	completed := 0
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for hash := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				mu.Lock()
				completed++
				step := completed
				mu.Unlock()
				e.sendProgress(progress, warmingCoverUpdate(step, len(misses), hash))

				song, err := e.catalog.MapByHash(ctx, hash)
				if err != nil {
					e.logger.Info("cover unavailable", "hash", hash, "err", err)
					continue
				}

				mu.Lock()
				urls[hash] = song.CoverURL
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return urls
}
