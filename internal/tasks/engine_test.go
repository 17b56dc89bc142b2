package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"saberlist/internal/models"
	"saberlist/internal/repositories"
	"saberlist/internal/sessions"
	"saberlist/internal/shared"
	tu "saberlist/internal/testing"
)

func TestBuildEngine(t *testing.T) {
	t.Run("Build resolves keys in order", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		catalog.ByKey["abc123"] = tu.SampleSong("abc123", "Song A")
		catalog.ByKey["def456"] = tu.SampleSong("def456", "Song B")

		engine := NewBuildEngine(catalog, nil, "tester", nil)

		playlist, err := engine.Build(context.Background(), nil, []string{"abc123", "def456"}, "My Mix", "")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		if len(playlist.Songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(playlist.Songs))
		}
		if playlist.Songs[0].Key != "abc123" || playlist.Songs[1].Key != "def456" {
			t.Error("identifier order not preserved")
		}
		if playlist.Filename() != "my mix.bplist" {
			t.Errorf("unexpected filename: %s", playlist.Filename())
		}
	})

	t.Run("unknown identifier fails the whole batch", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		catalog.ByKey["abc123"] = tu.SampleSong("abc123", "Song A")

		engine := NewBuildEngine(catalog, nil, "tester", nil)

		_, err := engine.Build(context.Background(), nil, []string{"abc123", "nope"}, "My Mix", "")
		if !errors.Is(err, shared.ErrInvalidPlaylist) {
			t.Errorf("expected ErrInvalidPlaylist, got %v", err)
		}
	})

	t.Run("catalog outage degrades to the invalid-identifier failure", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		catalog.Err = shared.ErrCatalogUnavailable

		engine := NewBuildEngine(catalog, nil, "tester", nil)

		_, err := engine.Build(context.Background(), nil, []string{"abc123"}, "My Mix", "")
		if !errors.Is(err, shared.ErrInvalidPlaylist) {
			t.Errorf("expected ErrInvalidPlaylist, got %v", err)
		}
	})

	t.Run("Build reports progress without blocking", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		catalog.ByKey["abc123"] = tu.SampleSong("abc123", "Song A")

		engine := NewBuildEngine(catalog, nil, "tester", nil)

		progress := make(chan ProgressUpdate, 16)
		if _, err := engine.Build(context.Background(), progress, []string{"abc123"}, "My Mix", ""); err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 3 {
			t.Fatalf("expected resolve and assemble updates, got %d", len(phases))
		}
		if phases[len(phases)-1] != AssemblePlaylist {
			t.Errorf("expected final update to be assembly, got %s", phases[len(phases)-1])
		}

		// A full, unread channel must not block the build.
		full := make(chan ProgressUpdate)
		if _, err := engine.Build(context.Background(), full, []string{"abc123"}, "My Mix", ""); err != nil {
			t.Fatalf("Build with blocked channel failed: %v", err)
		}
	})

	t.Run("CoverURLs hits cache before catalog", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		cache := repositories.NewMemoryCoverCache()
		cache.Put("hash-a", "https://beatsaver.com/a.jpg")

		engine := NewBuildEngine(catalog, cache, "tester", nil)

		urls := engine.CoverURLs(context.Background(), nil, []string{"hash-a"}, CoverWarmOpts{})
		if urls["hash-a"] != "https://beatsaver.com/a.jpg" {
			t.Errorf("unexpected URL: %s", urls["hash-a"])
		}
		if catalog.Calls() != 0 {
			t.Errorf("cached hash should hit no network, got %d calls", catalog.Calls())
		}
	})

	t.Run("CoverURLs resolves misses and skips unknown hashes", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		song := tu.SampleSong("abc123", "Song A")
		catalog.ByHash[song.Hash] = song

		cache := repositories.NewMemoryCoverCache()
		engine := NewBuildEngine(catalog, cache, "tester", nil)

		urls := engine.CoverURLs(context.Background(), nil, []string{song.Hash, "unknown"}, CoverWarmOpts{NumWorkers: 2})

		if urls[song.Hash] != song.CoverURL {
			t.Errorf("unexpected URL: %s", urls[song.Hash])
		}
		if _, ok := urls["unknown"]; ok {
			t.Error("unknown hash should be skipped")
		}
		if catalog.HashCalls != 2 {
			t.Errorf("expected 2 catalog calls, got %d", catalog.HashCalls)
		}
	})
}

func TestRecruit(t *testing.T) {
	t.Run("build then interactive selection delivers the artifact", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		catalog.ByKey["abc123"] = tu.SampleSong("abc123", "Song A")

		engine := NewBuildEngine(catalog, nil, "tester", nil)
		hub := sessions.NewHub(nil)
		sender := &tu.RecordingSender{}
		deliverer := NewArtifactDeliverer(t.TempDir(), sender, nil)
		key := sessions.CorrelationKey{ChannelID: "chan", AuthorID: "user"}

		resultCh := make(chan *sessions.Result, 1)
		errCh := make(chan error, 1)
		go func() {
			result, err := engine.Recruit(context.Background(), hub, deliverer, 2*time.Second, []string{"abc123"}, "My Mix", "", key)
			resultCh <- result
			errCh <- err
		}()

		deadline := time.Now().Add(2 * time.Second)
		for !hub.Has(key) {
			if time.Now().After(deadline) {
				t.Fatal("session never subscribed")
			}
			time.Sleep(time.Millisecond)
		}

		hub.Dispatch(sessions.Message{ChannelID: "chan", AuthorID: "user", Content: "expert"})

		result := <-resultCh
		if err := <-errCh; err != nil {
			t.Fatalf("Recruit failed: %v", err)
		}

		if result.State != sessions.Complete {
			t.Errorf("expected Complete, got %s", result.State)
		}
		if result.Playlist.Songs[0].ChosenDifficulty != models.Expert {
			t.Errorf("unexpected choice: %s", result.Playlist.Songs[0].ChosenDifficulty)
		}
		if len(sender.Files) != 1 {
			t.Fatalf("expected one delivered file, got %d", len(sender.Files))
		}
		if !sender.ExistedAtSend[0] {
			t.Error("artifact should exist at send time")
		}
		tu.AssertFileAbsent(t, sender.Files[0])
	})

	t.Run("build failure aborts before any session starts", func(t *testing.T) {
		catalog := tu.NewMockCatalog()
		engine := NewBuildEngine(catalog, nil, "tester", nil)
		hub := sessions.NewHub(nil)
		deliverer := NewArtifactDeliverer(t.TempDir(), &tu.RecordingSender{}, nil)
		key := sessions.CorrelationKey{ChannelID: "chan", AuthorID: "user"}

		_, err := engine.Recruit(context.Background(), hub, deliverer, time.Second, []string{"nope"}, "My Mix", "", key)
		if !errors.Is(err, shared.ErrInvalidPlaylist) {
			t.Errorf("expected ErrInvalidPlaylist, got %v", err)
		}
		if hub.Active() != 0 {
			t.Error("no subscription should be live after a build failure")
		}
	})
}
