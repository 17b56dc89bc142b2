package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/urfave/cli/v3"

	"saberlist/internal/repositories"
	"saberlist/internal/services"
	"saberlist/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// Persisted cover cache when the database exists (created by `saberlist
	// setup`), in-memory otherwise.
	var covers services.CoverCache = repositories.NewMemoryCoverCache()
	var db *sql.DB
	if _, err := os.Stat(config.Database.Path); err == nil {
		if opened, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(opened, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

			repo := repositories.NewCoverRepository(opened)
			if persistent, err := repositories.NewPersistentCoverCache(repo, logger); err == nil {
				covers = persistent
				db = opened
			} else {
				logger.Warn("falling back to in-memory cover cache", "err", err)
				opened.Close()
			}
		} else {
			logger.Warn("failed to open database", "path", config.Database.Path, "err", err)
		}
	}

	catalog := services.NewBeatSaverService(config.Catalog, covers)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Covers:  covers,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "saberlist",
		Usage:    "Build Beat Saber playlists from BeatSaver maps",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err := app.Run(context.Background(), os.Args)
	if db != nil {
		db.Close()
	}
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
