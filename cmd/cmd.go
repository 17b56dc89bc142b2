// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles config and database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config file, initialize database, and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// songCommand handles single-map catalog lookups
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Resolve a single map against the catalog",
		Commands: []*cli.Command{
			{
				Name:  "key",
				Usage: "Resolve a map by its catalog key",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "key",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongByKey,
			},
			{
				Name:  "hash",
				Usage: "Resolve a map by its content hash",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "hash",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongByHash,
			},
		},
	}
}

// playlistCommand handles playlist assembly
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlist",
		Usage: "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "Resolve map keys and write a .bplist playlist",
				ArgsUsage: "key [key ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Playlist title (also determines the filename)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to a cover image to embed",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to playlist.output_dir)",
					},
					&cli.BoolFlag{
						Name:  "text",
						Usage: "Print a text summary after writing",
					},
				},
				Action: r.PlaylistBuild,
			},
		},
	}
}

// cacheCommand handles cover cache operations
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cover cache operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all cached cover entries",
				Action: r.CacheList,
			},
			{
				Name:  "lookup",
				Usage: "Look up the cached cover URL for a hash",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "hash",
					},
				},
				Action: r.CacheLookup,
			},
			{
				Name:      "warm",
				Usage:     "Resolve covers for hashes, filling the cache",
				ArgsUsage: "hash [hash ...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent catalog workers",
						Value: 4,
					},
				},
				Action: r.CacheWarm,
			},
		},
	}
}

// serveCommand runs the chat-event gateway server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the chat-event webhook server with the session hub",
		Action: r.Serve,
	}
}

// tuiCommand runs the local interactive difficulty picker.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive"},
		Usage:     "Build a playlist and pick difficulties interactively",
		ArgsUsage: "key [key ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Playlist title (also determines the filename)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "Path to a cover image to embed",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (defaults to playlist.output_dir)",
			},
		},
		Action: r.TUI,
	}
}
