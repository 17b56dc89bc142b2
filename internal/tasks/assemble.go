package tasks

import (
	"fmt"

	"saberlist/internal/models"
	"saberlist/internal/shared"
)

// Assemble validates a batch of resolved songs and builds the playlist
// aggregate. Pure function: no I/O, no caching.
//
// The validation order is user-facing: an unresolved entry is reported before
// an empty batch, and both are terminal. No partial playlist is ever produced.
func Assemble(songs []*models.Song, title, image, author string) (*models.Playlist, error) {
	for _, song := range songs {
		if song == nil {
			return nil, shared.ErrInvalidPlaylist
		}
	}

	if len(songs) == 0 {
		return nil, shared.ErrEmptyPlaylist
	}

	if err := shared.ValidateFilename(title); err != nil {
		return nil, fmt.Errorf("invalid playlist title: %w", err)
	}

	entries := make([]models.PlaylistSong, len(songs))
	for i, song := range songs {
		entries[i] = models.PlaylistSong{Song: *song}
	}

	return &models.Playlist{
		Title:  title,
		Author: author,
		Image:  image,
		Songs:  entries,
	}, nil
}
