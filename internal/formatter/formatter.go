// package formatter generates the persisted playlist artifact and plain-text summaries
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"saberlist/internal/models"
	"saberlist/internal/shared"
)

// ToBPList converts a playlist to its JSON artifact representation.
func ToBPList(playlist *models.Playlist) ([]byte, error) {
	if err := playlist.Validate(); err != nil {
		return nil, err
	}
	return shared.MarshalJSON(playlist, true)
}

// WriteBPList writes the playlist artifact into dir, deriving the filename
// from the lowercased title. Returns the written path.
func WriteBPList(playlist *models.Playlist, dir string) (string, error) {
	data, err := ToBPList(playlist)
	if err != nil {
		return "", fmt.Errorf("failed to generate playlist artifact: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, playlist.Filename())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write playlist artifact: %w", err)
	}

	return path, nil
}

// ExportToText converts a playlist to a plain text summary for CLI display.
func ExportToText(playlist *models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Title))
	buf.WriteString(fmt.Sprintf("Author: %s\n", playlist.Author))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(playlist.Songs)))

	for i, song := range playlist.Songs {
		if song.ChosenDifficulty != "" {
			buf.WriteString(fmt.Sprintf("%d. %s [%s] (%s)\n", i+1, song.Name, song.ChosenDifficulty, song.Key))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, song.Name, song.Key))
		}
	}

	return buf.Bytes()
}

// SongSummary formats a single resolved song for CLI display.
func SongSummary(song *models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Song: %s\n", song.Name))
	buf.WriteString(fmt.Sprintf("Key: %s\n", song.Key))
	buf.WriteString(fmt.Sprintf("Hash: %s\n", song.Hash))
	buf.WriteString(fmt.Sprintf("Cover: %s\n", song.CoverURL))

	buf.WriteString("Difficulties: ")
	names := song.Difficulties.Names()
	if len(names) == 0 {
		buf.WriteString("none")
	}
	for i, name := range names {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(name)
	}
	buf.WriteString("\n")

	return buf.Bytes()
}
