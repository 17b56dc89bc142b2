// package models defines the data model for the playlist bot
package models

import (
	"fmt"
	"strings"

	"saberlist/internal/shared"
)

// Song is a fully resolved catalog map. A Song either has every field
// populated or it does not exist; resolution never yields a partial record.
type Song struct {
	Hash         string           `json:"hash"`
	Key          string           `json:"key"`
	Name         string           `json:"songName"`
	CoverURL     string           `json:"coverURL"`
	Difficulties SongDifficulties `json:"difficulties"`
}

// SongDifficulties holds the five availability flags for a song's difficulty tiers.
type SongDifficulties struct {
	Easy       bool `json:"easy"`
	Normal     bool `json:"normal"`
	Hard       bool `json:"hard"`
	Expert     bool `json:"expert"`
	ExpertPlus bool `json:"expertPlus"`
}

// Available reports whether the given tier is playable for this song.
func (d SongDifficulties) Available(tier Difficulty) bool {
	switch tier {
	case Easy:
		return d.Easy
	case Normal:
		return d.Normal
	case Hard:
		return d.Hard
	case Expert:
		return d.Expert
	case ExpertPlus:
		return d.ExpertPlus
	default:
		return false
	}
}

// Names returns the available tier names in fixed tier order.
func (d SongDifficulties) Names() []string {
	var names []string
	for _, tier := range Tiers {
		if d.Available(tier) {
			names = append(names, string(tier))
		}
	}
	return names
}

// PlaylistSong is a playlist entry: a resolved song plus, for interactive
// flows, the requester's chosen difficulty.
type PlaylistSong struct {
	Song
	ChosenDifficulty Difficulty `json:"difficulty,omitempty"`
}

// Playlist is the assembled playlist aggregate and the persisted artifact
// schema. The song order is the caller-supplied identifier order.
type Playlist struct {
	Title  string         `json:"playlistTitle"`
	Author string         `json:"playlistAuthor"`
	Image  string         `json:"image,omitempty"`
	Songs  []PlaylistSong `json:"songs"`
}

// Filename derives the artifact filename from the lowercased playlist title.
func (p *Playlist) Filename() string {
	return strings.ToLower(p.Title) + ".bplist"
}

// Validate checks the playlist invariants: a non-empty title that stays
// filesystem-safe after lowercasing, and a non-empty song sequence.
func (p *Playlist) Validate() error {
	if err := shared.ValidateFilename(p.Title); err != nil {
		return fmt.Errorf("invalid playlist title: %w", err)
	}
	if len(p.Songs) == 0 {
		return shared.ErrEmptyPlaylist
	}
	return nil
}
