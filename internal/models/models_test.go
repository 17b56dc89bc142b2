package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"saberlist/internal/shared"
)

func TestParseDifficulty(t *testing.T) {
	t.Run("matches tier names case-insensitively", func(t *testing.T) {
		cases := []struct {
			input string
			want  Difficulty
		}{
			{"easy", Easy},
			{"Easy", Easy},
			{"NORMAL", Normal},
			{"hard", Hard},
			{"Expert", Expert},
			{"expertplus", ExpertPlus},
			{"ExpertPlus", ExpertPlus},
			{"  hard  ", Hard},
		}

		for _, tc := range cases {
			got, ok := ParseDifficulty(tc.input)
			if !ok {
				t.Errorf("ParseDifficulty(%q) not recognized", tc.input)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tc.input, got, tc.want)
			}
		}
	})

	t.Run("rejects synonyms and noise", func(t *testing.T) {
		for _, input := range []string{"", "ex+", "expert+", "medium", "e", "1", "easy normal"} {
			if _, ok := ParseDifficulty(input); ok {
				t.Errorf("ParseDifficulty(%q) should not be recognized", input)
			}
		}
	})
}

func TestSongDifficulties(t *testing.T) {
	diffs := SongDifficulties{Easy: true, Hard: true, ExpertPlus: true}

	t.Run("Available reflects flags", func(t *testing.T) {
		if !diffs.Available(Easy) || !diffs.Available(Hard) || !diffs.Available(ExpertPlus) {
			t.Error("expected easy, hard, expertPlus to be available")
		}
		if diffs.Available(Normal) || diffs.Available(Expert) {
			t.Error("expected normal and expert to be unavailable")
		}
		if diffs.Available(Difficulty("medium")) {
			t.Error("unknown tier should never be available")
		}
	})

	t.Run("Names lists available tiers in order", func(t *testing.T) {
		names := diffs.Names()
		want := []string{"easy", "hard", "expertPlus"}
		if len(names) != len(want) {
			t.Fatalf("expected %d names, got %d", len(want), len(names))
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
			}
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("Filename lowercases title", func(t *testing.T) {
		p := &Playlist{Title: "My Mix"}
		if got := p.Filename(); got != "my mix.bplist" {
			t.Errorf("Filename() = %q, want %q", got, "my mix.bplist")
		}
	})

	t.Run("Validate rejects empty song list", func(t *testing.T) {
		p := &Playlist{Title: "My Mix"}
		if err := p.Validate(); !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}
	})

	t.Run("Validate rejects reserved characters in title", func(t *testing.T) {
		p := &Playlist{
			Title: "bad/title",
			Songs: []PlaylistSong{{Song: Song{Name: "x"}}},
		}
		if err := p.Validate(); err == nil {
			t.Error("expected validation error for reserved characters")
		}
	})

	t.Run("artifact JSON uses playlist field names", func(t *testing.T) {
		p := &Playlist{
			Title:  "My Mix",
			Author: "tester",
			Songs: []PlaylistSong{
				{
					Song: Song{
						Hash:         "abc",
						Key:          "123",
						Name:         "Song A",
						CoverURL:     "https://beatsaver.com/cover.jpg",
						Difficulties: SongDifficulties{Expert: true},
					},
					ChosenDifficulty: Expert,
				},
			},
		}

		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		body := string(data)
		for _, field := range []string{
			`"playlistTitle":"My Mix"`,
			`"playlistAuthor":"tester"`,
			`"songName":"Song A"`,
			`"difficulty":"expert"`,
			`"expertPlus":false`,
		} {
			if !strings.Contains(body, field) {
				t.Errorf("artifact JSON missing %s in %s", field, body)
			}
		}
		if strings.Contains(body, `"image"`) {
			t.Error("empty image should be omitted from artifact")
		}
	})

	t.Run("unchosen difficulty is omitted", func(t *testing.T) {
		p := &Playlist{
			Title:  "My Mix",
			Author: "tester",
			Songs:  []PlaylistSong{{Song: Song{Name: "Song A"}}},
		}

		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(data), `"difficulty"`) {
			t.Error("difficulty should be omitted when not chosen")
		}
	})
}
