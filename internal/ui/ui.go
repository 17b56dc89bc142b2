// package ui contains the interactive terminal difficulty picker.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"saberlist/internal/models"
	"saberlist/internal/shared"
)

// Model walks the user through each song in a playlist, picking one of the
// song's available difficulty tiers before moving to the next.
type Model struct {
	playlist *models.Playlist
	keys     keyMap

	songIdx   int
	choiceIdx int
	choices   []models.Difficulty

	done    bool
	aborted bool
}

// NewModel creates a picker for the given playlist. The playlist's songs are
// updated in place as choices are made.
func NewModel(playlist *models.Playlist) Model {
	m := Model{
		playlist: playlist,
		keys:     newKeyMap(),
	}
	m.loadChoices()
	return m
}

// loadChoices advances past songs with no selectable tiers and populates the
// choice list for the current song.
func (m *Model) loadChoices() {
	for m.songIdx < len(m.playlist.Songs) {
		song := m.playlist.Songs[m.songIdx]

		var choices []models.Difficulty
		for _, tier := range models.Tiers {
			if song.Difficulties.Available(tier) {
				choices = append(choices, tier)
			}
		}

		if len(choices) > 0 {
			m.choices = choices
			m.choiceIdx = 0
			return
		}
		m.songIdx++
	}
	m.choices = nil
	m.done = true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.up):
		if m.choiceIdx > 0 {
			m.choiceIdx--
		}
	case key.Matches(keyMsg, m.keys.down):
		if m.choiceIdx < len(m.choices)-1 {
			m.choiceIdx++
		}
	case key.Matches(keyMsg, m.keys.enter):
		if m.done {
			return m, tea.Quit
		}
		m.playlist.Songs[m.songIdx].ChosenDifficulty = m.choices[m.choiceIdx]
		m.songIdx++
		m.loadChoices()
		if m.done {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.playlist.Title))
	b.WriteString("\n")

	if m.done {
		b.WriteString(doneStyle.Render("All difficulties chosen."))
		b.WriteString("\n")
		return b.String()
	}

	song := m.playlist.Songs[m.songIdx]
	b.WriteString(songStyle.Render(song.Name))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		if i == m.choiceIdx {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedChoiceStyle.Render(string(choice)))
		} else {
			b.WriteString(choiceStyle.Render(string(choice)))
		}
		b.WriteString("\n")
	}

	b.WriteString(progressStyle.Render(
		fmt.Sprintf("song %d/%d · ↑/↓ move · enter choose · q quit",
			m.songIdx+1, len(m.playlist.Songs)),
	))
	b.WriteString("\n")

	return b.String()
}

// Run launches the picker and blocks until every song has a chosen
// difficulty or the user quits. Returns shared.ErrSessionCancelled when the
// user quits before finishing.
func Run(playlist *models.Playlist) error {
	program := tea.NewProgram(NewModel(playlist))

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("difficulty picker failed: %w", err)
	}

	if model, ok := final.(Model); ok && model.aborted {
		return shared.ErrSessionCancelled
	}

	return nil
}
