package playlists

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playbox/internal/catalog"
	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/logging"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/tui/nav"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestStore(t *testing.T) *playlist.Store {
	t.Helper()
	cat, err := catalog.New([]data.Track{{ID: 1, Title: "One", SourceRef: "a.mp3"}})
	if err != nil {
		t.Fatalf("Ошибка создания каталога: %v", err)
	}
	return playlist.NewStore(cat, logging.Null())
}

func TestKeysProduceCommands(t *testing.T) {
	store := newTestStore(t)
	first, _ := store.Create("Road")
	second, _ := store.Create("Gym")

	m := NewModel(store)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Select(second)

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected tea.Msg
	}{
		{"open", tea.KeyMsg{Type: tea.KeyEnter}, nav.CommandMsg{Command: selection.OpenPlaylist{PlaylistID: second}}},
		{"delete", key("d"), nav.CommandMsg{Command: selection.DeletePlaylist{PlaylistID: second}}},
		{"rename", key("r"), nav.OpenFormMsg{PlaylistID: second, Name: "Gym"}},
		{"new", key("n"), nav.OpenFormMsg{}},
		{"tracks", key("t"), nav.ShowTracksMsg{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, cmd := m.Update(test.msg)
			if cmd == nil {
				t.Fatal("Ожидалась команда")
			}
			if got := cmd(); got != test.expected {
				t.Errorf("Ожидалось %#v, получено %#v", test.expected, got)
			}
		})
	}

	m.Select(first)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := cmd(); got != (nav.CommandMsg{Command: selection.OpenPlaylist{PlaylistID: first}}) {
		t.Errorf("Ожидалось открытие первого плейлиста, получено %#v", got)
	}
}

func TestRefreshFollowsStore(t *testing.T) {
	store := newTestStore(t)
	m := NewModel(store)

	if n := len(m.list.Items()); n != 0 {
		t.Fatalf("Ожидался пустой список, получено %d", n)
	}

	id, _ := store.Create("Road")
	m.Refresh()
	if n := len(m.list.Items()); n != 1 {
		t.Fatalf("Ожидался 1 плейлист, получено %d", n)
	}

	store.Delete(id)
	m.Refresh()
	if n := len(m.list.Items()); n != 0 {
		t.Errorf("Ожидался пустой список после удаления, получено %d", n)
	}

	// Enter на пустом списке ничего не делает
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("Ожидалось отсутствие команды на пустом списке")
	}
}
