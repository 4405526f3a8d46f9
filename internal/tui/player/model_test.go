package player

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/logging"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/tui/nav"
)

type fakeSession struct {
	state    session.State
	position time.Duration
	length   time.Duration
}

func (f *fakeSession) State() session.State                       { return f.state }
func (f *fakeSession) Progress() (position, length time.Duration) { return f.position, f.length }

type fakeCatalog map[int]data.Track

func (f fakeCatalog) Lookup(id int) (data.Track, bool) {
	t, ok := f[id]
	return t, ok
}

func (f fakeCatalog) Has(id int) bool {
	_, ok := f[id]
	return ok
}

type fakePanel struct{ open bool }

func (f *fakePanel) AddPanelOpen() bool { return f.open }

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func setup(t *testing.T) (*Model, *fakeSession, *fakePanel, *playlist.Store) {
	t.Helper()
	cat := fakeCatalog{1: {ID: 1, Artist: "Alpha", Title: "Morning"}}
	store := playlist.NewStore(cat, logging.Null())
	sess := &fakeSession{
		state:    session.State{Status: session.Playing, TrackID: 1},
		position: 30 * time.Second,
		length:   2 * time.Minute,
	}
	panel := &fakePanel{}
	return NewModel(sess, cat, store, panel), sess, panel, store
}

func TestPlaybackKeys(t *testing.T) {
	m, _, _, _ := setup(t)

	tests := []struct {
		msg      tea.KeyMsg
		expected selection.Command
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, selection.TogglePlayback{}},
		{key("n"), selection.NextTrack{}},
		{tea.KeyMsg{Type: tea.KeyLeft}, selection.PreviousTrack{}},
		{key("a"), selection.ToggleAddPanel{}},
		{tea.KeyMsg{Type: tea.KeyEsc}, selection.Back{}},
	}

	for _, test := range tests {
		_, cmd := m.Update(test.msg)
		if cmd == nil {
			t.Fatalf("Ожидалась команда для %q", test.msg.String())
		}
		got, ok := cmd().(nav.CommandMsg)
		if !ok || got.Command != test.expected {
			t.Errorf("Клавиша %q: ожидалось %#v, получено %#v", test.msg.String(), test.expected, got.Command)
		}
	}
}

func TestAddPanelSelectsPlaylist(t *testing.T) {
	m, _, panel, store := setup(t)
	store.Create("Road")
	gym, _ := store.Create("Gym")
	m.Refresh()

	panel.open = true
	if !strings.Contains(m.View(), "Добавить в плейлист") {
		t.Fatal("Ожидалась панель добавления")
	}

	m.Update(key("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Ожидалась команда добавления")
	}
	got := cmd().(nav.CommandMsg)
	if got.Command != (selection.AddCurrentToPlaylist{PlaylistID: gym}) {
		t.Errorf("Неожиданная команда: %#v", got.Command)
	}

	// Курсор не выходит за пределы списка
	m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("Ожидался курсор 1, получен %d", m.cursor)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, sess, _, _ := setup(t)
	m.Init()

	sess.position = time.Minute
	if _, cmd := m.Update(tickMsg{id: m.tickID - 1}); cmd != nil {
		t.Error("Ожидалось, что устаревший тик будет проигнорирован")
	}
	if m.position != 30*time.Second {
		t.Errorf("Позиция не должна меняться от устаревшего тика: %v", m.position)
	}

	if _, cmd := m.Update(tickMsg{id: m.tickID}); cmd == nil {
		t.Error("Ожидался следующий тик")
	}
	if m.position != time.Minute {
		t.Errorf("Ожидалась позиция 1m, получена %v", m.position)
	}
}

func TestViewShowsErrorWithoutTrack(t *testing.T) {
	m, sess, _, _ := setup(t)
	sess.state = session.State{Status: session.Idle, Err: errBroken}
	m.Refresh()

	if !strings.Contains(m.View(), "broken") {
		t.Error("Ожидалось сообщение об ошибке загрузки")
	}
}

var errBroken = &testError{"broken source"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
