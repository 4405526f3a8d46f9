// Package playlistview содержит модель экрана содержимого плейлиста для TUI
package playlistview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/tui/nav"
	"github.com/hazadus/go-playbox/internal/tui/tracklist"
)

var (
	helpStyle  = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	emptyStyle = lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("241"))
)

type snapshotSource interface {
	Snapshot() *playlist.Snapshot
}

type trackLookup interface {
	Lookup(id int) (data.Track, bool)
}

// Model показывает треки одного плейлиста в его порядке
type Model struct {
	store      snapshotSource
	catalog    trackLookup
	playlistID int
	exists     bool
	list       list.Model
}

// NewModel создает модель для плейлиста
func NewModel(store snapshotSource, catalog trackLookup, playlistID int) *Model {
	m := &Model{
		store:      store,
		catalog:    catalog,
		playlistID: playlistID,
		list:       tracklist.NewList("", nil),
	}
	m.Refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// PlaylistID возвращает ID показываемого плейлиста
func (m *Model) PlaylistID() int {
	return m.playlistID
}

// Exists сообщает, существует ли плейлист в последнем снимке
func (m *Model) Exists() bool {
	return m.exists
}

// Refresh перечитывает плейлист из снимка хранилища
func (m *Model) Refresh() {
	p, ok := m.store.Snapshot().Get(m.playlistID)
	m.exists = ok
	if !ok {
		m.list.SetItems(nil)
		return
	}

	m.list.Title = fmt.Sprintf("Плейлист: %s", p.Name)
	items := make([]list.Item, 0, len(p.TrackIDs))
	for _, id := range p.TrackIDs {
		t, found := m.catalog.Lookup(id)
		if !found {
			t = data.Track{ID: id, Title: "(нет в каталоге)"}
		}
		items = append(items, tracklist.Item(t))
	}
	m.list.SetItems(items)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, nav.Dispatch(selection.Back{})

		case "enter":
			if t, ok := tracklist.TrackOf(m.list.SelectedItem()); ok {
				return m, nav.Dispatch(selection.TapPlaylistTrack{PlaylistID: m.playlistID, TrackID: t.ID})
			}
			return m, nil

		case "x":
			if t, ok := tracklist.TrackOf(m.list.SelectedItem()); ok {
				return m, nav.Dispatch(selection.RemoveFromPlaylist{PlaylistID: m.playlistID, TrackID: t.ID})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	view := m.list.View()
	if len(m.list.Items()) == 0 {
		view = m.list.Title + "\n" + emptyStyle.Render("Плейлист пуст. Добавьте треки с экрана воспроизведения (a).")
	}
	extraHelp := helpStyle.Render("Enter: воспроизвести • x: убрать все вхождения трека • esc: назад")
	return view + "\n" + extraHelp
}
