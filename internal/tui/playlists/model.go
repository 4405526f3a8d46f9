// Package playlists содержит модель экрана списка плейлистов для TUI
package playlists

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/tui/nav"
	"github.com/hazadus/go-playbox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	emptyStyle        = lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("241"))
)

type snapshotSource interface {
	Snapshot() *playlist.Snapshot
}

type playlistItem struct {
	playlist playlist.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }

type playlistDelegate struct{}

func (d playlistDelegate) Height() int                             { return 1 }
func (d playlistDelegate) Spacing() int                            { return 0 }
func (d playlistDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d playlistDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(playlistItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%-4d %-40s %d тр.",
		i.playlist.ID,
		utils.TruncateString(i.playlist.Name, 40),
		len(i.playlist.TrackIDs))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}
	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана плейлистов
type Model struct {
	source snapshotSource
	list   list.Model
}

// NewModel создает модель по текущему снимку хранилища
func NewModel(source snapshotSource) *Model {
	l := list.New(nil, playlistDelegate{}, 0, 0)
	l.Title = "Плейлисты"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle

	m := &Model{source: source, list: l}
	m.Refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Refresh перечитывает снимок хранилища
func (m *Model) Refresh() {
	playlists := m.source.Snapshot().Playlists()
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	m.list.SetItems(items)
}

// Select ставит курсор на плейлист с указанным ID
func (m *Model) Select(playlistID int) {
	for i, item := range m.list.Items() {
		if item.(playlistItem).playlist.ID == playlistID {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) selected() (playlist.Playlist, bool) {
	i, ok := m.list.SelectedItem().(playlistItem)
	return i.playlist, ok
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "t", "tab", "esc":
			return m, nav.Send(nav.ShowTracksMsg{})

		case "n":
			return m, nav.Send(nav.OpenFormMsg{})

		case "enter":
			if p, ok := m.selected(); ok {
				return m, nav.Dispatch(selection.OpenPlaylist{PlaylistID: p.ID})
			}
			return m, nil

		case "r":
			if p, ok := m.selected(); ok {
				return m, nav.Send(nav.OpenFormMsg{PlaylistID: p.ID, Name: p.Name})
			}
			return m, nil

		case "d":
			if p, ok := m.selected(); ok {
				return m, nav.Dispatch(selection.DeletePlaylist{PlaylistID: p.ID})
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
		view = titleStyle.Render("Плейлисты") + "\n" + emptyStyle.Render("Плейлистов пока нет. Нажмите n, чтобы создать.")
	}
	extraHelp := helpStyle.Render("Enter: открыть • n: новый • r: переименовать • d: удалить • t: треки • q: выход")
	return view + "\n" + extraHelp
}
