// Package tracklist содержит модель экрана списка треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/tui/nav"
	"github.com/hazadus/go-playbox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	searchStyle       = lipgloss.NewStyle().MarginLeft(2).MarginBottom(1)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// trackSource - каталог треков с поиском
type trackSource interface {
	Tracks() []data.Track
	Search(query string) []data.Track
	Rank(query string) []data.Track
}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	track data.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Artist, i.track.Title)
}

// TrackDelegate отображает трек строкой таблицы: ID | Исполнитель | Название | Длительность
type TrackDelegate struct{}

func (d TrackDelegate) Height() int                             { return 1 }
func (d TrackDelegate) Spacing() int                            { return 0 }
func (d TrackDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d TrackDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	t, ok := TrackOf(listItem)
	if !ok {
		return
	}

	str := FormatTrackRow(t)
	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}
	fmt.Fprint(w, fn(str))
}

// Item оборачивает трек в элемент списка
func Item(t data.Track) list.Item {
	return trackItem{track: t}
}

// TrackOf возвращает трек элемента списка
func TrackOf(item list.Item) (data.Track, bool) {
	i, ok := item.(trackItem)
	return i.track, ok
}

// FormatTrackRow форматирует трек для списков
func FormatTrackRow(t data.Track) string {
	return fmt.Sprintf("%-4d %-20s %-50s %s",
		t.ID,
		utils.TruncateString(t.Artist, 20),
		utils.TruncateString(t.Title, 50),
		utils.FormatDurationFromSeconds(t.Length))
}

// NewList создает список треков в общем стиле
func NewList(title string, items []list.Item) list.Model {
	l := list.New(items, TrackDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle
	return l
}

// Model представляет модель экрана списка треков
type Model struct {
	source    trackSource
	list      list.Model
	search    textinput.Model
	searching bool
	fuzzy     bool
}

// NewModel создает новую модель списка треков
func NewModel(source trackSource) *Model {
	search := textinput.New()
	search.Placeholder = "название или исполнитель"
	search.Prompt = "🔍 "

	m := &Model{
		source: source,
		list:   NewList("Треки", nil),
		search: search,
	}
	m.Refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Query возвращает текущий поисковый запрос
func (m *Model) Query() string {
	return m.search.Value()
}

// Refresh перечитывает каталог с учетом поискового запроса
func (m *Model) Refresh() {
	var tracks []data.Track
	query := strings.TrimSpace(m.search.Value())
	if m.fuzzy && query != "" {
		tracks = m.source.Rank(query)
	} else {
		tracks = m.source.Search(query)
	}

	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = Item(t)
	}
	m.list.SetItems(items)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "/":
			m.searching = true
			return m, m.search.Focus()

		case "ctrl+f":
			m.fuzzy = !m.fuzzy
			m.Refresh()
			return m, nil

		case "p", "tab":
			return m, nav.Send(nav.ShowPlaylistsMsg{})

		case "enter":
			if t, ok := TrackOf(m.list.SelectedItem()); ok {
				return m, nav.Dispatch(selection.TapTrack{TrackID: t.ID})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.Refresh()
		return m, nil

	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.Refresh()
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	mode := "подстрока"
	if m.fuzzy {
		mode = "нечеткий"
	}

	view := searchStyle.Render(fmt.Sprintf("%s  [%s]", m.search.View(), mode)) + "\n" + m.list.View()
	extraHelp := helpStyle.Render("Enter: воспроизвести • /: поиск • ctrl+f: режим поиска • p: плейлисты • q: выход")
	return view + "\n" + extraHelp
}
