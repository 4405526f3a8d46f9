// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/tui/nav"
	"github.com/hazadus/go-playbox/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// tickInterval - период обновления прогресса
const tickInterval = time.Second

type tickMsg struct {
	id int
}

type playbackSession interface {
	State() session.State
	Progress() (position, length time.Duration)
}

type trackLookup interface {
	Lookup(id int) (data.Track, bool)
}

type snapshotSource interface {
	Snapshot() *playlist.Snapshot
}

type addPanel interface {
	AddPanelOpen() bool
}

// Model представляет модель экрана воспроизведения
type Model struct {
	session  playbackSession
	catalog  trackLookup
	store    snapshotSource
	panel    addPanel
	progress progress.Model

	state    session.State
	position time.Duration
	length   time.Duration
	cursor   int
	tickID   int
}

// NewModel создает модель экрана воспроизведения
func NewModel(sess playbackSession, catalog trackLookup, store snapshotSource, panel addPanel) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	m := &Model{
		session:  sess,
		catalog:  catalog,
		store:    store,
		panel:    panel,
		progress: prog,
	}
	m.Refresh()
	return m
}

// Init запускает обновление прогресса
func (m *Model) Init() tea.Cmd {
	m.tickID++
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// Refresh перечитывает состояние сессии
func (m *Model) Refresh() {
	m.state = m.session.State()
	m.position, m.length = m.session.Progress()

	if n := m.store.Snapshot().Len(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(60, msg.Width-10)
		return m, nil

	case tickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		m.position, m.length = m.session.Progress()
		return m, m.tick()

	case tea.KeyMsg:
		if m.panel.AddPanelOpen() {
			if cmd, handled := m.updatePanel(msg); handled {
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "esc":
			return m, nav.Dispatch(selection.Back{})
		case " ":
			return m, nav.Dispatch(selection.TogglePlayback{})
		case "n", "right":
			return m, nav.Dispatch(selection.NextTrack{})
		case "b", "left":
			return m, nav.Dispatch(selection.PreviousTrack{})
		case "a":
			return m, nav.Dispatch(selection.ToggleAddPanel{})
		}
	}

	return m, nil
}

// updatePanel обрабатывает клавиши панели добавления в плейлист
func (m *Model) updatePanel(msg tea.KeyMsg) (tea.Cmd, bool) {
	playlists := m.store.Snapshot().Playlists()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil, true
	case "down", "j":
		if m.cursor < len(playlists)-1 {
			m.cursor++
		}
		return nil, true
	case "enter":
		if m.cursor < len(playlists) {
			return nav.Dispatch(selection.AddCurrentToPlaylist{PlaylistID: playlists[m.cursor].ID}), true
		}
		return nil, true
	}
	return nil, false
}

// View отображает модель
func (m *Model) View() string {
	title := titleStyle.Render("🎵 Воспроизведение")

	if m.state.TrackID == 0 {
		body := "Трек не выбран"
		if m.state.Err != nil {
			body = errorStyle.Render("❌ " + m.state.Err.Error())
		}
		return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, controlsStyle.Render("q/esc: назад"))
	}

	t, _ := m.catalog.Lookup(m.state.TrackID)
	trackInfo := trackInfoStyle.Render(fmt.Sprintf("🎤 %s\n🎵 %s\n💿 %s", t.Artist, t.Title, t.Album))

	context := "без плейлиста"
	if p, ok := m.store.Snapshot().Get(m.state.PlaylistID); ok {
		context = "плейлист: " + p.Name
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s • %s", statusIcon(m.state.Status), formatStatus(m.state.Status), context))

	var percent float64
	if m.length > 0 {
		percent = float64(m.position) / float64(m.length)
	}
	timeText := fmt.Sprintf("%s / %s", utils.FormatDuration(m.position), utils.FormatDuration(m.length))

	controls := controlsStyle.Render(
		"Пробел: пауза/воспроизведение • n/b: следующий/предыдущий • a: в плейлист • q/esc: назад",
	)

	view := fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s",
		title, trackInfo, statusText, m.progress.ViewAs(percent), timeText, controls)

	if m.panel.AddPanelOpen() {
		view += "\n" + m.panelView()
	}
	return view
}

func (m *Model) panelView() string {
	playlists := m.store.Snapshot().Playlists()
	if len(playlists) == 0 {
		return panelStyle.Render("Плейлистов нет. Создайте плейлист на экране плейлистов.")
	}

	var b strings.Builder
	b.WriteString("Добавить в плейлист:\n")
	for i, p := range playlists {
		line := fmt.Sprintf("  %s (%d)", p.Name, len(p.TrackIDs))
		if i == m.cursor {
			line = cursorStyle.Render(fmt.Sprintf("> %s (%d)", p.Name, len(p.TrackIDs)))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("↑/↓: выбор • Enter: добавить • a: закрыть")
	return panelStyle.Render(b.String())
}

func statusIcon(status session.Status) string {
	switch status {
	case session.Playing:
		return "▶️"
	case session.Loading:
		return "⏳"
	default:
		return "⏸️"
	}
}

func formatStatus(status session.Status) string {
	switch status {
	case session.Playing:
		return "Воспроизведение"
	case session.Loading:
		return "Загрузка"
	case session.Paused:
		return "Пауза"
	default:
		return "Остановлено"
	}
}
