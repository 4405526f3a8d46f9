// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/catalog"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/tui/form"
	"github.com/hazadus/go-playbox/internal/tui/nav"
	tuiPlayer "github.com/hazadus/go-playbox/internal/tui/player"
	"github.com/hazadus/go-playbox/internal/tui/playlists"
	"github.com/hazadus/go-playbox/internal/tui/playlistview"
	"github.com/hazadus/go-playbox/internal/tui/tracklist"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).PaddingLeft(2)
	nowPlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).PaddingLeft(2)
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// TracksScreen - общий список треков
	TracksScreen ScreenType = iota
	// PlaylistsScreen - список плейлистов
	PlaylistsScreen
	// PlaylistScreen - содержимое плейлиста
	PlaylistScreen
	// PlayerScreen - экран воспроизведения
	PlayerScreen
	// FormScreen - форма имени плейлиста
	FormScreen
)

// Deps - ядро, с которым работает интерфейс
type Deps struct {
	Catalog    *catalog.Catalog
	Store      *playlist.Store
	Session    *session.Session
	Controller *selection.Controller
}

// StateChangedMsg сообщает, что хранилище или сессия изменились
type StateChangedMsg struct{}

// dispatchedMsg - результат выполнения команды контроллера
type dispatchedMsg struct {
	intent selection.Intent
	err    error
}

// MainModel представляет главную модель TUI
type MainModel struct {
	ctx     context.Context
	deps    Deps
	changes <-chan struct{}

	currentScreen ScreenType
	history       []ScreenType

	tracklistModel *tracklist.Model
	playlistsModel *playlists.Model
	playlistModel  *playlistview.Model
	playerModel    *tuiPlayer.Model
	formModel      *form.Model

	size tea.WindowSizeMsg
	err  error
}

// NewMainModel создает главную модель. changes получает сигнал при каждом
// изменении ядра; канал емкостью 1 склеивает пачку изменений в одно.
func NewMainModel(ctx context.Context, deps Deps, changes <-chan struct{}) *MainModel {
	return &MainModel{
		ctx:            ctx,
		deps:           deps,
		changes:        changes,
		currentScreen:  TracksScreen,
		tracklistModel: tracklist.NewModel(deps.Catalog),
		playlistsModel: playlists.NewModel(deps.Store),
		playerModel:    tuiPlayer.NewModel(deps.Session, deps.Catalog, deps.Store, deps.Controller),
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return tea.Batch(m.tracklistModel.Init(), m.listen())
}

// listen ждет следующего изменения ядра
func (m *MainModel) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes, ctx := m.changes, m.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return StateChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// dispatch выполняет команду вне цикла обработки сообщений: загрузка трека
// может занять время
func (m *MainModel) dispatch(cmd selection.Command) tea.Cmd {
	ctx, controller := m.ctx, m.deps.Controller
	return func() tea.Msg {
		intent, err := controller.Dispatch(ctx, cmd)
		return dispatchedMsg{intent: intent, err: err}
	}
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.size = msg
		m.resize()
		return m, nil

	case StateChangedMsg:
		m.refresh()
		return m, m.listen()

	case nav.CommandMsg:
		return m, m.dispatch(msg.Command)

	case dispatchedMsg:
		return m, m.apply(msg)

	case nav.ShowTracksMsg:
		m.switchTo(TracksScreen)
		return m, nil

	case nav.ShowPlaylistsMsg:
		m.switchTo(PlaylistsScreen)
		return m, nil

	case nav.OpenFormMsg:
		m.formModel = form.NewModel(msg.PlaylistID, msg.Name)
		if m.size.Width > 0 {
			m.formModel.Update(m.size)
		}
		m.push(FormScreen)
		return m, m.formModel.Init()

	case nav.CloseFormMsg:
		m.back()
		return m, nil
	}

	return m, m.updateCurrent(msg)
}

// apply переходит на экран, который вернул контроллер
func (m *MainModel) apply(msg dispatchedMsg) tea.Cmd {
	if msg.err != nil {
		m.err = msg.err
		if m.currentScreen == FormScreen {
			m.formModel.SetError(msg.err)
		}
		return nil
	}
	m.err = nil

	// Успешная команда из формы закрывает форму
	if m.currentScreen == FormScreen {
		m.back()
		m.playlistsModel.Refresh()
		if msg.intent.PlaylistID != 0 {
			m.playlistsModel.Select(msg.intent.PlaylistID)
		}
		return nil
	}

	switch msg.intent.Screen {
	case selection.Player:
		m.playerModel.Refresh()
		if m.currentScreen != PlayerScreen {
			m.push(PlayerScreen)
			return m.playerModel.Init()
		}

	case selection.PlaylistView:
		m.playlistModel = playlistview.NewModel(m.deps.Store, m.deps.Catalog, msg.intent.PlaylistID)
		if m.size.Width > 0 {
			m.playlistModel.Update(m.size)
		}
		if m.currentScreen != PlaylistScreen {
			m.push(PlaylistScreen)
		}

	case selection.Playlists:
		m.switchTo(PlaylistsScreen)

	case selection.Tracks:
		m.switchTo(TracksScreen)

	case selection.Previous:
		m.back()
	}
	return nil
}

// refresh перечитывает состояние ядра во всех экранах
func (m *MainModel) refresh() {
	m.playlistsModel.Refresh()
	m.playerModel.Refresh()

	if m.playlistModel != nil {
		m.playlistModel.Refresh()
		if !m.playlistModel.Exists() {
			m.playlistModel = nil
			if m.currentScreen == PlaylistScreen {
				m.switchTo(PlaylistsScreen)
			}
		}
	}
}

func (m *MainModel) resize() {
	m.tracklistModel.Update(m.size)
	m.playlistsModel.Update(m.size)
	m.playerModel.Update(m.size)
	if m.playlistModel != nil {
		m.playlistModel.Update(m.size)
	}
	if m.formModel != nil {
		m.formModel.Update(m.size)
	}
}

func (m *MainModel) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.currentScreen {
	case TracksScreen:
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	case PlaylistsScreen:
		m.playlistsModel, cmd = m.playlistsModel.Update(msg)
	case PlaylistScreen:
		if m.playlistModel != nil {
			m.playlistModel, cmd = m.playlistModel.Update(msg)
		}
	case PlayerScreen:
		m.playerModel, cmd = m.playerModel.Update(msg)
	case FormScreen:
		if m.formModel != nil {
			m.formModel, cmd = m.formModel.Update(msg)
		}
	}
	return cmd
}

// push открывает экран поверх текущего
func (m *MainModel) push(screen ScreenType) {
	m.history = append(m.history, m.currentScreen)
	m.currentScreen = screen
}

// switchTo переключает верхний уровень и сбрасывает историю
func (m *MainModel) switchTo(screen ScreenType) {
	m.history = nil
	m.currentScreen = screen
}

// back возвращает на предыдущий экран
func (m *MainModel) back() {
	if m.currentScreen == FormScreen {
		m.formModel = nil
	}
	for len(m.history) > 0 {
		prev := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		if prev == PlaylistScreen && m.playlistModel == nil {
			continue
		}
		m.currentScreen = prev
		return
	}
	if m.currentScreen != PlaylistsScreen {
		m.currentScreen = TracksScreen
	}
}

// CurrentScreen возвращает текущий экран
func (m *MainModel) CurrentScreen() ScreenType {
	return m.currentScreen
}

// View отображает интерфейс
func (m *MainModel) View() string {
	var view string
	switch m.currentScreen {
	case TracksScreen:
		view = m.tracklistModel.View()
	case PlaylistsScreen:
		view = m.playlistsModel.View()
	case PlaylistScreen:
		view = m.playlistModel.View()
	case PlayerScreen:
		view = m.playerModel.View()
	case FormScreen:
		view = m.formModel.View()
	default:
		view = "Неизвестный экран"
	}

	if m.currentScreen != PlayerScreen {
		if line := m.nowPlaying(); line != "" {
			view += "\n" + nowPlayStyle.Render(line)
		}
	}
	if m.err != nil && m.currentScreen != FormScreen {
		view += "\n" + errorStyle.Render(fmt.Sprintf("❌ Ошибка: %v", m.err))
	}
	return view
}

// nowPlaying возвращает строку о текущем треке для остальных экранов
func (m *MainModel) nowPlaying() string {
	st := m.deps.Session.State()
	if st.TrackID == 0 {
		return ""
	}
	t, ok := m.deps.Catalog.Lookup(st.TrackID)
	if !ok {
		return ""
	}
	icon := "⏸"
	if st.Status == session.Playing {
		icon = "▶"
	}
	return fmt.Sprintf("%s %s - %s", icon, t.Artist, t.Title)
}
