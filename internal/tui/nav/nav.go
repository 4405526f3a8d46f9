// Package nav содержит сообщения, которыми экраны TUI общаются с главной моделью
package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playbox/internal/selection"
)

// CommandMsg просит главную модель выполнить команду контроллера
type CommandMsg struct {
	Command selection.Command
}

// ShowTracksMsg переключает на общий список треков
type ShowTracksMsg struct{}

// ShowPlaylistsMsg переключает на список плейлистов
type ShowPlaylistsMsg struct{}

// OpenFormMsg открывает форму имени плейлиста. Нулевой PlaylistID - создание.
type OpenFormMsg struct {
	PlaylistID int
	Name       string
}

// CloseFormMsg закрывает форму без изменений
type CloseFormMsg struct{}

// Send возвращает команду, которая отправит сообщение msg
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Dispatch возвращает команду, которая попросит выполнить команду контроллера
func Dispatch(cmd selection.Command) tea.Cmd {
	return Send(CommandMsg{Command: cmd})
}
