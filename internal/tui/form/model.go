// Package form содержит форму имени плейлиста для TUI
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/tui/nav"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(15)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
)

// Model - форма создания или переименования плейлиста
type Model struct {
	playlistID int
	input      textinput.Model
	err        string
}

// NewModel создает форму. Нулевой playlistID означает создание нового плейлиста.
func NewModel(playlistID int, name string) *Model {
	input := textinput.New()
	input.Placeholder = "Название плейлиста"
	input.CharLimit = 100
	input.SetValue(name)
	input.PromptStyle = focusedStyle
	input.TextStyle = focusedStyle
	input.Focus()

	return &Model{playlistID: playlistID, input: input}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetError показывает ошибку под полем ввода
func (m *Model) SetError(err error) {
	m.err = ""
	if err != nil {
		m.err = err.Error()
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Send(nav.CloseFormMsg{})

		case "enter":
			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 20
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit отправляет команду. Проверку имени выполняет хранилище.
func (m *Model) submit() tea.Cmd {
	name := strings.TrimSpace(m.input.Value())
	if m.playlistID == 0 {
		return nav.Dispatch(selection.CreatePlaylist{Name: name})
	}
	return nav.Dispatch(selection.RenamePlaylist{PlaylistID: m.playlistID, Name: name})
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	title := "Новый плейлист"
	if m.playlistID != 0 {
		title = fmt.Sprintf("Переименование плейлиста #%d", m.playlistID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Название:"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Enter: сохранить • Esc: отмена"))
	return b.String()
}
