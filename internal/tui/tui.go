// Package tui содержит текстовый пользовательский интерфейс плеера
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	deps app.Deps
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(deps app.Deps) *App {
	return &App{deps: deps}
}

// Bridge подписывается на хранилище и сессию и сигналит в канал емкостью 1.
// Если сигнал еще не прочитан, новый отбрасывается: модель все равно
// читает свежее состояние.
func Bridge(store *playlist.Store, sess *session.Session) (changes <-chan struct{}, stop func()) {
	ch := make(chan struct{}, 1)
	signal := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	unsubStore := store.Subscribe(func(playlist.Event) { signal() })
	unsubSession := sess.Subscribe(func(session.State) { signal() })
	return ch, func() {
		unsubStore()
		unsubSession()
	}
}

// Run запускает TUI приложение и блокируется до выхода
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, stop := Bridge(a.deps.Store, a.deps.Session)
	defer stop()

	model := app.NewMainModel(ctx, a.deps, changes)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	return err
}
