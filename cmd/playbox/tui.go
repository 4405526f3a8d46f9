package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playbox/internal/tui"
	tuiapp "github.com/hazadus/go-playbox/internal/tui/app"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing tracks, playlists and playback.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI(ctx)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context) error {
	tuiApp := tui.NewApp(tuiapp.Deps{
		Catalog:    app.Catalog,
		Store:      app.Store,
		Session:    app.Session,
		Controller: app.Controller,
	})
	return tuiApp.Run(ctx)
}
