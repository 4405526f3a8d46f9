package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-playbox/internal/audio"
	"github.com/hazadus/go-playbox/internal/catalog"
	"github.com/hazadus/go-playbox/internal/config"
	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/importer"
	"github.com/hazadus/go-playbox/internal/logging"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/session"
)

// Application содержит конфигурацию и ядро плеера, общие для всех команд
type Application struct {
	Config     *config.Config
	Library    *data.Library
	Catalog    *catalog.Catalog
	Store      *playlist.Store
	Session    *session.Session
	Controller *selection.Controller
	Logger     *slog.Logger

	importer *importer.Service
}

// newApplication загружает каталог и связывает каталог, плейлисты, сессию и контроллер
func newApplication(cfg *config.Config, logger *slog.Logger, engine audio.Engine) (*Application, error) {
	library := data.NewLibrary()
	if err := library.LoadData(cfg.CatalogPath); err != nil {
		return nil, fmt.Errorf("ошибка загрузки каталога: %w", err)
	}

	cat, err := catalog.New(library.Tracks)
	if err != nil {
		return nil, fmt.Errorf("ошибка в каталоге %s: %w", cfg.CatalogPath, err)
	}

	store := playlist.NewStore(cat, logger)
	sess := session.New(cat, store, engine, logger)

	return &Application{
		Config:     cfg,
		Library:    library,
		Catalog:    cat,
		Store:      store,
		Session:    sess,
		Controller: selection.NewController(store, sess, logger),
		Logger:     logger,
	}, nil
}

// setup читает конфигурацию и создает ядро с настоящим аудио движком
func (app *Application) setup(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	logger, err := logging.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("ошибка настройки логирования: %w", err)
	}

	built, err := newApplication(cfg, logger, audio.NewBeepEngine(logger))
	if err != nil {
		return err
	}
	*app = *built
	return nil
}

// syncCatalog переносит изменения файла каталога в каталог ядра
func (app *Application) syncCatalog() error {
	return app.Catalog.Replace(app.Library.Tracks)
}

// Close освобождает аудио ресурсы сессии
func (app *Application) Close() {
	if app.Session == nil {
		return
	}
	if err := app.Session.Close(); err != nil {
		app.Logger.Error("failed to close session", "error", err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &Application{}
	rootCmd := app.createRootCommand(ctx)

	err := rootCmd.ExecuteContext(ctx)
	app.Close()
	stop()

	if err != nil {
		fmt.Printf("❌ Ошибка: %v\n", err)
		os.Exit(1)
	}
}
