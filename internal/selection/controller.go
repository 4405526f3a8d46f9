package selection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/playlist"
	"github.com/hazadus/go-playbox/internal/session"
)

// Screen - экран, который должен показать слой представления
type Screen int

const (
	// Stay - остаться на текущем экране
	Stay Screen = iota
	// Tracks - общий список треков
	Tracks
	// Playlists - список плейлистов
	Playlists
	// PlaylistView - содержимое одного плейлиста
	PlaylistView
	// Player - экран воспроизведения
	Player
	// Previous - вернуться на предыдущий экран
	Previous
)

func (s Screen) String() string {
	switch s {
	case Stay:
		return "stay"
	case Tracks:
		return "tracks"
	case Playlists:
		return "playlists"
	case PlaylistView:
		return "playlist"
	case Player:
		return "player"
	case Previous:
		return "previous"
	default:
		return "unknown"
	}
}

// Intent сообщает слою представления, куда перейти после команды
type Intent struct {
	Screen     Screen
	PlaylistID int
}

type playlistStore interface {
	Snapshot() *playlist.Snapshot
	Create(name string) (int, error)
	Rename(playlistID int, name string) error
	Delete(id int)
	AddTrack(playlistID, trackID int) error
	RemoveTrack(playlistID, trackID int)
}

type playbackSession interface {
	State() session.State
	SelectTrack(ctx context.Context, trackID, playlistID int) error
	TogglePlayPause() error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
}

// Controller связывает команды с хранилищем и сессией. Собственное
// состояние - только флаг открытой панели добавления.
type Controller struct {
	store   playlistStore
	session playbackSession
	logger  *slog.Logger

	mu           sync.Mutex
	addPanelOpen bool
}

// NewController создает контроллер
func NewController(store playlistStore, sess playbackSession, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{store: store, session: sess, logger: logger}
}

// AddPanelOpen сообщает, открыта ли панель добавления в плейлист
func (c *Controller) AddPanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addPanelOpen
}

func (c *Controller) setAddPanel(open bool) {
	c.mu.Lock()
	c.addPanelOpen = open
	c.mu.Unlock()
}

// Dispatch выполняет команду. При ошибке возвращается Intent{Screen: Stay}.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Intent, error) {
	intent, err := c.dispatch(ctx, cmd)
	if err != nil {
		c.logger.Warn("command failed", "command", fmt.Sprintf("%T", cmd), "kind", apperr.Kind(err), "error", err)
		return Intent{Screen: Stay}, err
	}
	return intent, nil
}

func (c *Controller) dispatch(ctx context.Context, cmd Command) (Intent, error) {
	switch cmd := cmd.(type) {
	case TapTrack:
		c.setAddPanel(false)
		if err := c.session.SelectTrack(ctx, cmd.TrackID, 0); err != nil {
			return Intent{}, err
		}
		return Intent{Screen: Player}, nil

	case TapPlaylistTrack:
		c.setAddPanel(false)
		if err := c.session.SelectTrack(ctx, cmd.TrackID, cmd.PlaylistID); err != nil {
			return Intent{}, err
		}
		return Intent{Screen: Player, PlaylistID: cmd.PlaylistID}, nil

	case OpenPlaylist:
		if !c.store.Snapshot().Has(cmd.PlaylistID) {
			return Intent{}, apperr.NotFound("плейлист с ID %d", cmd.PlaylistID)
		}
		return Intent{Screen: PlaylistView, PlaylistID: cmd.PlaylistID}, nil

	case ToggleAddPanel:
		if c.session.State().TrackID == 0 {
			return Intent{}, apperr.InvalidState("нет текущего трека")
		}
		c.mu.Lock()
		c.addPanelOpen = !c.addPanelOpen
		c.mu.Unlock()
		return Intent{Screen: Stay}, nil

	case AddCurrentToPlaylist:
		trackID := c.session.State().TrackID
		if trackID == 0 {
			return Intent{}, apperr.InvalidState("нет текущего трека")
		}
		if err := c.store.AddTrack(cmd.PlaylistID, trackID); err != nil {
			return Intent{}, err
		}
		c.setAddPanel(false)
		return Intent{Screen: Stay}, nil

	case AddTrackToPlaylist:
		if err := c.store.AddTrack(cmd.PlaylistID, cmd.TrackID); err != nil {
			return Intent{}, err
		}
		return Intent{Screen: Stay, PlaylistID: cmd.PlaylistID}, nil

	case CreatePlaylist:
		id, err := c.store.Create(cmd.Name)
		if err != nil {
			return Intent{}, err
		}
		return Intent{Screen: Playlists, PlaylistID: id}, nil

	case RenamePlaylist:
		if err := c.store.Rename(cmd.PlaylistID, cmd.Name); err != nil {
			return Intent{}, err
		}
		return Intent{Screen: PlaylistView, PlaylistID: cmd.PlaylistID}, nil

	case DeletePlaylist:
		c.store.Delete(cmd.PlaylistID)
		return Intent{Screen: Playlists}, nil

	case RemoveFromPlaylist:
		c.store.RemoveTrack(cmd.PlaylistID, cmd.TrackID)
		return Intent{Screen: Stay, PlaylistID: cmd.PlaylistID}, nil

	case TogglePlayback:
		return Intent{Screen: Stay}, c.session.TogglePlayPause()

	case NextTrack:
		return Intent{Screen: Stay}, c.session.Next(ctx)

	case PreviousTrack:
		return Intent{Screen: Stay}, c.session.Previous(ctx)

	case Back:
		// Открытая панель закрывается без смены экрана
		c.mu.Lock()
		wasOpen := c.addPanelOpen
		c.addPanelOpen = false
		c.mu.Unlock()
		if wasOpen {
			return Intent{Screen: Stay}, nil
		}
		return Intent{Screen: Previous}, nil

	default:
		return Intent{}, apperr.Validation("неизвестная команда %T", cmd)
	}
}
