// Package playlist содержит хранилище пользовательских плейлистов
package playlist

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/notify"
)

// EventKind - тип изменения хранилища
type EventKind int

const (
	// Created - создан плейлист
	Created EventKind = iota
	// Deleted - плейлист удален
	Deleted
	// TrackAdded - трек добавлен в конец плейлиста
	TrackAdded
	// TrackRemoved - все вхождения трека удалены из плейлиста
	TrackRemoved
	// Renamed - плейлист переименован
	Renamed
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case TrackAdded:
		return "track_added"
	case TrackRemoved:
		return "track_removed"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event описывает изменение и содержит новый снимок
type Event struct {
	Kind       EventKind
	PlaylistID int
	TrackID    int
	Snapshot   *Snapshot
}

// trackCatalog - то, что хранилищу нужно от каталога
type trackCatalog interface {
	Has(id int) bool
}

// Store владеет плейлистами. Каждая мутация заменяет снимок целиком,
// поэтому читатели работают без блокировок.
type Store struct {
	catalog trackCatalog
	logger  *slog.Logger

	mu      sync.Mutex // упорядочивает писателей
	current atomic.Pointer[Snapshot]
	events  notify.Hub[Event]
}

// NewStore создает пустое хранилище плейлистов
func NewStore(catalog trackCatalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{catalog: catalog, logger: logger}
	s.current.Store(emptySnapshot)
	return s
}

// Snapshot возвращает текущий снимок
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Subscribe подписывает обработчик на изменения хранилища
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.events.Subscribe(fn)
}

// Create создает плейлист и возвращает его ID. ID никогда не переиспользуются.
func (s *Store) Create(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Validation("имя плейлиста не может быть пустым")
	}

	s.mu.Lock()
	next, id := s.current.Load().withCreated(name)
	s.current.Store(next)
	s.mu.Unlock()

	s.logger.Info("created playlist", "playlistID", id, "name", name)
	s.events.Publish(Event{Kind: Created, PlaylistID: id, Snapshot: next})
	return id, nil
}

// Delete удаляет плейлист. Удаление отсутствующего плейлиста ничего не делает.
func (s *Store) Delete(id int) {
	s.mu.Lock()
	prev := s.current.Load()
	next := prev.withDeleted(id)
	s.current.Store(next)
	s.mu.Unlock()

	if next == prev {
		s.logger.Debug("delete of unknown playlist ignored", "playlistID", id)
		return
	}

	s.logger.Info("deleted playlist", "playlistID", id)
	s.events.Publish(Event{Kind: Deleted, PlaylistID: id, Snapshot: next})
}

// AddTrack добавляет трек в конец плейлиста. Повторы разрешены.
func (s *Store) AddTrack(playlistID, trackID int) error {
	if !s.catalog.Has(trackID) {
		return apperr.NotFound("трек с ID %d", trackID)
	}

	s.mu.Lock()
	prev := s.current.Load()
	if !prev.Has(playlistID) {
		s.mu.Unlock()
		return apperr.NotFound("плейлист с ID %d", playlistID)
	}
	next := prev.withTrackAdded(playlistID, trackID)
	s.current.Store(next)
	s.mu.Unlock()

	s.logger.Info("added track to playlist", "playlistID", playlistID, "trackID", trackID)
	s.events.Publish(Event{Kind: TrackAdded, PlaylistID: playlistID, TrackID: trackID, Snapshot: next})
	return nil
}

// RemoveTrack удаляет из плейлиста все вхождения трека.
// Если плейлиста или трека нет, ничего не происходит.
func (s *Store) RemoveTrack(playlistID, trackID int) {
	s.mu.Lock()
	prev := s.current.Load()
	next := prev.withTrackRemoved(playlistID, trackID)
	s.current.Store(next)
	s.mu.Unlock()

	if next == prev {
		s.logger.Debug("remove of absent track ignored", "playlistID", playlistID, "trackID", trackID)
		return
	}

	s.logger.Info("removed track from playlist", "playlistID", playlistID, "trackID", trackID)
	s.events.Publish(Event{Kind: TrackRemoved, PlaylistID: playlistID, TrackID: trackID, Snapshot: next})
}

// Rename меняет имя плейлиста
func (s *Store) Rename(playlistID int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("имя плейлиста не может быть пустым")
	}

	s.mu.Lock()
	prev := s.current.Load()
	if !prev.Has(playlistID) {
		s.mu.Unlock()
		return apperr.NotFound("плейлист с ID %d", playlistID)
	}
	next := prev.withRenamed(playlistID, name)
	s.current.Store(next)
	s.mu.Unlock()

	s.logger.Info("renamed playlist", "playlistID", playlistID, "name", name)
	s.events.Publish(Event{Kind: Renamed, PlaylistID: playlistID, Snapshot: next})
	return nil
}
