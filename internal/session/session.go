// Package session содержит сессию воспроизведения: какой трек загружен,
// играет ли он и в контексте какого плейлиста
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/audio"
	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/notify"
	"github.com/hazadus/go-playbox/internal/playlist"
)

// Status - состояние сессии
type Status int

const (
	// Idle - трек не загружен
	Idle Status = iota
	// Loading - ресурс получается или освобождается
	Loading
	// Paused - трек загружен и стоит на паузе
	Paused
	// Playing - трек загружен и воспроизводится
	Playing
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// State - снимок сессии. Нулевые ID означают отсутствие значения.
type State struct {
	Status     Status
	TrackID    int
	PlaylistID int
	// Finished - трек доиграл до конца сам и стоит на паузе
	Finished bool
	// Err - ошибка последней неудачной загрузки
	Err error
}

// trackCatalog - то, что сессии нужно от каталога
type trackCatalog interface {
	Lookup(id int) (data.Track, bool)
}

// playlistSource - то, что сессии нужно от хранилища плейлистов
type playlistSource interface {
	Snapshot() *playlist.Snapshot
	Subscribe(fn func(playlist.Event)) (unsubscribe func())
}

// Session - единственная в процессе сессия воспроизведения.
// В каждый момент удерживается не больше одного аудио ресурса.
type Session struct {
	catalog   trackCatalog
	playlists playlistSource
	engine    audio.Engine
	logger    *slog.Logger

	// opMu упорядочивает освобождение и получение ресурсов
	opMu sync.Mutex

	// mu защищает поля ниже; handle меняется только под обоими мьютексами
	mu         sync.Mutex
	state      State
	handle     audio.Handle
	stopWatch  chan struct{}
	generation uint64
	cancelLoad context.CancelFunc
	closed     bool

	events      notify.Hub[State]
	unsubscribe func()
}

// New создает сессию в состоянии Idle и подписывает ее на хранилище плейлистов
func New(catalog trackCatalog, playlists playlistSource, engine audio.Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		catalog:   catalog,
		playlists: playlists,
		engine:    engine,
		logger:    logger,
	}
	s.unsubscribe = playlists.Subscribe(s.onPlaylistEvent)
	return s
}

// State возвращает текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress возвращает позицию и длительность загруженного трека
func (s *Session) Progress() (position, length time.Duration) {
	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()

	if h == nil {
		return 0, 0
	}
	return h.Position(), h.Length()
}

// Subscribe подписывает обработчик на изменения состояния
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.events.Subscribe(fn)
}

// SelectTrack загружает трек и начинает воспроизведение. playlistID задает
// контекст для Next/Previous, 0 сбрасывает контекст. Новый вызов отменяет
// незавершенную загрузку; ее результат освобождается и не устанавливается.
func (s *Session) SelectTrack(ctx context.Context, trackID, playlistID int) error {
	track, ok := s.catalog.Lookup(trackID)
	if !ok {
		return apperr.NotFound("трек с ID %d", trackID)
	}
	if playlistID != 0 && !s.playlists.Snapshot().Has(playlistID) {
		return apperr.NotFound("плейлист с ID %d", playlistID)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return apperr.InvalidState("сессия закрыта")
	}
	// Плейлист мог быть удален после первой проверки. Удаление после этой
	// точки сбросит контекст через onPlaylistEvent.
	if playlistID != 0 && !s.playlists.Snapshot().Has(playlistID) {
		s.mu.Unlock()
		return apperr.NotFound("плейлист с ID %d", playlistID)
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	s.generation++
	gen := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancelLoad = cancel
	s.state = State{Status: Loading, TrackID: trackID, PlaylistID: playlistID}
	loading := s.state
	s.mu.Unlock()
	s.events.Publish(loading)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.isCurrent(gen) {
		s.logger.Debug("selection superseded before load", "trackID", trackID)
		return nil
	}

	// Старый ресурс освобождается до получения нового
	s.releaseHandle()

	handle, err := s.engine.Acquire(loadCtx, track.SourceRef)

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		if handle != nil {
			if rerr := handle.Release(); rerr != nil {
				s.logger.Warn("failed to release superseded track", "trackID", trackID, "error", rerr)
			}
		}
		s.logger.Debug("discarded superseded load", "trackID", trackID)
		return nil
	}

	if err != nil {
		resErr := apperr.Resource(err, "не удалось загрузить трек %d", trackID)
		s.state = State{Status: Idle, Err: resErr}
		s.cancelLoad = nil
		failed := s.state
		s.mu.Unlock()

		s.logger.Error("failed to acquire audio", "trackID", trackID, "source", track.SourceRef, "error", err)
		s.events.Publish(failed)
		return resErr
	}

	stop := make(chan struct{})
	s.handle = handle
	s.stopWatch = stop
	s.cancelLoad = nil
	handle.Play()
	// PlaylistID мог быть сброшен удалением плейлиста во время загрузки
	s.state.Status = Playing
	playing := s.state
	s.mu.Unlock()

	go s.watch(handle, stop)

	s.logger.Info("playing track", "trackID", trackID, "playlistID", playing.PlaylistID)
	s.events.Publish(playing)
	return nil
}

// TogglePlayPause переключает Playing и Paused
func (s *Session) TogglePlayPause() error {
	s.mu.Lock()
	switch s.state.Status {
	case Playing:
		s.handle.Pause()
		s.state.Status = Paused
	case Paused:
		s.handle.Play()
		s.state.Status = Playing
		s.state.Finished = false
	default:
		status := s.state.Status
		s.mu.Unlock()
		return apperr.InvalidState("нельзя переключить воспроизведение в состоянии %s", status)
	}
	st := s.state
	s.mu.Unlock()

	s.events.Publish(st)
	return nil
}

// Next переходит к следующему треку плейлиста-контекста.
// Без контекста и на последнем треке ничего не делает.
func (s *Session) Next(ctx context.Context) error {
	return s.step(ctx, 1)
}

// Previous переходит к предыдущему треку плейлиста-контекста.
// Без контекста и на первом треке ничего не делает.
func (s *Session) Previous(ctx context.Context) error {
	return s.step(ctx, -1)
}

func (s *Session) step(ctx context.Context, delta int) error {
	st := s.State()
	if st.PlaylistID == 0 || st.TrackID == 0 {
		return nil
	}

	p, ok := s.playlists.Snapshot().Get(st.PlaylistID)
	if !ok {
		return nil
	}
	// Позиция считается по первому вхождению трека
	i := p.IndexOf(st.TrackID)
	if i < 0 {
		return nil
	}
	j := i + delta
	if j < 0 || j >= len(p.TrackIDs) {
		return nil
	}
	return s.SelectTrack(ctx, p.TrackIDs[j], st.PlaylistID)
}

// Close освобождает ресурс и отписывает сессию от хранилища.
// Незавершенная загрузка отменяется, ее результат освобождается.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.generation++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.mu.Unlock()

	s.unsubscribe()

	s.opMu.Lock()
	s.releaseHandle()
	s.mu.Lock()
	s.state = State{Status: Idle}
	st := s.state
	s.mu.Unlock()
	s.opMu.Unlock()

	s.logger.Info("session closed")
	s.events.Publish(st)
	return nil
}

func (s *Session) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation && !s.closed
}

// releaseHandle останавливает и освобождает текущий ресурс. Вызывается под opMu.
func (s *Session) releaseHandle() {
	s.mu.Lock()
	h, stop := s.handle, s.stopWatch
	s.handle, s.stopWatch = nil, nil
	s.mu.Unlock()

	if h == nil {
		return
	}
	close(stop)
	h.Stop()
	if err := h.Release(); err != nil {
		s.logger.Warn("failed to release track", "error", err)
	}
}

// watch ждет естественного завершения трека, пока ресурс установлен
func (s *Session) watch(h audio.Handle, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-h.Done():
			s.onFinished(h)
		}
	}
}

// onFinished переводит Playing в Paused и отмечает завершение.
// Следующий трек не запускается.
func (s *Session) onFinished(h audio.Handle) {
	s.mu.Lock()
	if s.handle != h || s.state.Status != Playing {
		s.mu.Unlock()
		return
	}
	s.state.Status = Paused
	s.state.Finished = true
	st := s.state
	s.mu.Unlock()

	s.logger.Info("track finished", "trackID", st.TrackID)
	s.events.Publish(st)
}

func (s *Session) onPlaylistEvent(e playlist.Event) {
	if e.Kind != playlist.Deleted {
		return
	}

	s.mu.Lock()
	if s.state.PlaylistID != e.PlaylistID {
		s.mu.Unlock()
		return
	}
	s.state.PlaylistID = 0
	st := s.state
	s.mu.Unlock()

	s.logger.Info("playback context cleared", "playlistID", e.PlaylistID)
	s.events.Publish(st)
}
