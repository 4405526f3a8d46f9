// Package selection превращает действия пользователя в команды хранилища
// плейлистов и сессии воспроизведения
package selection

// Command - действие пользователя на экране
type Command interface {
	command()
}

// TapTrack - выбор трека в общем списке. Контекст плейлиста сбрасывается.
type TapTrack struct {
	TrackID int
}

// TapPlaylistTrack - выбор трека внутри открытого плейлиста
type TapPlaylistTrack struct {
	PlaylistID int
	TrackID    int
}

// OpenPlaylist - открытие плейлиста
type OpenPlaylist struct {
	PlaylistID int
}

// ToggleAddPanel открывает или закрывает панель добавления в плейлист
type ToggleAddPanel struct{}

// AddCurrentToPlaylist добавляет текущий трек в плейлист
type AddCurrentToPlaylist struct {
	PlaylistID int
}

// AddTrackToPlaylist добавляет любой трек каталога в плейлист
type AddTrackToPlaylist struct {
	PlaylistID int
	TrackID    int
}

// CreatePlaylist создает плейлист
type CreatePlaylist struct {
	Name string
}

// RenamePlaylist переименовывает плейлист
type RenamePlaylist struct {
	PlaylistID int
	Name       string
}

// DeletePlaylist удаляет плейлист
type DeletePlaylist struct {
	PlaylistID int
}

// RemoveFromPlaylist удаляет трек из плейлиста
type RemoveFromPlaylist struct {
	PlaylistID int
	TrackID    int
}

// TogglePlayback переключает воспроизведение и паузу
type TogglePlayback struct{}

// NextTrack переходит к следующему треку контекста
type NextTrack struct{}

// PreviousTrack переходит к предыдущему треку контекста
type PreviousTrack struct{}

// Back - возврат на предыдущий экран
type Back struct{}

func (TapTrack) command()             {}
func (TapPlaylistTrack) command()     {}
func (OpenPlaylist) command()         {}
func (ToggleAddPanel) command()       {}
func (AddCurrentToPlaylist) command() {}
func (AddTrackToPlaylist) command()   {}
func (CreatePlaylist) command()       {}
func (RenamePlaylist) command()       {}
func (DeletePlaylist) command()       {}
func (RemoveFromPlaylist) command()   {}
func (TogglePlayback) command()       {}
func (NextTrack) command()            {}
func (PreviousTrack) command()        {}
func (Back) command()                 {}
