package playlist

// Playlist - именованный упорядоченный список ссылок на треки каталога.
// Один трек может встречаться несколько раз.
type Playlist struct {
	ID       int
	Name     string
	TrackIDs []int
}

func (p Playlist) clone() Playlist {
	ids := make([]int, len(p.TrackIDs))
	copy(ids, p.TrackIDs)
	p.TrackIDs = ids
	return p
}

// IndexOf возвращает позицию первого вхождения трека или -1
func (p Playlist) IndexOf(trackID int) int {
	for i, id := range p.TrackIDs {
		if id == trackID {
			return i
		}
	}
	return -1
}

// Snapshot - неизменяемое состояние всех плейлистов на один момент времени.
// Любая мутация хранилища создает новый Snapshot.
type Snapshot struct {
	playlists []Playlist
	lastID    int
}

var emptySnapshot = &Snapshot{}

// Playlists возвращает копию плейлистов в порядке создания
func (s *Snapshot) Playlists() []Playlist {
	result := make([]Playlist, len(s.playlists))
	for i, p := range s.playlists {
		result[i] = p.clone()
	}
	return result
}

// Get возвращает копию плейлиста по ID
func (s *Snapshot) Get(id int) (Playlist, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.playlists[i].clone(), true
	}
	return Playlist{}, false
}

// Has сообщает, существует ли плейлист
func (s *Snapshot) Has(id int) bool {
	return s.indexOf(id) >= 0
}

// Len возвращает количество плейлистов
func (s *Snapshot) Len() int {
	return len(s.playlists)
}

// LastID возвращает последний выданный ID
func (s *Snapshot) LastID() int {
	return s.lastID
}

func (s *Snapshot) indexOf(id int) int {
	for i, p := range s.playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Функции ниже не меняют исходный снимок: они строят новый,
// разделяя с исходным только неизмененные плейлисты.

func (s *Snapshot) withCreated(name string) (*Snapshot, int) {
	id := s.lastID + 1
	playlists := make([]Playlist, len(s.playlists), len(s.playlists)+1)
	copy(playlists, s.playlists)
	playlists = append(playlists, Playlist{ID: id, Name: name, TrackIDs: []int{}})
	return &Snapshot{playlists: playlists, lastID: id}, id
}

func (s *Snapshot) withDeleted(id int) *Snapshot {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	playlists := make([]Playlist, 0, len(s.playlists)-1)
	playlists = append(playlists, s.playlists[:i]...)
	playlists = append(playlists, s.playlists[i+1:]...)
	return &Snapshot{playlists: playlists, lastID: s.lastID}
}

func (s *Snapshot) withReplaced(i int, p Playlist) *Snapshot {
	playlists := make([]Playlist, len(s.playlists))
	copy(playlists, s.playlists)
	playlists[i] = p
	return &Snapshot{playlists: playlists, lastID: s.lastID}
}

func (s *Snapshot) withTrackAdded(playlistID, trackID int) *Snapshot {
	i := s.indexOf(playlistID)
	if i < 0 {
		return s
	}
	p := s.playlists[i]
	ids := make([]int, len(p.TrackIDs), len(p.TrackIDs)+1)
	copy(ids, p.TrackIDs)
	p.TrackIDs = append(ids, trackID)
	return s.withReplaced(i, p)
}

// withTrackRemoved удаляет все вхождения трека
func (s *Snapshot) withTrackRemoved(playlistID, trackID int) *Snapshot {
	i := s.indexOf(playlistID)
	if i < 0 || s.playlists[i].IndexOf(trackID) < 0 {
		return s
	}
	p := s.playlists[i]
	ids := make([]int, 0, len(p.TrackIDs))
	for _, id := range p.TrackIDs {
		if id != trackID {
			ids = append(ids, id)
		}
	}
	p.TrackIDs = ids
	return s.withReplaced(i, p)
}

func (s *Snapshot) withRenamed(playlistID int, name string) *Snapshot {
	i := s.indexOf(playlistID)
	if i < 0 {
		return s
	}
	p := s.playlists[i]
	p.Name = name
	return s.withReplaced(i, p)
}
