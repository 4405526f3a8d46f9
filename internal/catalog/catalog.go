// Package catalog содержит каталог доступных для воспроизведения треков
package catalog

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/data"
)

// snapshot - неизменяемое состояние каталога
type snapshot struct {
	tracks []data.Track
	index  map[int]int // ID трека -> позиция в tracks
}

// Catalog хранит список треков. Во время работы список не меняется,
// но может быть целиком заменен через Replace.
type Catalog struct {
	current atomic.Pointer[snapshot]
}

// New создает каталог из списка треков
func New(tracks []data.Track) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(tracks); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace атомарно заменяет содержимое каталога. При ошибке валидации
// текущее содержимое сохраняется.
func (c *Catalog) Replace(tracks []data.Track) error {
	if err := data.ValidateTracks(tracks); err != nil {
		return apperr.Validation("некорректный каталог: %v", err)
	}

	snap := &snapshot{
		tracks: make([]data.Track, len(tracks)),
		index:  make(map[int]int, len(tracks)),
	}
	copy(snap.tracks, tracks)
	for i, t := range snap.tracks {
		snap.index[t.ID] = i
	}

	c.current.Store(snap)
	return nil
}

func (c *Catalog) load() *snapshot {
	if snap := c.current.Load(); snap != nil {
		return snap
	}
	return &snapshot{}
}

// Tracks возвращает копию списка треков в порядке каталога
func (c *Catalog) Tracks() []data.Track {
	snap := c.load()
	tracks := make([]data.Track, len(snap.tracks))
	copy(tracks, snap.tracks)
	return tracks
}

// Len возвращает количество треков
func (c *Catalog) Len() int {
	return len(c.load().tracks)
}

// Lookup возвращает трек по ID
func (c *Catalog) Lookup(id int) (data.Track, bool) {
	snap := c.load()
	i, ok := snap.index[id]
	if !ok {
		return data.Track{}, false
	}
	return snap.tracks[i], true
}

// Has сообщает, есть ли трек с указанным ID
func (c *Catalog) Has(id int) bool {
	_, ok := c.load().index[id]
	return ok
}

// Search возвращает треки, у которых название или исполнитель содержат
// запрос без учета регистра. Пустой запрос возвращает весь каталог.
func (c *Catalog) Search(query string) []data.Track {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Tracks()
	}

	var result []data.Track
	for _, t := range c.load().tracks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Artist), query) {
			result = append(result, t)
		}
	}
	return result
}

// Rank выполняет нечеткий поиск по строке "исполнитель название".
// Лучшие совпадения идут первыми, при равенстве сохраняется порядок каталога.
func (c *Catalog) Rank(query string) []data.Track {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Tracks()
	}

	snap := c.load()
	targets := make([]string, len(snap.tracks))
	for i, t := range snap.tracks {
		targets[i] = t.Artist + " " + t.Title
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	result := make([]data.Track, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, snap.tracks[r.OriginalIndex])
	}
	return result
}
