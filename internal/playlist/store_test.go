package playlist

import (
	"errors"
	"testing"

	"github.com/go-test/deep"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/catalog"
	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	c, err := catalog.New([]data.Track{
		{ID: 1, Title: "Alpha", Artist: "X", SourceRef: "alpha.mp3"},
		{ID: 2, Title: "Beta", Artist: "Y", SourceRef: "beta.mp3"},
		{ID: 3, Title: "Gamma", Artist: "Z", SourceRef: "gamma.mp3"},
	})
	if err != nil {
		t.Fatalf("Ошибка создания каталога: %v", err)
	}
	return NewStore(c, logging.Null())
}

func trackIDs(t *testing.T, s *Store, playlistID int) []int {
	t.Helper()

	p, ok := s.Snapshot().Get(playlistID)
	if !ok {
		t.Fatalf("Плейлист %d не найден", playlistID)
	}
	return p.TrackIDs
}

func TestScenarioAddAndRemove(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create("Mix")
	if err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}
	if id != 1 {
		t.Errorf("Ожидался ID: 1, получено: %d", id)
	}

	for _, trackID := range []int{1, 2, 1} {
		if err := s.AddTrack(id, trackID); err != nil {
			t.Fatalf("Ошибка добавления трека %d: %v", trackID, err)
		}
	}
	if diff := deep.Equal(trackIDs(t, s, id), []int{1, 2, 1}); diff != nil {
		t.Errorf("Неожиданный состав плейлиста: %v", diff)
	}

	// Удаление убирает все вхождения трека
	s.RemoveTrack(id, 1)
	if diff := deep.Equal(trackIDs(t, s, id), []int{2}); diff != nil {
		t.Errorf("Неожиданный состав плейлиста после удаления: %v", diff)
	}
}

func TestCreateNeverReusesIDs(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := s.Create(name); err != nil {
			t.Fatalf("Ошибка создания плейлиста: %v", err)
		}
	}
	s.Delete(2)
	fourth, err := s.Create("Four")
	if err != nil {
		t.Fatalf("Ошибка создания плейлиста: %v", err)
	}
	if fourth != 4 {
		t.Errorf("Ожидался ID: 4, получено: %d", fourth)
	}

	var got []int
	for _, p := range s.Snapshot().Playlists() {
		got = append(got, p.ID)
	}
	if diff := deep.Equal(got, []int{1, 3, 4}); diff != nil {
		t.Errorf("Неожиданные ID плейлистов: %v", diff)
	}

	// Удаление последнего плейлиста тоже не освобождает его ID
	s.Delete(4)
	fifth, _ := s.Create("Five")
	if fifth != 5 {
		t.Errorf("Ожидался ID: 5, получено: %d", fifth)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(name)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Create(%q): ожидалась ошибка валидации, получено: %v", name, err)
		}
	}
	if s.Snapshot().Len() != 0 {
		t.Error("Ошибка валидации не должна менять состояние")
	}

	// Имя сохраняется без пробелов по краям
	id, _ := s.Create("  Road trip  ")
	if p, _ := s.Snapshot().Get(id); p.Name != "Road trip" {
		t.Errorf("Ожидалось имя 'Road trip', получено %q", p.Name)
	}
	// Неудачная попытка не тратит ID
	if id != 1 {
		t.Errorf("Ожидался ID: 1, получено: %d", id)
	}
}

func TestAddTrackNotFound(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.Create("Mix")
	before := s.Snapshot()

	if err := s.AddTrack(id, 99); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Ожидалась ошибка NotFound для трека, получено: %v", err)
	}
	if err := s.AddTrack(42, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Ожидалась ошибка NotFound для плейлиста, получено: %v", err)
	}
	if s.Snapshot() != before {
		t.Error("Ошибка не должна менять снимок")
	}
}

func TestRemoveTrackNoOp(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.Create("Mix")
	_ = s.AddTrack(id, 2)
	before := s.Snapshot()

	s.RemoveTrack(id, 3)  // трека нет в плейлисте
	s.RemoveTrack(42, 2)  // плейлиста нет
	s.RemoveTrack(id, 99) // трека нет в каталоге

	if s.Snapshot() != before {
		t.Error("Удаление отсутствующего трека не должно создавать новый снимок")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.Create("Mix")

	events := 0
	s.Subscribe(func(e Event) {
		if e.Kind == Deleted {
			events++
		}
	})

	s.Delete(id)
	s.Delete(id)
	s.Delete(100)

	if s.Snapshot().Has(id) {
		t.Error("Плейлист должен быть удален")
	}
	if events != 1 {
		t.Errorf("Ожидалось 1 событие удаления, получено %d", events)
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.Create("Mix")
	_ = s.AddTrack(id, 1)

	old := s.Snapshot()
	_ = s.AddTrack(id, 2)
	s.RemoveTrack(id, 1)
	_ = s.Rename(id, "Renamed")

	// Старый снимок не изменился
	p, _ := old.Get(id)
	if diff := deep.Equal(p, Playlist{ID: id, Name: "Mix", TrackIDs: []int{1}}); diff != nil {
		t.Errorf("Старый снимок изменился: %v", diff)
	}

	// Изменение копии не влияет на снимок
	p.TrackIDs[0] = 3
	again, _ := old.Get(id)
	if again.TrackIDs[0] != 1 {
		t.Error("Get должен возвращать копию")
	}
	list := s.Snapshot().Playlists()
	list[0].TrackIDs = append(list[0].TrackIDs, 3)
	if current, _ := s.Snapshot().Get(id); len(current.TrackIDs) != 1 {
		t.Error("Playlists должен возвращать копии")
	}
}

func TestRename(t *testing.T) {
	s := newTestStore(t)
	id, _ := s.Create("Mix")

	if err := s.Rename(id, "  Evening  "); err != nil {
		t.Fatalf("Ошибка переименования: %v", err)
	}
	if p, _ := s.Snapshot().Get(id); p.Name != "Evening" {
		t.Errorf("Ожидалось имя 'Evening', получено %q", p.Name)
	}

	if err := s.Rename(id, " "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Ожидалась ошибка валидации, получено: %v", err)
	}
	if err := s.Rename(77, "Name"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Ожидалась ошибка NotFound, получено: %v", err)
	}
}

func TestEvents(t *testing.T) {
	s := newTestStore(t)

	var got []EventKind
	unsubscribe := s.Subscribe(func(e Event) {
		got = append(got, e.Kind)
		if e.Snapshot != s.Snapshot() {
			t.Errorf("Событие %v должно содержать текущий снимок", e.Kind)
		}
	})

	id, _ := s.Create("Mix")
	_ = s.AddTrack(id, 1)
	s.RemoveTrack(id, 1)
	_ = s.Rename(id, "New")
	s.Delete(id)
	unsubscribe()
	_, _ = s.Create("Ignored")

	expected := []EventKind{Created, TrackAdded, TrackRemoved, Renamed, Deleted}
	if diff := deep.Equal(got, expected); diff != nil {
		t.Errorf("Неожиданная последовательность событий: %v", diff)
	}
}

func TestIndexOf(t *testing.T) {
	p := Playlist{TrackIDs: []int{3, 1, 3}}
	if p.IndexOf(3) != 0 {
		t.Errorf("Ожидалось первое вхождение 0, получено %d", p.IndexOf(3))
	}
	if p.IndexOf(7) != -1 {
		t.Errorf("Ожидалось -1, получено %d", p.IndexOf(7))
	}
}
