// Package data содержит описание файла каталога треков и операции с ним
package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track описывает один трек каталога
type Track struct {
	ID        int    `yaml:"id"`
	Artist    string `yaml:"artist"`
	Title     string `yaml:"title"`
	Album     string `yaml:"album,omitempty"`
	Length    int    `yaml:"length,omitempty"`    // Длина трека в секундах
	FileSize  int64  `yaml:"file_size,omitempty"` // Размер файла в байтах
	SourceRef string `yaml:"source_ref"`          // Путь к файлу, file:// URI или URL трека
}

// UnmarshalYAML поддерживает старый ключ url вместо source_ref
func (t *Track) UnmarshalYAML(value *yaml.Node) error {
	type plain Track
	var raw struct {
		plain `yaml:",inline"`
		URL   string `yaml:"url"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*t = Track(raw.plain)
	if t.SourceRef == "" {
		t.SourceRef = raw.URL
	}
	return nil
}

// Library - содержимое файла каталога
type Library struct {
	Tracks []Track `yaml:"tracks"`
}

// NewLibrary создает пустой каталог
func NewLibrary() *Library {
	return &Library{
		Tracks: make([]Track, 0),
	}
}

// ExpandPath раскрывает тильду в начале пути
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}

// LoadData загружает каталог из файла
func (d *Library) LoadData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, инициализируем пустым каталогом
		if os.IsNotExist(err) {
			*d = *NewLibrary()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла каталога: %w", err)
	}
	if len(content) == 0 {
		*d = *NewLibrary()
		return nil
	}
	if err := yaml.Unmarshal(content, d); err != nil {
		return fmt.Errorf("ошибка разбора каталога: %w", err)
	}
	if d.Tracks == nil {
		d.Tracks = make([]Track, 0)
	}
	return nil
}

// SaveData сохраняет каталог в файл
func (d *Library) SaveData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации каталога: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла каталога: %w", err)
	}
	return nil
}

// AddTrack добавляет трек и присваивает ему ID, на единицу больший максимального
func (d *Library) AddTrack(track Track) Track {
	track.ID = 1
	for _, t := range d.Tracks {
		if t.ID >= track.ID {
			track.ID = t.ID + 1
		}
	}
	d.Tracks = append(d.Tracks, track)
	return track
}

// TrackByID возвращает трек по ID
func (d *Library) TrackByID(id int) (*Track, error) {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			return &d.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трека с ID %d не найдено", id)
}

// DeleteTrackByID удаляет трек по ID
func (d *Library) DeleteTrackByID(id int) error {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			d.Tracks = append(d.Tracks[:i], d.Tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("трека с ID %d не найдено", id)
}

// Validate проверяет, что ID треков положительны и уникальны, а источник указан
func (d *Library) Validate() error {
	return ValidateTracks(d.Tracks)
}

// ValidateTracks проверяет набор треков по тем же правилам, что и Validate
func ValidateTracks(tracks []Track) error {
	seen := make(map[int]bool, len(tracks))
	for _, t := range tracks {
		if t.ID <= 0 {
			return fmt.Errorf("некорректный ID трека %d (%q): ID должен быть положительным", t.ID, t.Title)
		}
		if seen[t.ID] {
			return fmt.Errorf("повторяющийся ID трека %d", t.ID)
		}
		if strings.TrimSpace(t.SourceRef) == "" {
			return fmt.Errorf("у трека с ID %d отсутствует источник", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
