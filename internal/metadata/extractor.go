// Package metadata извлекает описание трека из аудио файла
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"

	"github.com/hazadus/go-playbox/internal/data"
)

// UnknownArtist подставляется, когда исполнителя не удалось определить
const UnknownArtist = "Unknown Artist"

// Tags - текстовые поля трека
type Tags struct {
	Artist string
	Title  string
	Album  string
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ReadTags читает ID3 теги. Пустые поля заполняются из имени источника
// в формате "Artist - Title".
func (e *Extractor) ReadTags(reader io.ReadSeeker, source string) Tags {
	fallback := TagsFromName(source)

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return fallback
	}
	m, err := tag.ReadFrom(reader)
	if err != nil {
		return fallback
	}

	tags := Tags{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if tags.Title == "" {
		tags.Title = fallback.Title
		if tags.Artist == "" {
			tags.Artist = fallback.Artist
		}
	}
	if tags.Artist == "" {
		tags.Artist = UnknownArtist
	}
	return tags
}

// Duration вычисляет длительность MP3
func (e *Extractor) Duration(reader io.ReadSeeker) (time.Duration, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("ошибка перемотки файла: %w", err)
	}

	streamer, format, err := mp3.Decode(io.NopCloser(reader))
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Describe собирает запись каталога для локального файла без ID и источника.
// Файл, который не декодируется как MP3, считается ошибкой.
func (e *Extractor) Describe(filePath string) (data.Track, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	duration, err := e.Duration(file)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения длительности: %w", err)
	}

	tags := e.ReadTags(file, filePath)
	return data.Track{
		Artist:   tags.Artist,
		Title:    tags.Title,
		Album:    tags.Album,
		Length:   int(duration.Seconds()),
		FileSize: info.Size(),
	}, nil
}

// TagsFromName разбирает имя файла в формате "Artist - Title"
func TagsFromName(source string) Tags {
	fileName := filepath.Base(source)
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	parts := strings.Split(name, " - ")
	if len(parts) >= 2 {
		return Tags{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}
	return Tags{Artist: UnknownArtist, Title: name}
}
