// Package importer пополняет файл каталога: локальные файлы, загрузка в S3
// и скачивание аудио с YouTube
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/metadata"
)

// objectStore - хранилище аудио файлов
type objectStore interface {
	Upload(ctx context.Context, reader io.Reader, key string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// Service изменяет каталог и сохраняет его в файл после каждой операции
type Service struct {
	library     *data.Library
	catalogPath string
	extractor   *metadata.Extractor
	bucket      objectStore
	videos      videoClient
	downloadDir string
	logger      *slog.Logger
}

// Option настраивает Service
type Option func(*Service)

// WithBucket включает загрузку в S3
func WithBucket(bucket objectStore) Option {
	return func(s *Service) { s.bucket = bucket }
}

// WithVideoClient задает клиента YouTube
func WithVideoClient(client videoClient) Option {
	return func(s *Service) { s.videos = client }
}

// WithDownloadDir задает директорию для скачанных файлов
func WithDownloadDir(dir string) Option {
	return func(s *Service) { s.downloadDir = dir }
}

// NewService создает сервис импорта для каталога, сохраняемого в catalogPath
func NewService(library *data.Library, catalogPath string, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		library:     library,
		catalogPath: catalogPath,
		extractor:   metadata.NewExtractor(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportFile добавляет в каталог локальный MP3 файл
func (s *Service) ImportFile(filePath string) (data.Track, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка определения пути: %w", err)
	}

	track, err := s.extractor.Describe(absPath)
	if err != nil {
		return data.Track{}, err
	}
	track.SourceRef = absPath

	return s.register(track)
}

// ImportDir добавляет все MP3 файлы директории в алфавитном порядке.
// Файлы, которые не удалось разобрать, пропускаются.
func (s *Service) ImportDir(dir string) ([]data.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	added := make([]data.Track, 0, len(names))
	for _, name := range names {
		track, err := s.ImportFile(filepath.Join(dir, name))
		if err != nil {
			s.logger.Warn("failed to import file", "file", name, "error", err)
			continue
		}
		added = append(added, track)
	}
	return added, nil
}

// UploadFile загружает файл в S3 и добавляет в каталог его адрес
func (s *Service) UploadFile(ctx context.Context, filePath string, onProgress func(int64)) (data.Track, error) {
	if s.bucket == nil {
		return data.Track{}, fmt.Errorf("хранилище S3 не настроено")
	}

	track, err := s.extractor.Describe(filePath)
	if err != nil {
		return data.Track{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if onProgress != nil {
		reader = &ProgressReader{Reader: file, Size: track.FileSize, OnProgress: onProgress}
	}

	key := filepath.Base(filePath)
	url, err := s.bucket.Upload(ctx, reader, key)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}
	track.SourceRef = url

	s.logger.Info("uploaded file", "file", filePath, "url", url)
	return s.register(track)
}

// Remove удаляет трек из каталога и его объект из S3, если трек хранится в бакете
func (s *Service) Remove(ctx context.Context, id int) (data.Track, error) {
	track, err := s.library.TrackByID(id)
	if err != nil {
		return data.Track{}, err
	}
	removed := *track

	if s.bucket != nil {
		if key, ok := s.bucket.KeyFromURL(removed.SourceRef); ok {
			if err := s.bucket.Delete(ctx, key); err != nil {
				return data.Track{}, err
			}
			s.logger.Info("deleted object", "key", key)
		}
	}

	if err := s.library.DeleteTrackByID(id); err != nil {
		return data.Track{}, err
	}
	if err := s.library.SaveData(s.catalogPath); err != nil {
		return data.Track{}, err
	}

	s.logger.Info("removed track", "trackID", id)
	return removed, nil
}

func (s *Service) register(track data.Track) (data.Track, error) {
	added := s.library.AddTrack(track)
	if err := s.library.SaveData(s.catalogPath); err != nil {
		// Откатываем, чтобы каталог в памяти совпадал с файлом
		_ = s.library.DeleteTrackByID(added.ID)
		return data.Track{}, err
	}

	s.logger.Info("added track", "trackID", added.ID, "source", added.SourceRef)
	return added, nil
}

// ProgressReader сообщает, сколько байт прочитано
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}
