package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/hazadus/go-playbox/internal/data"
)

// videoClient - часть youtube.Client, нужная для скачивания
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

var _ videoClient = (*youtube.Client)(nil)

var (
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
	}
	bareVideoID     = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	unsafeFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// FetchYouTube скачивает лучшую аудио дорожку видео в директорию загрузок
// и добавляет файл в каталог
func (s *Service) FetchYouTube(ctx context.Context, url string) (data.Track, error) {
	if s.videos == nil {
		return data.Track{}, fmt.Errorf("клиент YouTube не настроен")
	}

	videoID, err := ExtractVideoID(url)
	if err != nil {
		return data.Track{}, err
	}

	video, err := s.videos.GetVideoContext(ctx, videoID)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения информации о видео: %w", err)
	}

	format := bestAudioFormat(video.Formats)
	if format == nil {
		return data.Track{}, fmt.Errorf("аудио формат не найден")
	}

	stream, _, err := s.videos.GetStreamContext(ctx, video, format)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения потока: %w", err)
	}
	defer stream.Close()

	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return data.Track{}, fmt.Errorf("ошибка создания директории: %w", err)
	}

	filePath := filepath.Join(s.downloadDir, SanitizeFileName(video.Title)+extensionFor(format.MimeType))
	size, err := writeFile(filePath, stream)
	if err != nil {
		return data.Track{}, err
	}
	s.logger.Info("downloaded audio", "videoID", videoID, "itag", format.ItagNo, "file", filePath)

	return s.register(data.Track{
		Artist:    video.Author,
		Title:     video.Title,
		Length:    int(video.Duration.Seconds()),
		FileSize:  size,
		SourceRef: filePath,
	})
}

func writeFile(filePath string, stream io.Reader) (int64, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания файла: %w", err)
	}

	size, err := io.Copy(file, stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return 0, fmt.Errorf("ошибка скачивания: %w", err)
	}
	return size, nil
}

// ExtractVideoID извлекает ID видео из различных форматов YouTube URL
func ExtractVideoID(url string) (string, error) {
	for _, re := range videoIDPatterns {
		if matches := re.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	if bareVideoID.MatchString(url) {
		return url, nil
	}
	return "", fmt.Errorf("не удалось извлечь ID видео из URL: %s", url)
}

// bestAudioFormat выбирает дорожку с наибольшим битрейтом, предпочитая MP4/M4A
func bestAudioFormat(formats youtube.FormatList) *youtube.Format {
	audio := formats.WithAudioChannels()
	if len(audio) == 0 {
		return nil
	}

	isMP4 := func(f *youtube.Format) bool {
		return strings.Contains(f.MimeType, "mp4") || strings.Contains(f.MimeType, "m4a")
	}

	best := &audio[0]
	for i := range audio {
		f := &audio[i]
		switch {
		case isMP4(f) && !isMP4(best):
			best = f
		case isMP4(f) == isMP4(best) && f.Bitrate > best.Bitrate:
			best = f
		}
	}
	return best
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "mpeg"):
		return ".mp3"
	case strings.Contains(mimeType, "webm"):
		return ".webm"
	default:
		return ".m4a"
	}
}

// SanitizeFileName очищает имя файла от недопустимых символов
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(unsafeFileChars.ReplaceAllString(name, "_"))
	if runes := []rune(name); len(runes) > 200 {
		name = string(runes[:200])
	}
	if name == "" {
		name = "audio"
	}
	return name
}
