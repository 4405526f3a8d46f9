// Package logging настраивает структурированное логирование приложения
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazadus/go-playbox/internal/data"
)

// Config содержит настройки логирования
type Config struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Setup создает логгер, пишущий JSON в файл. Интерфейс терминала занят
// плеером, поэтому логи в stdout не выводятся.
func Setup(cfg Config) (*slog.Logger, error) {
	if cfg.File == "" {
		return Null(), nil
	}

	logPath, err := data.ExpandPath(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения домашней директории: %w", err)
	}

	// Создаем директорию для лога, если ее нет
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла лога: %w", err)
	}

	return New(logFile, cfg.Level), nil
}

// New создает JSON логгер поверх произвольного writer
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel преобразует строковый уровень в slog.Level. По умолчанию INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Null возвращает логгер, который ничего не пишет
func Null() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
