package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.expected {
			t.Errorf("ParseLevel(%q) = %v, ожидалось %v", test.input, got, test.expected)
		}
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO")

	logger.Debug("hidden")
	logger.Info("created playlist", "playlistID", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Ожидалась 1 запись, получено %d: %s", len(lines), buf.String())
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("Запись не является JSON: %v", err)
	}
	if record["msg"] != "created playlist" {
		t.Errorf("Неожиданное сообщение: %v", record["msg"])
	}
	if record["playlistID"] != float64(1) {
		t.Errorf("Неожиданный playlistID: %v", record["playlistID"])
	}
}

func TestSetupCreatesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "playbox.log")

	logger, err := Setup(Config{File: logPath, Level: "DEBUG"})
	if err != nil {
		t.Fatalf("Ошибка настройки логгера: %v", err)
	}
	logger.Debug("hello")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Файл лога не создан: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Errorf("Файл лога не содержит запись: %s", content)
	}
}

func TestSetupWithoutFile(t *testing.T) {
	logger, err := Setup(Config{})
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if logger == nil {
		t.Fatal("Логгер не должен быть nil")
	}
}
