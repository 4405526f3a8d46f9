package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, values map[string]interface{}) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content, err := yaml.Marshal(values)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}
	return configPath
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, map[string]interface{}{
		"catalog_path":    "/srv/music/catalog.yaml",
		"aws_bucket_name": "test-bucket",
		"aws_access_key":  "test-access-key",
		"aws_secret_key":  "test-secret-key",
		"aws_region":      "us-east-1",
		"aws_endpoint":    "https://s3.amazonaws.com",
		"download_dir":    "~/test-downloads",
		"logging": map[string]string{
			"file":  "/tmp/playbox.log",
			"level": "DEBUG",
		},
	})

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if cfg.CatalogPath != "/srv/music/catalog.yaml" {
		t.Errorf("Ожидался CatalogPath: /srv/music/catalog.yaml, получено: %s", cfg.CatalogPath)
	}
	if cfg.AwsBucketName != "test-bucket" {
		t.Errorf("Ожидался AwsBucketName: test-bucket, получено: %s", cfg.AwsBucketName)
	}
	if cfg.AwsSecretKey != "test-secret-key" {
		t.Errorf("Ожидался AwsSecretKey: test-secret-key, получено: %s", cfg.AwsSecretKey)
	}
	if cfg.AwsEndpoint != "https://s3.amazonaws.com" {
		t.Errorf("Ожидался AwsEndpoint: https://s3.amazonaws.com, получено: %s", cfg.AwsEndpoint)
	}
	if cfg.Logging.File != "/tmp/playbox.log" || cfg.Logging.Level != "DEBUG" {
		t.Errorf("Неожиданные настройки логирования: %+v", cfg.Logging)
	}
	if !cfg.HasS3() {
		t.Error("Ожидалось, что S3 настроен")
	}

	// Проверяем, что DownloadDir раскрывается с тильдой
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "test-downloads")
	if cfg.DownloadDir != expected {
		t.Errorf("Ожидался DownloadDir: %s, получено: %s", expected, cfg.DownloadDir)
	}
}

func TestDefaultConfig(t *testing.T) {
	configPath := writeConfig(t, map[string]interface{}{
		"aws_bucket_name": "test-bucket",
	})

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	home, _ := os.UserHomeDir()
	if cfg.DownloadDir != filepath.Join(home, "Downloads") {
		t.Errorf("Ожидался DownloadDir по умолчанию, получено: %s", cfg.DownloadDir)
	}
	if cfg.CatalogPath != filepath.Join(home, ".playbox", "catalog.yaml") {
		t.Errorf("Ожидался CatalogPath по умолчанию, получено: %s", cfg.CatalogPath)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Ожидался уровень INFO, получено: %s", cfg.Logging.Level)
	}
	if cfg.HasS3() {
		t.Error("Без региона S3 не считается настроенным")
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Отсутствующий файл не должен быть ошибкой: %v", err)
	}
	if !strings.HasSuffix(cfg.CatalogPath, filepath.Join(".playbox", "catalog.yaml")) {
		t.Errorf("Ожидался CatalogPath по умолчанию, получено: %s", cfg.CatalogPath)
	}
}

func TestEnvVarOverride(t *testing.T) {
	configPath := writeConfig(t, map[string]interface{}{
		"aws_bucket_name": "default-bucket",
		"aws_access_key":  "default-key",
	})

	t.Setenv("PLAYBOX_AWS_BUCKET_NAME", "env-bucket")
	t.Setenv("PLAYBOX_CATALOG_PATH", "/env/catalog.yaml")
	t.Setenv("PLAYBOX_LOGGING_LEVEL", "ERROR")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if cfg.AwsBucketName != "env-bucket" {
		t.Errorf("Ожидался AwsBucketName из окружения: env-bucket, получено: %s", cfg.AwsBucketName)
	}
	if cfg.CatalogPath != "/env/catalog.yaml" {
		t.Errorf("Ожидался CatalogPath из окружения, получено: %s", cfg.CatalogPath)
	}
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Ожидался уровень из окружения: ERROR, получено: %s", cfg.Logging.Level)
	}
	// Значение без переменной окружения берется из файла
	if cfg.AwsAccessKey != "default-key" {
		t.Errorf("Ожидался AwsAccessKey из файла: default-key, получено: %s", cfg.AwsAccessKey)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid_config.yaml")
	invalidYAML := `aws_bucket_name: "test-bucket"
invalid_field: [unclosed array
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Ожидалась ошибка при загрузке некорректного YAML")
	}
}
