// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/logging"
)

// DefaultPath - путь к файлу конфигурации по умолчанию
const DefaultPath = "~/.playbox/config.yaml"

// EnvPrefix - префикс переменных окружения, например PLAYBOX_CATALOG_PATH
const EnvPrefix = "PLAYBOX"

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogPath   string         `mapstructure:"catalog_path"`
	DownloadDir   string         `mapstructure:"download_dir"`
	AwsBucketName string         `mapstructure:"aws_bucket_name"`
	AwsAccessKey  string         `mapstructure:"aws_access_key"`
	AwsSecretKey  string         `mapstructure:"aws_secret_key"`
	AwsRegion     string         `mapstructure:"aws_region"`
	AwsEndpoint   string         `mapstructure:"aws_endpoint"`
	Logging       logging.Config `mapstructure:"logging"`
}

// defaults перечисляет все ключи: viper подставляет переменные окружения
// только для известных ему ключей
var defaults = map[string]interface{}{
	"catalog_path":    "~/.playbox/catalog.yaml",
	"download_dir":    "~/Downloads",
	"aws_bucket_name": "",
	"aws_access_key":  "",
	"aws_secret_key":  "",
	"aws_region":      "",
	"aws_endpoint":    "",
	"logging.file":    "~/.playbox/playbox.log",
	"logging.level":   "INFO",
}

// LoadConfig загружает конфигурацию из файла и переменных окружения.
// Пустой путь означает файл по умолчанию. Отсутствующий файл не ошибка.
func LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		filePath = DefaultPath
	}
	path, err := data.ExpandPath(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения домашней директории: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Переменные окружения переопределяют файл
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка доступа к файлу конфигурации: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Раскрываем тильду в путях
	for _, p := range []*string{&cfg.CatalogPath, &cfg.DownloadDir, &cfg.Logging.File} {
		expanded, err := data.ExpandPath(*p)
		if err != nil {
			return nil, fmt.Errorf("ошибка раскрытия пути %s: %w", *p, err)
		}
		*p = expanded
	}

	return cfg, nil
}

// HasS3 сообщает, заданы ли параметры хранилища S3
func (c *Config) HasS3() bool {
	return c.AwsBucketName != "" && c.AwsRegion != ""
}
