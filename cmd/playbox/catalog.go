package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/importer"
	"github.com/hazadus/go-playbox/internal/s3"
	"github.com/hazadus/go-playbox/internal/utils"
)

// createCatalogCommand создает группу команд для изменения файла каталога
func (app *Application) createCatalogCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the track catalog file",
		Long:  `Add local files, upload to S3, fetch audio from YouTube and remove tracks from the catalog.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import [file or directory]",
		Short: "Add local mp3 files to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.importLocal(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [file path]",
		Short: "Upload an mp3 file to S3 storage and add it to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Загрузка больших файлов ограничена 10 минутами
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.uploadToS3(uploadCtx, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fetch [youtube url]",
		Short: "Download audio from YouTube and add it to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.fetchYouTube(ctx, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [trackid]",
		Short: "Remove a track from the catalog (and from S3 if it is stored there)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("❌ Ошибка: неверный ID трека: %s\n", args[0])
				return nil
			}
			return app.removeTrack(ctx, id)
		},
	})

	return cmd
}

// importService создает сервис импорта по конфигурации приложения
func (app *Application) importService() (*importer.Service, error) {
	if app.importer != nil {
		return app.importer, nil
	}

	opts := []importer.Option{
		importer.WithVideoClient(&youtube.Client{}),
		importer.WithDownloadDir(app.Config.DownloadDir),
	}

	if app.Config.HasS3() {
		bucket, err := s3.NewBucket(s3.Config{
			Region:     app.Config.AwsRegion,
			AccessKey:  app.Config.AwsAccessKey,
			SecretKey:  app.Config.AwsSecretKey,
			Endpoint:   app.Config.AwsEndpoint,
			BucketName: app.Config.AwsBucketName,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания клиента S3: %w", err)
		}
		opts = append(opts, importer.WithBucket(bucket))
	}

	app.importer = importer.NewService(app.Library, app.Config.CatalogPath, app.Logger, opts...)
	return app.importer, nil
}

func (app *Application) importLocal(path string) error {
	service, err := app.importService()
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("файл не найден: %s", path)
	}

	var added []data.Track
	if info.IsDir() {
		fmt.Printf("📁 Импортируем директорию: %s\n", path)
		if added, err = service.ImportDir(path); err != nil {
			return err
		}
	} else {
		track, err := service.ImportFile(path)
		if err != nil {
			return err
		}
		added = append(added, track)
	}

	for _, track := range added {
		printAdded(track)
	}
	fmt.Printf("📦 Добавлено треков: %d\n", len(added))
	return app.syncCatalog()
}

// uploadToS3 загружает файл в S3 с отображением прогресса
func (app *Application) uploadToS3(ctx context.Context, filePath string) error {
	service, err := app.importService()
	if err != nil {
		return err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("файл не найден: %s", filePath)
	}

	fmt.Printf("📤 Загружаем файл в S3:\n")
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(info.Size()))
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
	fmt.Println()

	startTime := time.Now()
	track, err := service.UploadFile(ctx, filePath, func(bytesRead int64) {
		elapsed := time.Since(startTime)
		percentage := float64(bytesRead) / float64(info.Size()) * 100
		speed := float64(bytesRead) / elapsed.Seconds()

		fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s",
			percentage,
			utils.FormatFileSize(int64(speed)),
			utils.FormatDuration(elapsed))
	})
	if err != nil {
		return fmt.Errorf("ошибка загрузки файла: %w", err)
	}

	fmt.Printf("\n✅ Файл успешно загружен в S3!\n")
	fmt.Printf("   URL: %s\n", track.SourceRef)
	printAdded(track)
	return app.syncCatalog()
}

func (app *Application) fetchYouTube(ctx context.Context, url string) error {
	service, err := app.importService()
	if err != nil {
		return err
	}

	fmt.Printf("⬇️  Скачиваем аудио: %s\n", url)
	track, err := service.FetchYouTube(ctx, url)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Файл сохранен: %s (%s)\n", track.SourceRef, utils.FormatFileSize(track.FileSize))
	printAdded(track)
	return app.syncCatalog()
}

func (app *Application) removeTrack(ctx context.Context, id int) error {
	service, err := app.importService()
	if err != nil {
		return err
	}

	track, err := service.Remove(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Удален трек: %s - %s\n", track.Artist, track.Title)
	return app.syncCatalog()
}

func printAdded(track data.Track) {
	fmt.Printf("➕ #%d %s - %s [%s]\n",
		track.ID, track.Artist, track.Title, utils.FormatDurationFromSeconds(track.Length))
}
