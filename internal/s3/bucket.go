// Package s3 хранит аудио файлы каталога в бакете S3
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

type uploadAPI interface {
	UploadWithContext(ctx context.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type deleteAPI interface {
	DeleteObjectWithContext(ctx context.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Bucket загружает и удаляет объекты одного бакета
type Bucket struct {
	uploader uploadAPI
	client   deleteAPI
	config   Config
}

// NewBucket создает клиента бакета
func NewBucket(config Config) (*Bucket, error) {
	if config.BucketName == "" {
		return nil, fmt.Errorf("не задано имя бакета")
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Сторонние S3 совместимые хранилища требуют path-style адресов
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return newBucket(config, s3manager.NewUploader(sess), s3.New(sess)), nil
}

func newBucket(config Config, uploader uploadAPI, client deleteAPI) *Bucket {
	return &Bucket{uploader: uploader, client: client, config: config}
}

// Upload загружает MP3 под ключом key и возвращает публичный адрес объекта
func (b *Bucket) Upload(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(b.config.BucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	return b.URLFor(key), nil
}

// Delete удаляет объект
func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}

// URLFor возвращает адрес объекта
func (b *Bucket) URLFor(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.baseURL(), b.config.BucketName, key)
}

// KeyFromURL возвращает ключ объекта, если адрес указывает в этот бакет
func (b *Bucket) KeyFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", b.baseURL(), b.config.BucketName)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}

func (b *Bucket) baseURL() string {
	if b.config.Endpoint != "" {
		return strings.TrimSuffix(b.config.Endpoint, "/")
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com", b.config.Region)
}
