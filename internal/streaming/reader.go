// Package streaming открывает источники аудио: локальные файлы и HTTP потоки
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hazadus/go-playbox/internal/data"
)

// DefaultBufferSize - размер буфера для сетевых потоков
const DefaultBufferSize = 256 * 1024

// httpClient без общего таймаута: поток читается столько, сколько играет трек
var httpClient = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       300 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// Reader представляет буферизованный HTTP поток
type Reader struct {
	reader *bufio.Reader
	body   io.ReadCloser
	cancel context.CancelFunc
}

// NewReader открывает HTTP поток по адресу. ctx ограничивает только
// установку соединения и получение заголовков: после возврата поток
// читается до Close, даже если ctx отменен.
func NewReader(ctx context.Context, rawURL string, bufferSize int) (*Reader, error) {
	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(ctx, cancel)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		stop()
		cancel()
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Отключаем сжатие и читаем поток с начала
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("User-Agent", "go-playbox/1.0")

	resp, err := httpClient.Do(req)
	if !stop() {
		// ctx отменен во время запроса
		if err == nil {
			resp.Body.Close()
		}
		cancel()
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", context.Cause(ctx))
	}
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		body:   resp.Body,
		cancel: cancel,
	}, nil
}

// Read реализует интерфейс io.Reader
func (sr *Reader) Read(p []byte) (int, error) {
	return sr.reader.Read(p)
}

// Close закрывает соединение
func (sr *Reader) Close() error {
	err := sr.body.Close()
	sr.cancel()
	return err
}

// IsRemote сообщает, указывает ли ссылка на сетевой ресурс
func IsRemote(sourceRef string) bool {
	lower := strings.ToLower(sourceRef)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open открывает источник по ссылке: http(s) URL, file:// URI или путь к файлу
func Open(ctx context.Context, sourceRef string) (io.ReadCloser, error) {
	if strings.TrimSpace(sourceRef) == "" {
		return nil, fmt.Errorf("пустая ссылка на источник")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if IsRemote(sourceRef) {
		return NewReader(ctx, sourceRef, DefaultBufferSize)
	}

	path := sourceRef
	if strings.HasPrefix(sourceRef, "file://") {
		u, err := url.Parse(sourceRef)
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора URI %s: %w", sourceRef, err)
		}
		path = u.Path
	}

	path, err := data.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка раскрытия пути: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	return file, nil
}
