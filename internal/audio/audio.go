// Package audio описывает аудио движок, которым пользуется сессия воспроизведения
package audio

import (
	"context"
	"time"
)

// Engine получает аудио ресурс по ссылке на источник
type Engine interface {
	// Acquire открывает и декодирует источник. Воспроизведение не начинается
	// до вызова Play. При ошибке движок не удерживает никаких ресурсов.
	// ctx ограничивает только получение: полученный Handle работает и после
	// отмены ctx, до вызова Release.
	Acquire(ctx context.Context, sourceRef string) (Handle, error)
}

// Handle - полученный аудио ресурс
type Handle interface {
	Play()
	Pause()
	// Stop останавливает воспроизведение и перематывает в начало
	Stop()
	// Release освобождает ресурс. Повторный вызов ничего не делает.
	Release() error
	// Done получает значение каждый раз, когда трек доиграл до конца сам
	Done() <-chan struct{}
	Position() time.Duration
	Length() time.Duration
}
