package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-playbox/internal/streaming"
)

// resampleQuality - качество передискретизации для треков с другой частотой
const resampleQuality = 4

// BeepEngine воспроизводит MP3 через системный вывод звука
type BeepEngine struct {
	logger *slog.Logger

	mutex         sync.Mutex
	isInitialized bool
	sampleRate    beep.SampleRate
}

// NewBeepEngine создает движок. Динамики инициализируются при первом Acquire.
func NewBeepEngine(logger *slog.Logger) *BeepEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &BeepEngine{logger: logger}
}

// Acquire открывает источник и декодирует MP3
func (e *BeepEngine) Acquire(ctx context.Context, sourceRef string) (Handle, error) {
	source, err := streaming.Open(ctx, sourceRef)
	if err != nil {
		return nil, err
	}

	// Отмена во время декодирования закрывает источник и прерывает чтение.
	// После возврата из Acquire ресурс от ctx не зависит.
	stop := context.AfterFunc(ctx, func() { source.Close() })

	// Декодер закрывает источник при своем закрытии
	streamer, format, err := mp3.Decode(source)
	if !stop() {
		if err == nil {
			streamer.Close()
		}
		return nil, context.Cause(ctx)
	}
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	if err := e.initSpeaker(format); err != nil {
		streamer.Close()
		return nil, err
	}

	h := &beepHandle{
		streamer: streamer,
		format:   format,
		done:     make(chan struct{}, 1),
	}
	h.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	h.output = h.ctrl
	if format.SampleRate != e.sampleRate {
		h.output = beep.Resample(resampleQuality, format.SampleRate, e.sampleRate, h.ctrl)
	}

	e.logger.Debug("audio acquired", "source", sourceRef, "sample_rate", int(format.SampleRate))
	return h, nil
}

// initSpeaker инициализирует динамики один раз на процесс
func (e *BeepEngine) initSpeaker(format beep.Format) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.isInitialized {
		return nil
	}
	err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
	if err != nil {
		return fmt.Errorf("ошибка инициализации динамиков: %w", err)
	}
	e.sampleRate = format.SampleRate
	e.isInitialized = true
	return nil
}

type beepHandle struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	output   beep.Streamer
	done     chan struct{}

	// queued - поток передан динамикам и еще не доиграл
	queued   atomic.Bool
	released atomic.Bool
}

func (h *beepHandle) Play() {
	if h.released.Load() {
		return
	}

	speaker.Lock()
	h.ctrl.Paused = false
	if n := h.streamer.Len(); n > 0 && h.streamer.Position() >= n {
		// Доигравший трек начинается заново
		_ = h.streamer.Seek(0)
	}
	speaker.Unlock()

	if h.queued.CompareAndSwap(false, true) {
		speaker.Play(beep.Seq(h.output, beep.Callback(h.finish)))
	}
}

// finish вызывается из горутины динамиков под их блокировкой
func (h *beepHandle) finish() {
	h.queued.Store(false)
	if h.released.Load() {
		return
	}
	select {
	case h.done <- struct{}{}:
	default:
	}
}

func (h *beepHandle) Pause() {
	speaker.Lock()
	h.ctrl.Paused = true
	speaker.Unlock()
}

func (h *beepHandle) Stop() {
	speaker.Lock()
	h.ctrl.Paused = true
	_ = h.streamer.Seek(0)
	speaker.Unlock()
}

func (h *beepHandle) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return nil
	}

	// Пустой Ctrl завершается, и динамики убирают его из очереди
	speaker.Lock()
	h.ctrl.Paused = true
	h.ctrl.Streamer = nil
	speaker.Unlock()

	if err := h.streamer.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия потока: %w", err)
	}
	return nil
}

func (h *beepHandle) Done() <-chan struct{} {
	return h.done
}

func (h *beepHandle) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return h.format.SampleRate.D(h.streamer.Position())
}

func (h *beepHandle) Length() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return h.format.SampleRate.D(h.streamer.Len())
}
