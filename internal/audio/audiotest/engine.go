// Package audiotest содержит управляемый аудио движок для тестов
package audiotest

import (
	"context"
	"sync"
	"time"

	"github.com/hazadus/go-playbox/internal/audio"
)

type gate struct {
	ch          chan struct{}
	ignoreClose bool
}

// Engine - движок без звука. Тест управляет задержками и ошибками получения
// ресурсов и может завершить трек вручную.
type Engine struct {
	mu       sync.Mutex
	gates    map[string]*gate
	failures map[string]error
	handles  []*Handle
	started  chan string
}

var _ audio.Engine = (*Engine)(nil)

// New создает движок
func New() *Engine {
	return &Engine{
		gates:    make(map[string]*gate),
		failures: make(map[string]error),
		started:  make(chan string, 64),
	}
}

// Block задерживает следующий Acquire источника до вызова open или отмены контекста
func (e *Engine) Block(sourceRef string) (open func()) {
	return e.addGate(sourceRef, false)
}

// Hold задерживает следующий Acquire источника до вызова open, игнорируя отмену
// контекста. Так ведет себя движок, который дозагружает уже ненужный трек.
func (e *Engine) Hold(sourceRef string) (open func()) {
	return e.addGate(sourceRef, true)
}

func (e *Engine) addGate(sourceRef string, ignoreCancel bool) func() {
	g := &gate{ch: make(chan struct{}), ignoreClose: ignoreCancel}

	e.mu.Lock()
	e.gates[sourceRef] = g
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(g.ch) })
	}
}

// Fail заставляет каждый Acquire источника возвращать ошибку
func (e *Engine) Fail(sourceRef string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[sourceRef] = err
}

// Started получает ссылку на источник в начале каждого Acquire
func (e *Engine) Started() <-chan string {
	return e.started
}

// WaitStarted ждет начала Acquire указанного источника
func (e *Engine) WaitStarted(sourceRef string, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case ref := <-e.started:
			if ref == sourceRef {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

// Acquire реализует audio.Engine
func (e *Engine) Acquire(ctx context.Context, sourceRef string) (audio.Handle, error) {
	e.mu.Lock()
	g := e.gates[sourceRef]
	delete(e.gates, sourceRef)
	failure := e.failures[sourceRef]
	e.mu.Unlock()

	select {
	case e.started <- sourceRef:
	default:
	}

	if g != nil {
		if g.ignoreClose {
			<-g.ch
		} else {
			select {
			case <-g.ch:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if failure != nil {
		return nil, failure
	}

	h := &Handle{
		SourceRef: sourceRef,
		length:    DefaultLength,
		done:      make(chan struct{}, 1),
	}

	e.mu.Lock()
	e.handles = append(e.handles, h)
	e.mu.Unlock()
	return h, nil
}

// Handles возвращает все выданные ресурсы в порядке получения
func (e *Engine) Handles() []*Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Handle(nil), e.handles...)
}

// Held возвращает число неосвобожденных ресурсов
func (e *Engine) Held() int {
	held := 0
	for _, h := range e.Handles() {
		if !h.Released() {
			held++
		}
	}
	return held
}

// Last возвращает последний выданный ресурс или nil
func (e *Engine) Last() *Handle {
	handles := e.Handles()
	if len(handles) == 0 {
		return nil
	}
	return handles[len(handles)-1]
}

// DefaultLength - длительность каждого выданного ресурса
const DefaultLength = 3 * time.Minute

// Handle - ресурс тестового движка
type Handle struct {
	SourceRef string

	mu       sync.Mutex
	playing  bool
	released bool
	position time.Duration
	length   time.Duration
	done     chan struct{}
}

var _ audio.Handle = (*Handle)(nil)

func (h *Handle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.released {
		h.playing = true
	}
}

func (h *Handle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
}

func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
	h.position = 0
}

func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
	h.released = true
	return nil
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position
}

func (h *Handle) Length() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.length
}

// SetLength меняет длительность. Ноль означает неизвестную длительность,
// как у потока без заголовка с размером.
func (h *Handle) SetLength(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.length = d
}

// Finish имитирует естественное завершение трека
func (h *Handle) Finish() {
	h.mu.Lock()
	h.playing = false
	h.position = h.length
	h.mu.Unlock()

	select {
	case h.done <- struct{}{}:
	default:
	}
}

// Playing сообщает, воспроизводится ли ресурс
func (h *Handle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

// Released сообщает, освобожден ли ресурс
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}
