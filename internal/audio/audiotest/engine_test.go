package audiotest

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	engine := New()

	h, err := engine.Acquire(context.Background(), "a.mp3")
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if engine.Held() != 1 {
		t.Errorf("Ожидался 1 удерживаемый ресурс, получено %d", engine.Held())
	}

	h.Play()
	if !engine.Last().Playing() {
		t.Error("Ресурс должен воспроизводиться")
	}

	_ = h.Release()
	_ = h.Release()
	if engine.Held() != 0 {
		t.Errorf("Ожидалось 0 удерживаемых ресурсов, получено %d", engine.Held())
	}
}

func TestFail(t *testing.T) {
	engine := New()
	failure := errors.New("broken")
	engine.Fail("bad.mp3", failure)

	if _, err := engine.Acquire(context.Background(), "bad.mp3"); !errors.Is(err, failure) {
		t.Errorf("Ожидалась ошибка broken, получено: %v", err)
	}
	if len(engine.Handles()) != 0 {
		t.Error("При ошибке ресурс не должен выдаваться")
	}
}

func TestBlockHonorsCancel(t *testing.T) {
	engine := New()
	engine.Block("slow.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		_, err := engine.Acquire(ctx, "slow.mp3")
		result <- err
	}()

	if !engine.WaitStarted("slow.mp3", time.Second) {
		t.Fatal("Acquire не начался")
	}
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Ожидалась ошибка отмены, получено: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire не завершился после отмены")
	}
}

func TestFinish(t *testing.T) {
	engine := New()
	h, _ := engine.Acquire(context.Background(), "a.mp3")
	h.Play()

	engine.Last().Finish()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("Не получено уведомление о завершении")
	}
	if engine.Last().Playing() {
		t.Error("После завершения ресурс не должен воспроизводиться")
	}
}

func TestFinishWithUnknownLength(t *testing.T) {
	engine := New()
	h, _ := engine.Acquire(context.Background(), "https://example.com/live.mp3")
	if h.Length() != DefaultLength {
		t.Errorf("Ожидалась длительность %v, получено %v", DefaultLength, h.Length())
	}

	engine.Last().SetLength(0)
	h.Play()
	engine.Last().Finish()

	<-h.Done()
	if h.Length() != 0 || h.Position() != 0 {
		t.Errorf("Ожидались нулевые длительность и позиция, получено %v и %v", h.Length(), h.Position())
	}
}
