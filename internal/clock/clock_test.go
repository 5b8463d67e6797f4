package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeTime) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newFake() (*FrameClock, *fakeTime) {
	ft := &fakeTime{t: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}
	return NewWithSource(ft.now), ft
}

func TestElapsed(t *testing.T) {
	c, ft := newFake()
	if got := c.Elapsed(); got != 0 {
		t.Fatalf("Elapsed() at start = %v", got)
	}
	ft.advance(1500 * time.Millisecond)
	if got := c.Elapsed(); got != 1.5 {
		t.Errorf("Elapsed() = %v, want 1.5", got)
	}
}

func TestPauseResume(t *testing.T) {
	c, ft := newFake()
	ft.advance(2 * time.Second)

	if !c.Toggle() {
		t.Fatal("Toggle() should pause a running clock")
	}
	ft.advance(10 * time.Second)
	if got := c.Elapsed(); got != 2 {
		t.Errorf("paused Elapsed() = %v, want 2", got)
	}

	if c.Toggle() {
		t.Fatal("Toggle() should resume a paused clock")
	}
	ft.advance(time.Second)
	if got := c.Elapsed(); got != 3 {
		t.Errorf("resumed Elapsed() = %v, want 3", got)
	}

	c.Resume()
	c.Pause()
	c.Pause()
	if !c.Paused() {
		t.Error("double Pause should stay paused")
	}
}

func TestSetScale(t *testing.T) {
	c, ft := newFake()
	ft.advance(4 * time.Second)

	if got := c.SetScale(4); got != 4 {
		t.Fatalf("SetScale(4) = %v", got)
	}
	ft.advance(time.Second)
	if got := c.Elapsed(); got != 8 {
		t.Errorf("Elapsed() after scaling = %v, want 8", got)
	}

	tests := []struct {
		in, want float64
	}{
		{0, MinScale},
		{-3, MinScale},
		{1000, MaxScale},
		{2, 2},
	}
	for _, tt := range tests {
		if got := c.SetScale(tt.in); got != tt.want {
			t.Errorf("SetScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFasterSlower(t *testing.T) {
	c, _ := newFake()
	if got := c.Faster(); got != 2 {
		t.Errorf("Faster() = %v", got)
	}
	c.Slower()
	if got := c.Slower(); got != 0.5 {
		t.Errorf("Slower() = %v", got)
	}
	for i := 0; i < 20; i++ {
		c.Faster()
	}
	if c.Scale() != MaxScale {
		t.Errorf("Scale() = %v, want capped at %v", c.Scale(), MaxScale)
	}
}

func TestElapsedMonotonic(t *testing.T) {
	c, ft := newFake()
	last := c.Elapsed()
	for i := 0; i < 50; i++ {
		ft.advance(37 * time.Millisecond)
		switch i % 5 {
		case 1:
			c.Toggle()
		case 3:
			c.SetScale(float64(i%7) + 0.5)
		}
		got := c.Elapsed()
		if got < last {
			t.Fatalf("step %d: Elapsed went backwards %v -> %v", i, last, got)
		}
		last = got
	}
}

func TestClampFPS(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, MinFPS}, {-5, MinFPS}, {30, 30}, {500, MaxFPS},
	}
	for _, tt := range tests {
		if got := ClampFPS(tt.in); got != tt.want {
			t.Errorf("ClampFPS(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRunDeliversFramesUntilCancel(t *testing.T) {
	c := New()
	var calls atomic.Int64
	c.AddListener(func(elapsed float64) {
		if elapsed < 0 {
			t.Errorf("negative elapsed %v", elapsed)
		}
		calls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := c.Run(ctx, MaxFPS)

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("no frames delivered")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()
	<-done
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != after {
		t.Error("listener called after Run finished")
	}
	if c.Frames() < uint64(after) {
		t.Errorf("Frames() = %d, want >= %d", c.Frames(), after)
	}
}

func TestRunUsesListenersRegisteredBeforeStart(t *testing.T) {
	c := New()
	var early, late atomic.Int64
	c.AddListener(func(float64) { early.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := c.Run(ctx, MaxFPS)
	c.AddListener(func(float64) { late.Add(1) })

	deadline := time.After(2 * time.Second)
	for early.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("no frames delivered")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	cancel()
	<-done

	if late.Load() != 0 {
		t.Errorf("listener added after Run was called %d times", late.Load())
	}
}
