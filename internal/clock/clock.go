// Package clock provides the animation clock that drives orbit positions.
package clock

import (
	"context"
	"sync"
	"time"
)

// Time scale bounds.
const (
	MinScale = 0.125
	MaxScale = 64.0
)

// Frame rate bounds.
const (
	MinFPS     = 1
	MaxFPS     = 120
	DefaultFPS = 30
)

// FrameClock measures elapsed animation seconds from a monotonic source and
// notifies listeners at a fixed frame rate. Elapsed time never decreases:
// pausing freezes it and scale changes apply from the moment they are made.
type FrameClock struct {
	mu     sync.RWMutex
	now    func() time.Time
	anchor time.Time
	base   float64
	scale  float64
	paused bool
	frames uint64

	listeners []func(float64)
}

// New creates a running clock at scale 1.
func New() *FrameClock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock reading wall time from now.
func NewWithSource(now func() time.Time) *FrameClock {
	t := now()
	return &FrameClock{now: now, anchor: t, scale: 1}
}

// Elapsed returns animation seconds since the clock was created.
func (c *FrameClock) Elapsed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsedLocked(c.now())
}

func (c *FrameClock) elapsedLocked(t time.Time) float64 {
	if c.paused {
		return c.base
	}
	d := t.Sub(c.anchor).Seconds()
	if d < 0 {
		d = 0
	}
	return c.base + d*c.scale
}

// rebase folds elapsed time into base so the next change starts from now.
func (c *FrameClock) rebase() {
	t := c.now()
	c.base = c.elapsedLocked(t)
	c.anchor = t
}

// Pause freezes elapsed time.
func (c *FrameClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.rebase()
	c.paused = true
}

// Resume continues from the paused elapsed time.
func (c *FrameClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.anchor = c.now()
	c.paused = false
}

// Toggle flips the pause state and reports whether the clock is now paused.
func (c *FrameClock) Toggle() bool {
	if c.Paused() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// Paused reports whether the clock is paused.
func (c *FrameClock) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// SetScale sets the time multiplier, clamped to [MinScale, MaxScale].
func (c *FrameClock) SetScale(s float64) float64 {
	if !(s >= MinScale) {
		s = MinScale
	}
	if s > MaxScale {
		s = MaxScale
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebase()
	c.scale = s
	return s
}

// Scale returns the time multiplier.
func (c *FrameClock) Scale() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scale
}

// Faster doubles the time scale.
func (c *FrameClock) Faster() float64 {
	return c.SetScale(c.Scale() * 2)
}

// Slower halves the time scale.
func (c *FrameClock) Slower() float64 {
	return c.SetScale(c.Scale() / 2)
}

// Frames returns the number of frames delivered by Run.
func (c *FrameClock) Frames() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frames
}

// AddListener registers a callback invoked with elapsed seconds on every frame.
// Listeners must be registered before Run.
func (c *FrameClock) AddListener(fn func(elapsed float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// ClampFPS bounds a frame rate to [MinFPS, MaxFPS].
func ClampFPS(fps int) int {
	if fps < MinFPS {
		return MinFPS
	}
	if fps > MaxFPS {
		return MaxFPS
	}
	return fps
}

// Run delivers frames at fps until ctx is cancelled. It returns a channel
// that is closed once no further listener calls will be made.
func (c *FrameClock) Run(ctx context.Context, fps int) <-chan struct{} {
	interval := time.Second / time.Duration(ClampFPS(fps))

	c.mu.RLock()
	listeners := append([]func(float64){}, c.listeners...)
	c.mu.RUnlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			c.mu.Lock()
			c.frames++
			elapsed := c.elapsedLocked(c.now())
			c.mu.Unlock()

			for _, fn := range listeners {
				if ctx.Err() != nil {
					return
				}
				fn(elapsed)
			}
		}
	}()
	return done
}
