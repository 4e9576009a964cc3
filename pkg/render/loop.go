package render

import (
	"context"
	"time"
)

// Loop drives continuous redraws: one synchronous call to the render
// callback per tick. Because the callback runs on the loop goroutine,
// frames never overlap; a frame that overruns its slot simply causes the
// following ticks to coalesce, and the overrun is counted.
type Loop struct {
	interval time.Duration
	redraw   func()

	frames  int64
	dropped int64
}

// NewLoop creates a frame loop. The redraw callback must not block
// indefinitely; it is expected to produce exactly one frame.
func NewLoop(interval time.Duration, redraw func()) *Loop {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return &Loop{interval: interval, redraw: redraw}
}

// Run pumps frames until the context is canceled and reports the cause.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			l.redraw()
			l.frames++
			if over := time.Since(start); over > l.interval {
				l.dropped += int64(over / l.interval)
			}
		}
	}
}

// Frames returns the number of completed redraws.
func (l *Loop) Frames() int64 { return l.frames }

// Dropped returns an estimate of ticks missed to overrunning frames.
func (l *Loop) Dropped() int64 { return l.dropped }
