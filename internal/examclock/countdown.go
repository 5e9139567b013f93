// Package examclock drives the exam countdown from the server-provided end
// time.
package examclock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Countdown ticks until the end time and then fires the expiry callback
// exactly once.
type Countdown struct {
	end      time.Time
	interval time.Duration
	now      func() time.Time

	onTick   func(remaining time.Duration)
	onExpire func()

	expireOnce sync.Once
	stopOnce   sync.Once
	stop       chan struct{}
}

// New returns a countdown. onTick and onExpire may be nil.
func New(end time.Time, interval time.Duration, onTick func(time.Duration), onExpire func()) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		end:      end,
		interval: interval,
		now:      time.Now,
		onTick:   onTick,
		onExpire: onExpire,
		stop:     make(chan struct{}),
	}
}

// Remaining is the time left, never negative.
func (c *Countdown) Remaining() time.Duration {
	d := c.end.Sub(c.now())
	if d < 0 {
		return 0
	}
	return d
}

// Run blocks until the countdown expires, Stop is called or ctx is done.
// It reports whether the expiry callback fired.
func (c *Countdown) Run(ctx context.Context) bool {
	if c.tick() {
		return true
	}

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-c.stop:
			return false
		case <-t.C:
			if c.tick() {
				return true
			}
		}
	}
}

// Stop ends Run without firing the expiry callback. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Countdown) tick() bool {
	rem := c.Remaining()
	if c.onTick != nil {
		c.onTick(rem)
	}
	if rem > 0 {
		return false
	}
	c.expireOnce.Do(func() {
		if c.onExpire != nil {
			c.onExpire()
		}
	})
	return true
}

// Format renders d as HH:MM:SS, truncated to whole seconds.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
