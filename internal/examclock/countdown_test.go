package examclock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestCountdown_ExpiresOnce(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	var fired int32
	var ticks int32

	c := New(clk.t.Add(3*time.Second), time.Millisecond, func(time.Duration) {
		atomic.AddInt32(&ticks, 1)
		clk.Advance(time.Second)
	}, func() { atomic.AddInt32(&fired, 1) })
	c.now = clk.Now

	require.True(t, c.Run(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&ticks), int32(4))

	// a second run does not fire again
	assert.True(t, c.Run(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestCountdown_AlreadyOver(t *testing.T) {
	var fired int32
	c := New(time.Now().Add(-time.Minute), time.Hour, nil, func() { atomic.AddInt32(&fired, 1) })
	assert.True(t, c.Run(context.Background()))
	assert.Equal(t, int32(1), fired)
	assert.Equal(t, time.Duration(0), c.Remaining())
}

func TestCountdown_StopAndCancel(t *testing.T) {
	var fired int32
	c := New(time.Now().Add(time.Hour), time.Millisecond, nil, func() { atomic.AddInt32(&fired, 1) })

	done := make(chan bool)
	go func() { done <- c.Run(context.Background()) }()
	c.Stop()
	c.Stop()
	assert.False(t, <-done)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c2 := New(time.Now().Add(time.Hour), time.Millisecond, nil, func() { atomic.AddInt32(&fired, 1) })
	assert.False(t, c2.Run(ctx))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(-time.Second))
	assert.Equal(t, "00:01:05", Format(65*time.Second+300*time.Millisecond))
	assert.Equal(t, "02:30:00", Format(150*time.Minute))
}
