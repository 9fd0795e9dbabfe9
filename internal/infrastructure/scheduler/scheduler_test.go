package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock(epoch)
	var order []string

	clock.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, epoch.Add(250*time.Millisecond), clock.Now())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, clock.Pending())
}

func TestFakeClockTicker(t *testing.T) {
	clock := NewFakeClock(epoch)
	ticks := 0

	tk := clock.Every(time.Second, func() { ticks++ })
	clock.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	assert.True(t, tk.Stop())
	assert.False(t, tk.Stop())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestFakeClockCallbackSchedulesWithinWindow(t *testing.T) {
	clock := NewFakeClock(epoch)
	fired := false

	clock.AfterFunc(time.Second, func() {
		clock.AfterFunc(time.Second, func() { fired = true })
	})

	clock.Advance(2 * time.Second)
	assert.True(t, fired)
}

func TestSlotRearmCancelsPrevious(t *testing.T) {
	clock := NewFakeClock(epoch)
	loop := NewLoop(clock)
	slot := loop.NewSlot("peek")
	var fired []string

	loop.Do(func() {
		slot.After(5*time.Second, func() { fired = append(fired, "first") })
	})
	clock.Advance(2 * time.Second)
	loop.Do(func() {
		slot.After(5*time.Second, func() { fired = append(fired, "second") })
	})

	clock.Advance(4 * time.Second)
	assert.Empty(t, fired)

	clock.Advance(time.Second)
	assert.Equal(t, []string{"second"}, fired)
	assert.Equal(t, 0, clock.Pending())
	loop.Do(func() { assert.False(t, slot.Active()) })
}

func TestSlotCancel(t *testing.T) {
	clock := NewFakeClock(epoch)
	loop := NewLoop(clock)
	slot := loop.NewSlot("hold")
	fired := false

	loop.Do(func() {
		slot.After(time.Second, func() { fired = true })
		require.True(t, slot.Active())
		assert.True(t, slot.Cancel())
		assert.False(t, slot.Cancel())
	})

	clock.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestSlotEveryReplacesTicker(t *testing.T) {
	clock := NewFakeClock(epoch)
	loop := NewLoop(clock)
	slot := loop.NewSlot("clock")
	ticks := 0

	loop.Do(func() {
		slot.Every(time.Second, func() { ticks++ })
		slot.Every(time.Second, func() { ticks++ })
	})
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestSlotStaleCallbackIsUnobservable(t *testing.T) {
	loop := NewLoop(NewFakeClock(epoch))
	slot := loop.NewSlot("stale")
	fired := false

	// Simulate a timer that already fired and is waiting for the loop when
	// the slot is re-armed.
	var captured func()
	slot.loop.clock = clockFunc(func(d time.Duration, f func()) Timer {
		captured = f
		return stopNoop{}
	})

	loop.Do(func() {
		slot.After(time.Second, func() { fired = true })
		slot.Cancel()
	})
	captured()
	assert.False(t, fired)
}

func TestRealClockAfterFunc(t *testing.T) {
	loop := NewLoop(nil)
	slot := loop.NewSlot("real")
	done := make(chan struct{})

	loop.Do(func() {
		slot.After(10*time.Millisecond, func() { close(done) })
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

type clockFunc func(d time.Duration, f func()) Timer

func (c clockFunc) Now() time.Time                            { return epoch }
func (c clockFunc) AfterFunc(d time.Duration, f func()) Timer { return c(d, f) }
func (c clockFunc) Every(d time.Duration, f func()) Timer     { return c(d, f) }

type stopNoop struct{}

func (stopNoop) Stop() bool { return false }
