package notification

import (
	"testing"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	clock  *scheduler.FakeClock
	loop   *scheduler.Loop
	center *Center
	rec    *render.Recorder
}

func newFixture() *fixture {
	clock := scheduler.NewFakeClock(epoch)
	loop := scheduler.NewLoop(clock)
	rec := render.NewRecorder()
	return &fixture{
		clock:  clock,
		loop:   loop,
		center: NewCenter(loop, rec, nil, logging.NewNop()),
		rec:    rec,
	}
}

func (f *fixture) post(title string, peek bool) {
	f.loop.Do(func() { f.center.Post(title, "body", peek) })
}

func (f *fixture) peeking() bool {
	var ok bool
	f.loop.Do(func() { _, ok = f.center.Peek() })
	return ok
}

func TestPostNewestFirst(t *testing.T) {
	f := newFixture()
	f.post("first", false)
	f.clock.Advance(time.Second)
	f.post("second", false)

	list := f.center.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
	assert.Less(t, list[1].ID, list[0].ID)
	assert.Equal(t, epoch.Add(time.Second), list[0].CreatedAt)
	assert.False(t, f.peeking())
}

func TestPeekClearsAfterTimeout(t *testing.T) {
	f := newFixture()
	f.post("hello", true)
	assert.True(t, f.peeking())

	f.clock.Advance(4999 * time.Millisecond)
	assert.True(t, f.peeking())

	f.clock.Advance(time.Millisecond)
	assert.False(t, f.peeking())
	assert.Equal(t, 1, f.center.Len(), "auto-clear only hides the peek")
}

func TestSecondPostRestartsPeekTimer(t *testing.T) {
	f := newFixture()
	f.post("one", true)

	f.clock.Advance(2000 * time.Millisecond)
	f.post("two", true)

	f.clock.Advance(4000 * time.Millisecond) // t=6000
	assert.True(t, f.peeking())
	peek, _ := f.center.Peek()
	assert.Equal(t, "two", peek.Title)

	f.clock.Advance(1000 * time.Millisecond) // t=7000
	assert.False(t, f.peeking())
}

func TestClearAll(t *testing.T) {
	f := newFixture()
	f.post("one", true)
	f.post("two", true)

	f.loop.Do(f.center.ClearAll)
	assert.Zero(t, f.center.Len())
	assert.False(t, f.peeking())
	assert.Zero(t, f.clock.Pending())

	last, ok := f.rec.Last(render.KindPeek, "")
	require.True(t, ok)
	assert.Nil(t, last.Data)
}

func TestDismiss(t *testing.T) {
	f := newFixture()
	f.post("keep", false)
	f.post("drop", true)
	drop := f.center.List()[0]

	var ok bool
	f.loop.Do(func() { ok = f.center.Dismiss(drop.ID) })
	assert.True(t, ok)
	assert.False(t, f.peeking(), "dismissing the peeked notification clears the peek")

	list := f.center.List()
	require.Len(t, list, 1)
	assert.Equal(t, "keep", list[0].Title)

	f.loop.Do(func() { ok = f.center.Dismiss("ntf_missing") })
	assert.False(t, ok)
}

func TestPostStripsMarkup(t *testing.T) {
	f := newFixture()
	f.loop.Do(func() {
		f.center.Post(`<b>Tom & Jerry</b>`, `<script>alert(1)</script>ok`, false)
	})

	n := f.center.List()[0]
	assert.Equal(t, "Tom & Jerry", n.Title)
	assert.Equal(t, "ok", n.Message)
}
