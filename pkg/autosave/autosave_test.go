package autosave

import (
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/store"
)

// fakeClock runs timers synchronously as Advance moves time forward.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		due := make([]*fakeTimer, 0)
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		c.now = next.at
		next.fired = true
		next.f()
	}
	c.now = target
}

type call struct {
	op    string
	at    time.Duration
	id    string
	title string
}

// recorder is a Committer that logs calls with the fake time they happened at.
type recorder struct {
	clock *fakeClock
	calls []call
	next  int
	fail  error
}

func (r *recorder) Create(d entry.Draft) (*entry.Entry, error) {
	r.next++
	id := fmt.Sprintf("e%d", r.next)
	r.calls = append(r.calls, call{op: "create", at: r.clock.now, id: id, title: d.Title})
	return &entry.Entry{ID: id, Title: d.Title}, r.fail
}

func (r *recorder) Update(id string, p entry.Patch) error {
	r.calls = append(r.calls, call{op: "update", at: r.clock.now, id: id, title: *p.Title})
	return r.fail
}

func newSession(opts ...Option) (*Session, *fakeClock, *recorder) {
	clock := &fakeClock{}
	rec := &recorder{clock: clock}
	s := NewSession(rec, append([]Option{WithAfterFunc(clock.AfterFunc)}, opts...)...)
	return s, clock, rec
}

func TestDebounceCommitsOnceAfterQuietPeriod(t *testing.T) {
	s, clock, rec := newSession()

	s.Edit(entry.Draft{Title: "D"})
	clock.Advance(time.Second)
	s.Edit(entry.Draft{Title: "Dear"})

	clock.Advance(1900 * time.Millisecond)
	assert.Empty(t, rec.calls, "no commit inside the quiet period")

	clock.Advance(100 * time.Millisecond)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, call{op: "create", at: 3 * time.Second, id: "e1", title: "Dear"}, rec.calls[0])

	clock.Advance(10 * time.Second)
	assert.Len(t, rec.calls, 1)
	assert.False(t, s.Pending())
}

func TestLaterCommitsUpdateSameEntry(t *testing.T) {
	s, clock, rec := newSession()

	s.Edit(entry.Draft{Title: "one"})
	clock.Advance(2 * time.Second)
	s.Edit(entry.Draft{Title: "two"})
	clock.Advance(2 * time.Second)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "create", rec.calls[0].op)
	assert.Equal(t, call{op: "update", at: 4 * time.Second, id: "e1", title: "two"}, rec.calls[1])
	assert.Equal(t, "e1", s.ID())
	assert.Equal(t, 2, s.Commits())
}

func TestExistingEntryIsUpdated(t *testing.T) {
	s, clock, rec := newSession(WithEntry("known"))
	s.Edit(entry.Draft{Title: "edited"})
	clock.Advance(DefaultQuietPeriod)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "update", rec.calls[0].op)
	assert.Equal(t, "known", rec.calls[0].id)
}

func TestEmptyDraftIsNotSaved(t *testing.T) {
	s, clock, rec := newSession()
	s.Edit(entry.Draft{Mood: entry.MoodCalm})
	clock.Advance(5 * time.Second)
	assert.Empty(t, rec.calls)
}

func TestCloseCancelsPendingCommit(t *testing.T) {
	s, clock, rec := newSession()
	s.Edit(entry.Draft{Title: "leaving"})
	clock.Advance(time.Second)
	s.Close()
	clock.Advance(5 * time.Second)
	assert.Empty(t, rec.calls)

	s.Edit(entry.Draft{Title: "after close"})
	clock.Advance(5 * time.Second)
	assert.Empty(t, rec.calls)
}

func TestFlushCommitsImmediately(t *testing.T) {
	var results []Result
	s, clock, rec := newSession(WithOnSave(func(r Result) { results = append(results, r) }))

	s.Edit(entry.Draft{Title: "now"})
	id, err := s.Flush()
	require.NoError(t, err)
	assert.Equal(t, "e1", id)
	require.Len(t, rec.calls, 1)

	clock.Advance(5 * time.Second)
	assert.Len(t, rec.calls, 1, "flushed timer must not fire")

	_, err = s.Flush()
	require.NoError(t, err)
	assert.Len(t, rec.calls, 1, "clean session has nothing to flush")
	assert.Equal(t, []Result{{ID: "e1", Created: true}}, results)
}

func TestCommitErrorIsReported(t *testing.T) {
	var results []Result
	s, clock, rec := newSession(WithOnSave(func(r Result) { results = append(results, r) }))
	rec.fail = errors.New("quota exceeded")

	s.Edit(entry.Draft{Title: "x"})
	clock.Advance(DefaultQuietPeriod)

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Equal(t, "e1", s.ID(), "identity is kept even when the write failed")
	assert.Zero(t, s.Commits())
}

func TestSessionAgainstJournal(t *testing.T) {
	clock := &fakeClock{}
	kv := store.NewMemory(nil)
	j, err := journal.New(kv)
	require.NoError(t, err)

	s := NewSession(j, WithAfterFunc(clock.AfterFunc), WithQuietPeriod(time.Second))
	s.Edit(entry.Draft{Title: "first", Content: "<p>hi</p>"})
	clock.Advance(time.Second)
	s.Edit(entry.Draft{Title: "second", Content: "<p>hi</p>", Mood: entry.MoodJoy})
	clock.Advance(time.Second)

	list := j.List(journal.All)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, entry.MoodJoy, list[0].Mood)
	assert.Equal(t, s.ID(), list[0].ID)
}

func TestRealTimerFires(t *testing.T) {
	j, err := journal.New(store.NewMemory(nil))
	require.NoError(t, err)

	done := make(chan Result, 1)
	s := NewSession(j, WithQuietPeriod(10*time.Millisecond), WithOnSave(func(r Result) { done <- r }))
	defer s.Close()
	s.Edit(entry.Draft{Title: "real"})

	select {
	case r := <-done:
		require.NoError(t, r.Err)
		assert.True(t, r.Created)
	case <-time.After(2 * time.Second):
		t.Fatal("autosave did not fire")
	}
	assert.Equal(t, 1, j.Len())
}
