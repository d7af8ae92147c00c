// Package autosave commits an editor's draft after the user stops typing.
//
// A Session belongs to one open editor. Every Edit restarts a single quiet
// period timer; when it fires the draft is committed, creating the entry the
// first time and updating the same entry afterwards. Closing the session
// cancels a pending commit.
package autosave

import (
	"context"
	"sync"
	"time"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/logging"
)

// DefaultQuietPeriod is the idle time before a draft is committed.
const DefaultQuietPeriod = 2 * time.Second

// Committer is the part of the Entry Store a session writes through.
type Committer interface {
	Create(d entry.Draft) (*entry.Entry, error)
	Update(id string, patch entry.Patch) error
}

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Result describes one commit.
type Result struct {
	ID      string
	Created bool
	Err     error
}

// Session is one editor's autosave state.
type Session struct {
	mu      sync.Mutex
	c       Committer
	quiet   time.Duration
	after   AfterFunc
	log     logging.Logger
	onSave  func(Result)
	id      string
	draft   entry.Draft
	dirty   bool
	timer   Timer
	gen     uint64
	closed  bool
	commits int
}

// Option configures a Session.
type Option func(*Session)

func WithQuietPeriod(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.quiet = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mostly for tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Session) {
		if f != nil {
			s.after = f
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOnSave is called after every commit attempt, outside the session lock.
func WithOnSave(f func(Result)) Option {
	return func(s *Session) {
		s.onSave = f
	}
}

// WithEntry makes the session edit an existing entry instead of creating one.
func WithEntry(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession starts an editor session writing through c.
func NewSession(c Committer, opts ...Option) *Session {
	s := &Session{
		c:     c,
		quiet: DefaultQuietPeriod,
		after: func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID is the entry being edited, or "" before the first commit.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Commits counts successful commits.
func (s *Session) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Pending reports whether a commit is scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Edit records the current editor state and restarts the quiet period.
func (s *Session) Edit(d entry.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.draft = d
	s.dirty = true
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.timer = s.after(s.quiet, func() { s.fire(gen) })
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	// A stale timer may still fire after being replaced or stopped.
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	res, ok := s.commitLocked()
	s.mu.Unlock()
	if ok {
		s.notify(res)
	}
}

// Flush commits the draft now, cancelling the timer.
func (s *Session) Flush() (string, error) {
	s.mu.Lock()
	if s.closed {
		id := s.id
		s.mu.Unlock()
		return id, nil
	}
	s.stopLocked()
	res, ok := s.commitLocked()
	id := s.id
	s.mu.Unlock()
	if ok {
		s.notify(res)
	}
	return id, res.Err
}

// Close cancels any pending commit. A closed session never commits again.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.closed = true
}

func (s *Session) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// commitLocked writes the draft. ok is false when there was nothing to do.
func (s *Session) commitLocked() (Result, bool) {
	if !s.dirty {
		return Result{ID: s.id}, false
	}
	s.dirty = false
	if s.draft.Empty() {
		// Nothing worth keeping yet.
		return Result{ID: s.id}, false
	}

	ctx := context.Background()
	if s.id == "" {
		e, err := s.c.Create(s.draft)
		if e != nil {
			s.id = e.ID
		}
		if err != nil {
			s.log.Warn(ctx, "autosave create failed", "err", err)
			return Result{ID: s.id, Created: e != nil, Err: err}, true
		}
		s.commits++
		s.log.Debug(ctx, "autosave created entry", "id", s.id)
		return Result{ID: s.id, Created: true}, true
	}

	if err := s.c.Update(s.id, entry.PatchFromDraft(s.draft)); err != nil {
		s.log.Warn(ctx, "autosave update failed", "id", s.id, "err", err)
		return Result{ID: s.id, Err: err}, true
	}
	s.commits++
	s.log.Debug(ctx, "autosave updated entry", "id", s.id)
	return Result{ID: s.id}, true
}

func (s *Session) notify(r Result) {
	if s.onSave != nil {
		s.onSave(r)
	}
}
