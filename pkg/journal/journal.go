// Package journal owns the collection of journal entries. It is the single
// source of truth for entries, persists the whole collection after every
// mutation, and derives the display order.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/store"
)

var (
	// ErrNotFound is returned for a missing id when the store is strict.
	ErrNotFound = errors.New("journal: entry not found")
	// ErrPersist wraps storage write failures. The mutation that triggered it
	// is kept in memory.
	ErrPersist = errors.New("journal: entries not persisted")
)

// Filter selects which entries List returns.
type Filter int

const (
	// Unlocked is the default view: everything not locked.
	Unlocked Filter = iota
	// Locked is the Locker view.
	Locked
	// All ignores the lock flag.
	All
)

func (f Filter) String() string {
	switch f {
	case Locked:
		return "locked"
	case All:
		return "all"
	default:
		return "unlocked"
	}
}

func (f Filter) match(e *entry.Entry) bool {
	switch f {
	case Locked:
		return e.Locked
	case All:
		return true
	default:
		return !e.Locked
	}
}

// Store is the Entry Store.
type Store struct {
	mu      sync.Mutex
	kv      store.Persistence
	log     logging.Logger
	now     func() time.Time
	newID   func() string
	strict  bool
	entries []*entry.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load fallbacks.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithStrict makes mutations of unknown ids fail with ErrNotFound instead of
// being ignored.
func WithStrict() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// New loads the persisted collection from kv. Unreadable data is logged and
// the store starts empty.
func New(kv store.Persistence, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("journal: no persistence configured")
	}
	s := &Store{
		kv:    kv,
		log:   logging.Nop(),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "journal")
	s.entries = s.load(context.Background())
	return s, nil
}

// Reload replaces the in-memory collection with what is in storage, picking
// up writes made by another session.
func (s *Store) Reload(ctx context.Context) {
	loaded := s.load(ctx)
	s.mu.Lock()
	s.entries = loaded
	s.mu.Unlock()
}

func (s *Store) load(ctx context.Context) []*entry.Entry {
	raw, err := s.kv.Read(store.KeyEntries)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn(ctx, "entries unreadable, starting empty", "err", err)
		}
		return []*entry.Entry{}
	}
	if raw == "" {
		return []*entry.Entry{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn(ctx, "entries corrupt, starting empty", "err", err)
		return []*entry.Entry{}
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]*entry.Entry, 0, len(records))
	for i, rec := range records {
		var e *entry.Entry
		if err := json.Unmarshal(rec, &e); err != nil {
			s.log.Warn(ctx, "skipping undecodable entry", "index", i, "err", err)
			continue
		}
		if e == nil || e.ID == "" {
			s.log.Warn(ctx, "skipping entry without id")
			continue
		}
		if _, dup := seen[e.ID]; dup {
			s.log.Warn(ctx, "skipping duplicate entry id", "id", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
		e.Normalize()
		out = append(out, e)
	}
	return out
}

// persistLocked writes the whole collection in storage order.
func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.Write(store.KeyEntries, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Create stores a new entry built from the draft and returns it, so the caller
// can target later updates at the same id. If persisting fails the entry is
// still returned alongside an ErrPersist error.
func (s *Store) Create(d entry.Draft) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexLocked(id) >= 0 || id == "" {
		id = s.newID()
	}
	e := entry.New(id, d, s.now())
	s.entries = append(s.entries, e)
	return e.Clone(), s.persistLocked()
}

// Update merges patch into the entry and refreshes its updatedAt.
func (s *Store) Update(id string, patch entry.Patch) error {
	return s.mutate(id, func(e *entry.Entry) {
		e.Apply(patch)
	})
}

// TogglePin flips the pinned flag.
func (s *Store) TogglePin(id string) error {
	return s.mutate(id, func(e *entry.Entry) {
		e.Pinned = !e.Pinned
	})
}

// ToggleLock flips the locked flag. Visibility is the Locker's concern; the
// flag itself can always be changed.
func (s *Store) ToggleLock(id string) error {
	return s.mutate(id, func(e *entry.Entry) {
		e.Locked = !e.Locked
	})
}

func (s *Store) mutate(id string, fn func(*entry.Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.missing(id)
	}
	e := s.entries[i]
	fn(e)
	e.Touch(s.now())
	return s.persistLocked()
}

// Delete removes the entry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.missing(id)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return s.persistLocked()
}

// Reset drops every entry and persists the empty collection.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []*entry.Entry{}
	return s.persistLocked()
}

func (s *Store) missing(id string) error {
	if s.strict {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the entry with the given id.
func (s *Store) Get(id string) (*entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, false
	}
	return s.entries[i].Clone(), true
}

// Len is the number of entries regardless of lock state.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns copies of every entry in storage order.
func (s *Store) Snapshot() []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// List returns copies of the entries matching filter in display order.
func (s *Store) List(filter Filter) []*entry.Entry {
	s.mu.Lock()
	out := make([]*entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.match(e) {
			out = append(out, e.Clone())
		}
	}
	s.mu.Unlock()

	SortForDisplay(out)
	return out
}

// SortForDisplay orders pinned entries first, then newest created first.
// Equal creation times fall back to id so the order is deterministic.
func SortForDisplay(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left.Pinned != right.Pinned {
			return left.Pinned
		}
		lt, rt := left.CreatedAt.Time, right.CreatedAt.Time
		if lt.Equal(rt) {
			return left.ID < right.ID
		}
		return lt.After(rt)
	})
}
