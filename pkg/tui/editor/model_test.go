package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/mindful/pkg/autosave"
	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/store"
)

type heldTimer struct{ stopped bool }

func (t *heldTimer) Stop() bool {
	t.stopped = true
	return true
}

// holdTimers never fires, so only explicit flushes commit.
func holdTimers(time.Duration, func()) autosave.Timer {
	return &heldTimer{}
}

func newEditor(t *testing.T, e *entry.Entry) (*Model, *journal.Store, *autosave.Session) {
	t.Helper()
	j, err := journal.New(store.NewMemory(nil))
	if err != nil {
		t.Fatalf("journal.New: %v", err)
	}
	var opts []autosave.Option
	opts = append(opts, autosave.WithAfterFunc(holdTimers))
	if e != nil {
		opts = append(opts, autosave.WithEntry(e.ID))
	}
	s := autosave.NewSession(j, opts...)
	return New(Options{Entry: e, Session: s}), j, s
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestTypingSchedulesAutosave(t *testing.T) {
	m, j, s := newEditor(t, nil)
	if s.Pending() {
		t.Fatalf("nothing should be pending before typing")
	}

	typeText(m, "Hello")
	if got := m.Draft().Title; got != "Hello" {
		t.Fatalf("expected title Hello, got %q", got)
	}
	if !s.Pending() {
		t.Fatalf("expected a pending autosave after typing")
	}
	if j.Len() != 0 {
		t.Fatalf("nothing should be committed before the quiet period")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if j.Len() != 1 {
		t.Fatalf("expected ctrl+s to commit, got %d entries", j.Len())
	}
	if s.Pending() {
		t.Fatalf("flush should clear the pending autosave")
	}
}

func TestBodyAndMood(t *testing.T) {
	m, j, _ := newEditor(t, nil)

	typeText(m, "Walk")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "by the river")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

	d := m.Draft()
	if d.Content != "<p>by the river</p>" {
		t.Fatalf("unexpected content %q", d.Content)
	}
	if d.Mood != entry.MoodCalm {
		t.Fatalf("expected first mood, got %q", d.Mood)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !m.Done() {
		t.Fatalf("expected editor to be done")
	}

	list := j.List(journal.All)
	if len(list) != 1 {
		t.Fatalf("expected one entry after leaving, got %d", len(list))
	}
	if list[0].Title != "Walk" || list[0].Mood != entry.MoodCalm {
		t.Fatalf("unexpected entry %+v", list[0])
	}
}

func TestLeavingEmptyEditorSavesNothing(t *testing.T) {
	m, j, _ := newEditor(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if j.Len() != 0 {
		t.Fatalf("empty draft must not be saved")
	}
}

func TestEditExistingEntry(t *testing.T) {
	j, err := journal.New(store.NewMemory(nil))
	if err != nil {
		t.Fatalf("journal.New: %v", err)
	}
	e, err := j.Create(entry.Draft{Title: "Old", Content: "<p>first</p><p>second</p>", Mood: entry.MoodFocus})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s := autosave.NewSession(j, autosave.WithAfterFunc(holdTimers), autosave.WithEntry(e.ID))
	m := New(Options{Entry: e, Session: s})
	if got := m.body.Value(); got != "first\nsecond" {
		t.Fatalf("expected paragraphs as lines, got %q", got)
	}
	if m.Draft().Mood != entry.MoodFocus {
		t.Fatalf("expected mood to be preserved")
	}
	if s.Pending() {
		t.Fatalf("loading an entry must not schedule a save")
	}

	typeText(m, "er")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	got, ok := j.Get(e.ID)
	if !ok {
		t.Fatalf("entry missing")
	}
	if got.Title != "Older" && got.Title != "erOld" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if j.Len() != 1 {
		t.Fatalf("editing must not create a second entry")
	}
}

func TestSavedMsgUpdatesStatus(t *testing.T) {
	m, _, _ := newEditor(t, nil)
	m.Update(SavedMsg{ID: "abc"})
	if m.status == "" {
		t.Fatalf("expected saved status")
	}
	m.Update(SavedMsg{ID: "abc", Err: journal.ErrPersist})
	if m.errMsg == "" {
		t.Fatalf("expected error status")
	}
	if m.View() == "" {
		t.Fatalf("expected a rendered view")
	}
}
