package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/profile"
	"tableflip.dev/mindful/pkg/store"
)

func newTestService(t *testing.T) (*Service, *locker.Gate) {
	t.Helper()
	kv := store.NewMemory(nil)

	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	j, err := journal.New(kv, journal.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	if err != nil {
		t.Fatalf("journal.New failed: %v", err)
	}
	g, err := locker.New(kv)
	if err != nil {
		t.Fatalf("locker.New failed: %v", err)
	}
	svc := NewService(j, g, profile.New(kv))
	svc.now = func() time.Time { return clock }
	return svc, g
}

func TestServiceCreateEntryDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{
		Content: "<p>Test item</p>",
		Mood:    "Calm",
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.Title != "Untitled" {
		t.Fatalf("expected Untitled, got %q", dto.Title)
	}
	if dto.Mood != "calm" || dto.Color != "#BBDEFB" {
		t.Fatalf("expected calm mood color, got %q %q", dto.Mood, dto.Color)
	}
	if dto.Preview != "Test item" {
		t.Fatalf("unexpected preview %q", dto.Preview)
	}
	if dto.Pinned || dto.Locked {
		t.Fatalf("expected plain entry, got %+v", dto)
	}
}

func TestServiceCreateEntryRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "x", Mood: "grumpy"}); err == nil {
		t.Fatalf("expected unknown mood error")
	}
	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "x", CustomColor: "blue-ish"}); !errors.Is(err, profile.ErrInvalidColor) {
		t.Fatalf("expected invalid color error, got %v", err)
	}
}

func TestServiceLockedEntriesNeedPassword(t *testing.T) {
	ctx := context.Background()
	svc, g := newTestService(t)
	if err := g.Setup("hunter2"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	open, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "open"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	secret, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "secret", Content: "shh", Locked: true})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	visible, err := svc.ListEntries(ctx, journal.Unlocked, "")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != open.ID {
		t.Fatalf("expected only the open entry, got %+v", visible)
	}

	if _, err := svc.ListEntries(ctx, journal.Locked, "wrong"); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := svc.EntryByID(ctx, secret.ID, ""); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := svc.DeleteEntry(ctx, secret.ID, "nope"); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	locked, err := svc.ListEntries(ctx, journal.Locked, "hunter2")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(locked) != 1 || locked[0].ID != secret.ID {
		t.Fatalf("expected the secret entry, got %+v", locked)
	}

	got, err := svc.EntryByID(ctx, secret.ID, "hunter2")
	if err != nil {
		t.Fatalf("EntryByID failed: %v", err)
	}
	if got.Content != "shh" {
		t.Fatalf("expected content, got %q", got.Content)
	}
}

func TestServiceToggleLock(t *testing.T) {
	ctx := context.Background()
	svc, g := newTestService(t)
	if err := g.Setup("hunter2"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "diary", Content: "today"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	locked, err := svc.ToggleLock(ctx, dto.ID, "")
	if err != nil {
		t.Fatalf("locking should not need a password: %v", err)
	}
	if !locked.Locked || locked.Content != "" {
		t.Fatalf("expected locked entry without content, got %+v", locked)
	}

	if _, err := svc.ToggleLock(ctx, dto.ID, ""); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked when unlocking without password, got %v", err)
	}
	unlocked, err := svc.ToggleLock(ctx, dto.ID, "hunter2")
	if err != nil {
		t.Fatalf("ToggleLock failed: %v", err)
	}
	if unlocked.Locked || unlocked.Content != "today" {
		t.Fatalf("expected unlocked entry with content, got %+v", unlocked)
	}
}

func TestServiceUpdateEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "draft", Content: "body", Mood: "joy"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	title := "final"
	color := "#ABC"
	updated, err := svc.UpdateEntry(ctx, UpdateEntryOptions{ID: dto.ID, Title: &title, CustomColor: &color})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Title != "final" || updated.Content != "body" || updated.Mood != "joy" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if updated.Color != "#aabbcc" {
		t.Fatalf("expected custom color to win, got %q", updated.Color)
	}
	if updated.UpdatedUnix < updated.CreatedUnix || updated.UpdatedISO == updated.CreatedISO {
		t.Fatalf("expected updatedAt to move forward, got %+v", updated)
	}

	if _, err := svc.UpdateEntry(ctx, UpdateEntryOptions{ID: "missing", Title: &title}); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestServicePinOrderingAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, _ := svc.CreateEntry(ctx, CreateEntryOptions{Title: "Walk", Content: "<b>forest</b> path"})
	b, _ := svc.CreateEntry(ctx, CreateEntryOptions{Title: "Work"})
	if _, err := svc.TogglePin(ctx, a.ID, ""); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}

	list, err := svc.ListEntries(ctx, journal.Unlocked, "")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("expected pinned entry first, got %+v", list)
	}

	found, err := svc.SearchEntries(ctx, "FOREST", 0)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != a.ID {
		t.Fatalf("expected one match, got %+v", found)
	}
	if empty, _ := svc.SearchEntries(ctx, "  ", 5); len(empty) != 0 {
		t.Fatalf("expected no results for blank query")
	}
}

func TestServiceSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	if err := svc.Profile.SetName("  Sam "); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "one", Pinned: true}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Title: "hidden", Locked: true}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Name != "Sam" || summary.HasLocker {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Stats.Total != 1 || summary.Stats.Pinned != 1 || summary.Stats.Streak != 1 {
		t.Fatalf("unexpected stats %+v", summary.Stats)
	}
	if summary.Background != "default" {
		t.Fatalf("expected default background, got %q", summary.Background)
	}
}

func TestParseView(t *testing.T) {
	for in, want := range map[string]journal.Filter{"": journal.Unlocked, "LOCKED": journal.Locked, "all": journal.All} {
		got, err := ParseView(in)
		if err != nil || got != want {
			t.Fatalf("ParseView(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseView("secret"); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}
