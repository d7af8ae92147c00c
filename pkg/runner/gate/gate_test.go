package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/commands/prompt"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/store"
)

func init() {
	color.NoColor = true
}

func answers(lines ...string) prompt.Func {
	return prompt.Lines(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{})
}

func newGate(t *testing.T) *locker.Gate {
	t.Helper()
	g, err := locker.New(store.NewMemory(nil))
	if err != nil {
		t.Fatalf("locker.New: %v", err)
	}
	return g
}

func TestSetupRetriesMismatch(t *testing.T) {
	ctx := context.Background()
	g := newGate(t)
	var out bytes.Buffer

	s := &Setup{Gate: g, Out: &out, Prompt: answers("abc", "abcd", "abce", "abcd", "abcd")}
	if err := s.Do(ctx); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if !g.Verify("abcd") {
		t.Fatalf("expected password abcd")
	}
	if !strings.Contains(out.String(), "at least 4") || !strings.Contains(out.String(), "do not match") {
		t.Fatalf("expected warnings, got %q", out.String())
	}
	if err := s.Do(ctx); !errors.Is(err, locker.ErrAlreadySet) {
		t.Fatalf("expected ErrAlreadySet, got %v", err)
	}
}

func TestSetupGivesUp(t *testing.T) {
	g := newGate(t)
	s := &Setup{Gate: g, Out: &bytes.Buffer{}, MaxAttempts: 2, Prompt: answers("a", "b", "c")}
	if err := s.Do(context.Background()); !errors.Is(err, locker.ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
	if g.HasSecret() {
		t.Fatalf("no secret should be stored")
	}
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()
	g := newGate(t)

	u := &Unlock{Gate: g, Out: &bytes.Buffer{}, Prompt: answers("whatever")}
	if err := u.Do(ctx); !errors.Is(err, locker.ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}

	if err := g.Setup("open sesame"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := g.Relock(); err != nil {
		t.Fatalf("Relock: %v", err)
	}

	u = &Unlock{Gate: g, Out: &bytes.Buffer{}, Prompt: answers("nope", "open sesame")}
	if err := u.Do(ctx); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if !g.Visible() {
		t.Fatalf("expected gate to be open")
	}

	if err := g.Relock(); err != nil {
		t.Fatalf("Relock: %v", err)
	}
	u = &Unlock{Gate: g, Out: &bytes.Buffer{}, Prompt: answers("x1", "x2", "x3", "open sesame")}
	if err := u.Do(ctx); !errors.Is(err, locker.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword after three tries, got %v", err)
	}
	if g.Visible() {
		t.Fatalf("gate must stay closed")
	}
}

func TestPasswd(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory(nil)
	seed, err := locker.New(kv)
	if err != nil {
		t.Fatalf("locker.New: %v", err)
	}
	if err := seed.Setup("old-pass"); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	g, err := locker.New(kv)
	if err != nil {
		t.Fatalf("locker.New: %v", err)
	}
	p := &Passwd{Gate: g, Out: &bytes.Buffer{}, Prompt: answers("old-pass", "new-pass", "typo-pass", "new-pass", "new-pass")}
	if err := p.Do(ctx); err != nil {
		t.Fatalf("Passwd: %v", err)
	}
	if !g.Verify("new-pass") || g.Verify("old-pass") {
		t.Fatalf("password was not replaced")
	}
	if g.Phase() != locker.Unlocked {
		t.Fatalf("expected Unlocked after change, got %s", g.Phase())
	}
}

func TestPasswdCancelsOnEOF(t *testing.T) {
	g := newGate(t)
	if err := g.Setup("old-pass"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := g.Relock(); err != nil {
		t.Fatalf("Relock: %v", err)
	}

	p := &Passwd{Gate: g, Out: &bytes.Buffer{}, Prompt: answers("old-pass", "new-pass")}
	if err := p.Do(context.Background()); !errors.Is(err, prompt.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	if !g.Verify("old-pass") {
		t.Fatalf("old password must survive an abandoned change")
	}
	if g.Phase() != locker.Unlocked {
		t.Fatalf("expected change to be cancelled back to Unlocked, got %s", g.Phase())
	}
}

func TestStatusJSON(t *testing.T) {
	g := newGate(t)
	var out bytes.Buffer
	s := &Status{Gate: g, JSON: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Status: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["hasPassword"] != false || got["phase"] != "awaiting-setup" {
		t.Fatalf("unexpected status %v", got)
	}
}
