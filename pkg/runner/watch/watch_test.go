package watch

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/store"
)

func init() {
	color.NoColor = true
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReprintsOnChange(t *testing.T) {
	kv := store.NewMemory(nil)
	mine, err := journal.New(kv)
	if err != nil {
		t.Fatalf("journal.New: %v", err)
	}
	// Another process writing to the same store.
	theirs, err := journal.New(kv)
	if err != nil {
		t.Fatalf("journal.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	w := &Watch{Out: out, Persistence: kv, Journal: mine}
	go func() { done <- w.Do(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Journal - 0") {
		if time.Now().After(deadline) {
			t.Fatalf("initial listing missing:\n%s", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := theirs.Create(entry.Draft{Title: "From elsewhere"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for !strings.Contains(out.String(), "From elsewhere") {
		if time.Now().After(deadline) {
			t.Fatalf("change not picked up:\n%s", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if mine.Len() != 1 {
		t.Fatalf("expected reload, have %d entries", mine.Len())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch did not stop")
	}
}
