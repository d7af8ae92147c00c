package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
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

func seeded(t *testing.T) (*journal.Store, time.Time) {
	t.Helper()
	days := []time.Time{
		time.Date(2026, 3, 8, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}
	i := 0
	j, err := journal.New(store.NewMemory(nil), journal.WithClock(func() time.Time {
		now := days[i]
		if i < len(days)-1 {
			i++
		}
		return now
	}))
	if err != nil {
		t.Fatalf("journal.New: %v", err)
	}
	for _, title := range []string{"one", "two", "three"} {
		if _, err := j.Create(entry.Draft{Title: title}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	return j, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestStatsJSON(t *testing.T) {
	j, now := seeded(t)
	var out bytes.Buffer
	s := &Stats{
		Now:     func() time.Time { return now },
		JSON:    true,
		Out:     &out,
		Journal: j,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var got struct {
		Stats journal.Stats `json:"stats"`
		Month string        `json:"month"`
		Days  []int         `json:"days"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Stats.Total != 3 || got.Stats.ThisWeek != 3 || got.Stats.Streak != 3 {
		t.Fatalf("unexpected stats %+v", got.Stats)
	}
	if got.Month != "2026-03" || len(got.Days) != 31 {
		t.Fatalf("unexpected month %s with %d days", got.Month, len(got.Days))
	}
	if got.Days[7] != 1 || got.Days[8] != 1 || got.Days[9] != 1 {
		t.Fatalf("unexpected day counts %v", got.Days[:12])
	}
}

func TestStatsPretty(t *testing.T) {
	j, now := seeded(t)
	var out bytes.Buffer
	s := &Stats{Now: func() time.Time { return now }, Out: &out, Journal: j}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{"Entries 3", "Streak 3 days", "March 2026"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in:\n%s", want, out.String())
		}
	}
}
