// Package stats provides runners that summarize journaling activity.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/printers"
)

// Stats prints totals, the current streak and a month calendar of the
// default view.
type Stats struct {
	Month time.Time
	Now   func() time.Time
	JSON  bool
	Out   io.Writer

	Journal *journal.Store
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not summarize, no journal")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	month := n.Month
	if month.IsZero() {
		month = now()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	entries := n.Journal.List(journal.Unlocked)
	st := journal.Summarize(entries, now())
	count := journal.CountByDay(entries, month)

	if n.JSON {
		return json.NewEncoder(out).Encode(map[string]any{
			"stats": st,
			"month": month.Format("2006-01"),
			"days":  count,
		})
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	b := color.New(color.Bold)
	_, _ = fmt.Fprintf(out, "%s %d   %s %d   %s %d   %s %s\n",
		b.Sprint("Entries"), st.Total,
		b.Sprint("Pinned"), st.Pinned,
		b.Sprint("This week"), st.ThisWeek,
		b.Sprint("Streak"), streak(st.Streak))
	pp.NewLine()
	pp.PrintMonthCount(month, count)
	return nil
}

func streak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
