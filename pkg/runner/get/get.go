// Package get provides the runner behind `mindful list`.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/printers"
	"tableflip.dev/mindful/pkg/runner/gate"
)

type Get struct {
	Filter journal.Filter
	ShowID bool
	Table  bool
	JSON   bool
	// Since drops entries created before it, when set.
	Since  time.Time
	Out    io.Writer

	Journal *journal.Store
	Gate    *locker.Gate
	// Reveal unlocks the Gate when the filter includes locked entries.
	Reveal func(context.Context) error
}

func (n *Get) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not get, no journal")
	}
	if n.Filter != journal.Unlocked {
		if err := gate.Require(ctx, n.Gate, n.Reveal); err != nil {
			return err
		}
	}

	all := n.Journal.List(n.Filter)
	if !n.Since.IsZero() {
		kept := all[:0]
		for _, e := range all {
			if !e.CreatedAt.Before(n.Since) {
				kept = append(kept, e)
			}
		}
		all = kept
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.TitleWithCount(title(n.Filter), len(all))
	if n.Table {
		pp.Table(all...)
		return nil
	}
	pp.Entries(all...)
	return nil
}

func title(f journal.Filter) string {
	switch f {
	case journal.Locked:
		return "Locker"
	case journal.All:
		return "All entries"
	default:
		return "Journal"
	}
}
