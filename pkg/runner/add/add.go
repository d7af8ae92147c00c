// Package add provides the runner behind `mindful new`.
package add

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/printers"
)

// Add creates one entry.
type Add struct {
	Draft  entry.Draft
	Pinned bool
	Locked bool
	ShowID bool
	Out    io.Writer

	Journal *journal.Store

	// Created is set after a successful Do.
	Created *entry.Entry
}

func (n *Add) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not add, no journal")
	}
	if n.Draft.Empty() {
		return errors.New("an entry needs a title or content")
	}

	e, err := n.Journal.Create(n.Draft)
	if err != nil {
		return err
	}
	if n.Pinned {
		if err := n.Journal.TogglePin(e.ID); err != nil {
			return err
		}
	}
	if n.Locked {
		if err := n.Journal.ToggleLock(e.ID); err != nil {
			return err
		}
	}
	e, _ = n.Journal.Get(e.ID)
	n.Created = e

	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	if e.Locked {
		_, _ = color.New(color.Faint).Fprintf(out, "Saved %s to the locker.\n", e.ID)
		return nil
	}
	pp.NewLine()
	pp.Entries(e)
	return nil
}
