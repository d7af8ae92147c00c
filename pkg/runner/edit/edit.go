// Package edit provides the runner behind `mindful edit` with field flags.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/printers"
	"tableflip.dev/mindful/pkg/runner/gate"
)

type Edit struct {
	ID     string
	Patch  entry.Patch
	ShowID bool
	Out    io.Writer

	Journal *journal.Store
	Gate    *locker.Gate
	Reveal  func(context.Context) error
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not edit, no journal")
	}
	e, ok := n.Journal.Get(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", journal.ErrNotFound, n.ID)
	}
	if e.Locked {
		if err := gate.Require(ctx, n.Gate, n.Reveal); err != nil {
			return err
		}
	}
	if err := n.Journal.Update(n.ID, n.Patch); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	e, _ = n.Journal.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Entries(e)
	return nil
}
