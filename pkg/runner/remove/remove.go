// Package remove provides the runner behind `mindful rm`.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/runner/gate"
)

type Remove struct {
	ID  string
	Out io.Writer

	Journal *journal.Store
	Gate    *locker.Gate
	Reveal  func(context.Context) error
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not remove, no journal")
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
	if err := n.Journal.Delete(n.ID); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "Deleted %q.\n", e.DisplayTitle())
	return nil
}
