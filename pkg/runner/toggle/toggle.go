// Package toggle provides the runners behind `mindful pin` and `mindful lock`.
package toggle

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

// Flag is the boolean being flipped.
type Flag int

const (
	Pin Flag = iota
	Lock
)

type Toggle struct {
	ID   string
	Flag Flag
	Out  io.Writer

	Journal *journal.Store
	Gate    *locker.Gate
	Reveal  func(context.Context) error
}

// Do flips the flag. Touching a locked entry, including taking it out of the
// locker, needs the Gate open; putting an entry in the locker does not.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not toggle, no journal")
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

	var (
		err  error
		verb string
	)
	switch n.Flag {
	case Pin:
		err = n.Journal.TogglePin(n.ID)
		verb = map[bool]string{true: "Unpinned", false: "Pinned"}[e.Pinned]
	case Lock:
		err = n.Journal.ToggleLock(n.ID)
		verb = map[bool]string{true: "Took out of the locker", false: "Locked away"}[e.Locked]
	default:
		return fmt.Errorf("unknown flag %d", n.Flag)
	}
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "%s %q.\n", verb, e.DisplayTitle())
	return nil
}
