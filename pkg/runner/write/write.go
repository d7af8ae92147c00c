// Package write provides the runner behind `mindful write`, the full-screen
// editor.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/autosave"
	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/runner/gate"
	"tableflip.dev/mindful/pkg/tui/editor"
)

type Write struct {
	// ID edits an existing entry; empty starts a new one.
	ID    string
	Quiet time.Duration
	Out   io.Writer
	Log   logging.Logger

	Journal *journal.Store
	Gate    *locker.Gate
	Reveal  func(context.Context) error
}

func (n *Write) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not write, no journal")
	}

	var existing *entry.Entry
	if n.ID != "" {
		e, ok := n.Journal.Get(n.ID)
		if !ok {
			return fmt.Errorf("%w: %s", journal.ErrNotFound, n.ID)
		}
		if e.Locked {
			if err := gate.Require(ctx, n.Gate, n.Reveal); err != nil {
				return err
			}
		}
		existing = e
	}

	var p *tea.Program
	opts := []autosave.Option{
		autosave.WithQuietPeriod(n.Quiet),
		autosave.WithLogger(n.Log),
		autosave.WithOnSave(func(r autosave.Result) {
			// Send blocks while Update runs, and flushes happen inside Update.
			go p.Send(editor.SavedMsg(r))
		}),
	}
	if existing != nil {
		opts = append(opts, autosave.WithEntry(existing.ID))
	}
	session := autosave.NewSession(n.Journal, opts...)
	defer session.Close()

	m := editor.New(editor.Options{Entry: existing, Session: session})
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	if _, err := session.Flush(); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if id := session.ID(); id != "" {
		_, _ = color.New(color.Faint).Fprintf(out, "Saved %s.\n", id)
	} else {
		_, _ = color.New(color.Faint).Fprintln(out, "Nothing to save.")
	}
	return nil
}
