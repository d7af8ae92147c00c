// Package watch provides the runner behind `mindful watch`: it follows the
// store and reprints the journal whenever another process changes it.
package watch

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/printers"
	"tableflip.dev/mindful/pkg/store"
)

type Watch struct {
	ShowID bool
	Out    io.Writer
	Log    logging.Logger

	Persistence store.Persistence
	Journal     *journal.Store
}

// Do blocks until ctx is done.
func (n *Watch) Do(ctx context.Context) error {
	if n.Persistence == nil || n.Journal == nil {
		return errors.New("can not watch, no journal")
	}
	log := n.Log
	if log == nil {
		log = logging.Nop()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	render := func() {
		all := n.Journal.List(journal.Unlocked)
		pp.NewLine()
		pp.TitleWithCount("Journal", len(all))
		pp.Entries(all...)
	}
	render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key != "" && ev.Key != store.KeyEntries {
				log.Debug(ctx, "ignoring store change", "key", ev.Key)
				continue
			}
			n.Journal.Reload(ctx)
			render()
		}
	}
}
