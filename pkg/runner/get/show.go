package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/printers"
	"tableflip.dev/mindful/pkg/runner/gate"
)

// Show prints one entry in full.
type Show struct {
	ID     string
	ShowID bool
	JSON   bool
	Width  int
	Out    io.Writer

	Journal *journal.Store
	Gate    *locker.Gate
	Reveal  func(context.Context) error
}

func (n *Show) Do(ctx context.Context) error {
	if n.Journal == nil {
		return errors.New("can not show, no journal")
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

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: out}
	pp.NewLine()
	pp.Show(e)
	return nil
}
