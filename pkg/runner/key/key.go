// Package key provides CLI helpers to display the mood legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/printers"
)

// Key prints the moods and the card colors they pick.
type Key struct {
	Out io.Writer
}

// Do renders the mood table.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Id"), bold.Sprint("Color"))
	for _, m := range entry.Moods() {
		tbl.AddRow(printers.Swatch(m.Swatch).Sprint("● "+m.Label), string(m.Mood), m.Swatch)
	}

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
