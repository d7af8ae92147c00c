// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/timeutil"
)

// FilterOptions select which part of the journal a command sees.
type FilterOptions struct {
	Locked bool
	All    bool
	Table  bool
	Since  string
}

// AddFilterArgs wires the view flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().BoolVar(&o.Locked, "locked", false,
		"Show the locker. Requires the locker password.")
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Show every entry. Requires the locker password.")
	cmd.Flags().BoolVar(&o.Table, "table", false,
		"Print a table instead of cards.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only entries written within a window, example: --since=3d or --since=1w.`)
}

func (o *FilterOptions) Filter() journal.Filter {
	switch {
	case o.All:
		return journal.All
	case o.Locked:
		return journal.Locked
	default:
		return journal.Unlocked
	}
}

// SinceTime is the cutoff for --since, or the zero time when unset.
func (o *FilterOptions) SinceTime(now time.Time) (time.Time, error) {
	if o.Since == "" {
		return time.Time{}, nil
	}
	return timeutil.Since(o.Since, now)
}
