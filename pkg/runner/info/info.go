// Package info provides the runner behind `mindful info`.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindful/pkg/config"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/profile"
	"tableflip.dev/mindful/pkg/store"
)

// Info reports where things are stored and how much is there. Locked entries
// are counted but never shown.
type Info struct {
	Config      *config.Config
	Persistence store.Persistence
	Journal     *journal.Store
	Gate        *locker.Gate
	Profile     *profile.Profile
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("MINDFUL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "MINDFUL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "MINDFUL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	if n.Persistence == nil {
		return errors.New("failed to create persistence object")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "

	source := n.Config.Source
	if source == "" {
		source = "(defaults)"
	}
	tbl.AddRow(bold.Sprint("Config file"), source)
	tbl.AddRow(bold.Sprint("Store path"), n.Persistence.BasePath())
	tbl.AddRow(bold.Sprint("Locker codec"), n.Config.LockerCodec)
	tbl.AddRow(bold.Sprint("Autosave after"), n.Config.AutosaveQuiet.String())

	if n.Profile != nil {
		name := n.Profile.Name()
		if name == "" {
			name = "(not set)"
		}
		tbl.AddRow(bold.Sprint("Name"), name)
		tbl.AddRow(bold.Sprint("Background"), string(n.Profile.Background().Mode))
	}
	if n.Journal != nil {
		tbl.AddRow(bold.Sprint("Entries"), len(n.Journal.List(journal.Unlocked)))
		tbl.AddRow(bold.Sprint("In locker"), n.Journal.Len()-len(n.Journal.List(journal.Unlocked)))
	}
	if n.Gate != nil {
		tbl.AddRow(bold.Sprint("Locker password"), map[bool]string{true: "set", false: "not set"}[n.Gate.HasSecret()])
	}
	_, _ = fmt.Fprintln(out, tbl)

	_, _ = fmt.Fprintln(out, "Keys:")
	keys := n.Persistence.Keys(ctx)
	for _, k := range keys {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "nothing stored yet")
	}
	return nil
}
