package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/options"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/runner/add"
	"tableflip.dev/mindful/pkg/runner/edit"
	"tableflip.dev/mindful/pkg/runner/get"
	"tableflip.dev/mindful/pkg/runner/remove"
	"tableflip.dev/mindful/pkg/runner/toggle"
	"tableflip.dev/mindful/pkg/runner/write"
)

func addNew(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	fo := &options.FlagOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "new [body...]",
		Short: "Write a new entry from the command line.",
		Example: `
mindful new --title "Morning" --mood calm slept well, coffee on the porch
mindful new -t "Private" --lock "not for anyone else"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := eo.Draft(args)
			if err != nil {
				return output.HandleError(err)
			}
			if d.Empty() {
				return output.HandleError(errors.New("nothing to save, give a --title or a body"))
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Draft:   d,
				Pinned:  fo.Pinned,
				Locked:  fo.Locked,
				ShowID:  io.ShowID,
				Journal: e.Journal,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddFlagArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addWrite(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Open the editor on a new entry. Saves as you type.",
		Example: `
mindful write
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := write.Write{
				Quiet:   e.Config.AutosaveQuiet,
				Log:     e.Log,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry. Without flags the editor opens.",
		Example: `
mindful edit 3f2a91c0 --mood grateful
mindful edit 3f2a91c0
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			patch, changed, err := eo.Patch(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(journal.WithStrict())
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(e, args[0])
			if err != nil {
				return output.HandleError(err)
			}

			if !changed {
				s := write.Write{
					ID:      id,
					Quiet:   e.Config.AutosaveQuiet,
					Log:     e.Log,
					Journal: e.Journal,
					Gate:    e.Gate,
					Reveal:  e.reveal,
				}
				return s.Do(cmd.Context())
			}

			s := edit.Edit{
				ID:      id,
				Patch:   patch,
				ShowID:  io.ShowID,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	width := 0

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one entry in full.",
		Example: `
mindful show 3f2a91c0
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			id, err := resolveID(e, args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Show{
				ID:      id,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Width:   width,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap the body at this many columns.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List entries, pinned first then newest.",
		Example: `
mindful list
mindful list --locked
mindful list --all --table
mindful list --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, err := fo.SinceTime(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				Filter:  fo.Filter(),
				ShowID:  io.ShowID,
				Table:   fo.Table,
				JSON:    oo.JSON,
				Since:   since,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry for good.",
		Example: `
mindful rm 3f2a91c0
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(journal.WithStrict())
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(e, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			s := remove.Remove{
				ID:      id,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addPin(topLevel *cobra.Command) {
	addToggle(topLevel, "pin", "Pin or unpin an entry.", toggle.Pin)
}

func addLock(topLevel *cobra.Command) {
	addToggle(topLevel, "lock", "Move an entry into or out of the locker.", toggle.Lock)
}

func addToggle(topLevel *cobra.Command, use, short string, flag toggle.Flag) {
	cmd := &cobra.Command{
		Use:               use + " <id>",
		Short:             short,
		Example:           "\nmindful " + use + " 3f2a91c0\n",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(journal.WithStrict())
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(e, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			s := toggle.Toggle{
				ID:      id,
				Flag:    flag,
				Journal: e.Journal,
				Gate:    e.Gate,
				Reveal:  e.reveal,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
