package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/options"
	"tableflip.dev/mindful/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the journal whenever it changes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := watch.Watch{
				ShowID:      io.ShowID,
				Log:         e.Log,
				Persistence: e.Persistence,
				Journal:     e.Journal,
			}
			return s.Do(ctx)
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
