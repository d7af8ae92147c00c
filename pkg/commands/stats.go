package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/options"
	"tableflip.dev/mindful/pkg/runner/key"
	"tableflip.dev/mindful/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Totals, streak, and a month of entries.",
		Example: `
mindful stats
mindful stats --month 2026-2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			month, err := mo.GetMonth(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			s := stats.Stats{
				Month:   month,
				JSON:    oo.JSON,
				Journal: e.Journal,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addMoods(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "moods",
		Aliases: []string{"key"},
		Short:   "The moods an entry can carry.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := key.Key{}
			return s.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}
