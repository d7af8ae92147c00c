package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where the journal lives and what is in it.",
		Example: `
mindful info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      e.Config,
				Persistence: e.Persistence,
				Journal:     e.Journal,
				Gate:        e.Gate,
				Profile:     e.Profile,
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
