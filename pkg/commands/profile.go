package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/prompt"
	"tableflip.dev/mindful/pkg/runner/profile"
)

func addProfile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Your name and dashboard background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProfileName(cmd)
	addProfileBackground(cmd)

	topLevel.AddCommand(cmd)
}

func addProfileName(topLevel *cobra.Command) {
	ask := false
	cmd := &cobra.Command{
		Use:   "name [name...]",
		Short: "Show or set your name.",
		Example: `
mindful profile name
mindful profile name Sam
mindful profile name --ask
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := profile.Name{
				Name:    strings.Join(args, " "),
				Profile: e.Profile,
			}
			if ask {
				s.Prompt = prompt.Lines(os.Stdin, os.Stderr)
			}
			return s.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&ask, "ask", false, "Prompt for the name.")
	topLevel.AddCommand(cmd)
}

func addProfileBackground(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "background [default|<mood>|#rrggbb]",
		Aliases: []string{"bg"},
		Short:   "Show or set the dashboard background.",
		Example: `
mindful profile background
mindful profile background calm
mindful profile background "#f6e7c1"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := profile.Background{Profile: e.Profile}
			if len(args) == 1 {
				s.Value = args[0]
			}
			return s.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}
