package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/options"
	"tableflip.dev/mindful/pkg/runner/gate"
)

func addLocker(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "locker",
		Short: "Manage the locker password.",
		Long: options.Wrap80(`The locker hides locked entries behind one local password.
It keeps entries out of casual view; it does not encrypt them.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addLockerSetup(cmd)
	addLockerUnlock(cmd)
	addLockerPasswd(cmd)
	addLockerStatus(cmd)

	topLevel.AddCommand(cmd)
}

func addLockerSetup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Choose the locker password. Asks twice.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := gate.Setup{Gate: e.Gate, Prompt: passwords(), Out: os.Stderr}
			return s.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}

func addLockerUnlock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Check the locker password.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := gate.Unlock{Gate: e.Gate, Prompt: passwords(), Out: os.Stderr}
			return s.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}

func addLockerPasswd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the locker password.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := gate.Passwd{Gate: e.Gate, Prompt: passwords(), Out: os.Stderr}
			return s.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}

func addLockerStatus(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Whether a locker password is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return oo.HandleError(err)
			}
			s := gate.Status{Gate: e.Gate, JSON: oo.JSON}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
