package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mindful",
		Short: options.Wrap80("A quiet journal on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNew(topLevel)
	addWrite(topLevel)
	addEdit(topLevel)
	addShow(topLevel)
	addList(topLevel)
	addRemove(topLevel)
	addPin(topLevel)
	addLock(topLevel)
	addLocker(topLevel)
	addProfile(topLevel)
	addStats(topLevel)
	addMoods(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
