package commands

import (
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/cli/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintBox("yabx-mysql", version.Get().Details())
		},
	}
}
