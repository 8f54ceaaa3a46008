package commands

import (
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/config"
	"github.com/yabx-net/mysql/cli/internal/ui"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist connection settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved connection settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Connection(a.v)
			password := ""
			if cfg.Password != "" {
				password = "********"
			}
			return ui.PrintTable([]string{"setting", "value"}, [][]string{
				{"host", cfg.Host},
				{"port", a.v.GetString(config.KeyPort)},
				{"user", cfg.User},
				{"password", password},
				{"database", cfg.Database},
				{"charset", cfg.Charset},
				{"connect_timeout", cfg.ConnectTimeout.String()},
				{"statement_timeout", cfg.StatementTimeout.String()},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the current settings (without the password) to the user config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Save(a.v)
			if err != nil {
				return err
			}
			ui.PrintSuccess("saved %s", path)
			return nil
		},
	})
	return cmd
}
