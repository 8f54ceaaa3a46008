package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/runtime/client"
)

const sessionQuery = "SELECT DATABASE() AS `database`, CONNECTION_ID() AS `connection_id`, " +
	"@@SESSION.sql_mode AS `sql_mode`, @@character_set_connection AS `charset`"

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server version and session settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner, _ := ui.PrintSpinner("Connecting...")
			stopSpinner := func() {
				if spinner != nil {
					_ = spinner.Stop()
				}
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				v, err := conn.ServerVersion(cmd.Context())
				if err != nil {
					stopSpinner()
					return err
				}
				session, err := conn.QueryOne(cmd.Context(), sessionQuery, nil)
				stopSpinner()
				if err != nil {
					return err
				}

				var b strings.Builder
				fmt.Fprintf(&b, "Server:     %s\n", v)
				for _, key := range []string{"database", "connection_id", "charset", "sql_mode"} {
					fmt.Fprintf(&b, "%-11s %s\n", key+":", cast.ToString(session[key]))
				}
				ui.PrintBox("MySQL status", strings.TrimSuffix(b.String(), "\n"))
				if !client.MinServerVersion.Check(v) {
					ui.PrintWarning("server %s is older than the supported range (%s)", v, client.MinServerVersion)
				}
				return nil
			})
		},
	}
}
