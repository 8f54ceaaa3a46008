package commands

import (
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/runtime/client"
)

func newQueryCommand(a *app) *cobra.Command {
	var params []string
	var one bool

	cmd := &cobra.Command{
		Use:   "query <template>",
		Short: "Run a templated SELECT and print the rows",
		Long: `Run a read statement. Placeholders in the template are filled from -p flags:

  {$name}  escaped value
  {&name}  escaped identifier
  {#name}  raw text

Run "yabx-mysql syntax" for the full reference.`,
		Example: `  yabx-mysql query 'SELECT * FROM {&t} WHERE id = {$id}' -p t=users -p id=7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseParams(params)
			if err != nil {
				return err
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				if one {
					row, err := conn.QueryOne(cmd.Context(), args[0], values)
					if err != nil {
						return err
					}
					var rows []client.Row
					if row != nil {
						rows = append(rows, row)
					}
					return ui.PrintRows(cmd.OutOrStdout(), rows, nil)
				}

				rows, err := conn.Query(cmd.Context(), args[0], values)
				if err != nil {
					return err
				}
				return ui.PrintRows(cmd.OutOrStdout(), rows, nil)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as key=value (NULL for null, repeat a key for a list)")
	cmd.Flags().BoolVar(&one, "one", false, "return at most one row")
	return cmd
}
