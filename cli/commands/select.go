package commands

import (
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/runtime/client"
)

func newSelectCommand(a *app) *cobra.Command {
	var where, order, fields []string
	var limit int
	var one bool

	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Select rows by equality conditions",
		Example: `  yabx-mysql select users --where status=active --order created_at:desc --limit 10
  yabx-mysql select users --where deleted_at=NULL --fields id,email`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, err := parsePairs(where)
			if err != nil {
				return err
			}

			opts := []client.SelectOption{client.Limit(limit)}
			for _, o := range parseOrder(order) {
				opts = append(opts, client.OrderBy(o.Field, o.Direction))
			}
			if len(fields) > 0 {
				opts = append(opts, client.Columns(fields...))
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				if one {
					row, err := conn.SelectOne(cmd.Context(), args[0], conditions, opts...)
					if err != nil {
						return err
					}
					var rows []client.Row
					if row != nil {
						rows = append(rows, row)
					}
					return ui.PrintRows(cmd.OutOrStdout(), rows, fields)
				}

				rows, err := conn.Select(cmd.Context(), args[0], conditions, opts...)
				if err != nil {
					return err
				}
				return ui.PrintRows(cmd.OutOrStdout(), rows, fields)
			})
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "condition as column=value (NULL for IS NULL, repeat for IN)")
	cmd.Flags().StringArrayVar(&order, "order", nil, "order as column[:asc|desc]")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "columns to return")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows, 0 for all")
	cmd.Flags().BoolVar(&one, "one", false, "return at most one row")
	return cmd
}
