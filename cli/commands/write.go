package commands

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/query/ordered"
	"github.com/yabx-net/mysql/runtime/client"
)

// errAborted is returned when the user declines a confirmation
var errAborted = errors.New("aborted")

// confirm asks before destructive statements
var confirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

// preview renders the WHERE clause the statement will use and asks for
// confirmation unless yes is set.
func preview(conn *client.Connection, verb, table string, where *ordered.Map, yes bool) error {
	if yes {
		return nil
	}
	clause, err := conn.Where(where)
	if err != nil {
		return err
	}
	name, err := conn.EscapeIdentifier(table)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("%s rows of %s %s?", verb, name, clause))
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func newUpdateCommand(a *app) *cobra.Command {
	var set, where []string
	var yes bool

	cmd := &cobra.Command{
		Use:     "update <table>",
		Short:   "Update rows matching equality conditions",
		Example: `  yabx-mysql update users --set status=inactive --where id=7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parsePairs(set)
			if err != nil {
				return err
			}
			conditions, err := parsePairs(where)
			if err != nil {
				return err
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				if err := preview(conn, "Update", args[0], conditions, yes); err != nil {
					return err
				}
				n, err := conn.Update(cmd.Context(), args[0], data, conditions)
				if err != nil {
					return err
				}
				ui.PrintSuccess("%d row(s) updated", n)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "column=value to assign (NULL for null)")
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition as column=value")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("set")
	_ = cmd.MarkFlagRequired("where")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var where []string
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <table>",
		Short:   "Delete rows matching equality conditions",
		Example: `  yabx-mysql delete sessions --where user_id=7 --yes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, err := parsePairs(where)
			if err != nil {
				return err
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				if err := preview(conn, "Delete", args[0], conditions, yes); err != nil {
					return err
				}
				n, err := conn.Delete(cmd.Context(), args[0], conditions)
				if err != nil {
					return err
				}
				ui.PrintSuccess("%d row(s) deleted", n)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "condition as column=value")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("where")
	return cmd
}
