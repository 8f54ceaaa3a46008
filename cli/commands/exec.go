package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/config"
	"github.com/yabx-net/mysql/cli/internal/ui"
	"github.com/yabx-net/mysql/cli/internal/watch"
	"github.com/yabx-net/mysql/runtime/client"
)

func newExecCommand(a *app) *cobra.Command {
	var params []string
	var file string
	var watchFile bool

	cmd := &cobra.Command{
		Use:   "exec [template]",
		Short: "Run a templated write statement",
		Long: `Run an INSERT, UPDATE, DELETE or DDL statement and print the generated id
and affected row count. The template comes from the argument or from --file.
A file may hold several ;-separated statements; the counts reported are
those of the last one. With --watch the file is executed again every time
it is saved.`,
		Example: `  yabx-mysql exec 'UPDATE {&t} SET seen = 1 WHERE id = {$id}' -p t=users -p id=7
  yabx-mysql exec --file fixtures.sql --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseParams(params)
			if err != nil {
				return err
			}

			switch {
			case len(args) == 1 && file != "":
				return errors.New("pass either a template or --file, not both")
			case len(args) == 0 && file == "":
				return errors.New("a template or --file is required")
			case watchFile && file == "":
				return errors.New("--watch requires --file")
			}

			load := func() (string, error) {
				if file == "" {
					return args[0], nil
				}
				data, err := afero.ReadFile(config.AppFs, file)
				if err != nil {
					return "", fmt.Errorf("failed to read %s: %w", file, err)
				}
				return string(data), nil
			}

			var mods []func(*client.Config)
			if file != "" {
				mods = append(mods, multiStatements)
			}

			return a.withConnection(cmd.Context(), func(conn *client.Connection) error {
				run := func(ctx context.Context) error {
					tmpl, err := load()
					if err != nil {
						return err
					}
					res, err := conn.Exec(ctx, tmpl, values)
					if err != nil {
						return err
					}
					ui.PrintSuccess("%d row(s) affected, last insert id %d", res.RowsAffected, res.LastInsertID)
					return nil
				}

				if !watchFile {
					return run(cmd.Context())
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				w, err := watch.New(file, watch.DefaultDebounce, run)
				if err != nil {
					return err
				}
				ui.PrintInfo("watching %s, press Ctrl+C to stop", file)
				return w.Run(ctx, func(err error) {
					ui.PrintError("%v", err)
				})
			}, mods...)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as key=value")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the template from a file")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-run when --file changes")
	return cmd
}

// multiStatements allows a trusted SQL file to carry several statements
func multiStatements(cfg *client.Config) {
	cfg.MultiStatements = true
}
