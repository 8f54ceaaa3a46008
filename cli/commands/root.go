// Package commands implements the yabx-mysql CLI
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yabx-net/mysql/cli/internal/config"
	"github.com/yabx-net/mysql/cli/internal/version"
	"github.com/yabx-net/mysql/internal/debug"
	"github.com/yabx-net/mysql/runtime/client"
)

// app is the state shared by all subcommands
type app struct {
	v          *viper.Viper
	configFile string
}

// ExecuteContext is the main entry point for the CLI
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "yabx-mysql",
		Short:         "Run escaped MySQL queries from the command line",
		Long:          "yabx-mysql runs templated and structured statements against a MySQL server.",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Setup(a.v, a.configFile); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			debug.Init(a.v.GetBool(config.KeyDebug))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .yabx-mysql.yaml in ., $HOME or $HOME/.config/yabx-mysql)")
	flags.String("host", "", "server host")
	flags.Int("port", 0, "server port")
	flags.StringP("user", "u", "", "user name")
	flags.String("password", "", "password")
	flags.StringP("database", "d", "", "default database")
	flags.String("charset", "", "connection charset")
	flags.Duration("statement-timeout", 0, "per-statement timeout, 0 for none")
	flags.Bool("debug", false, "log every statement to stderr")

	for key, flag := range map[string]string{
		config.KeyHost:             "host",
		config.KeyPort:             "port",
		config.KeyUser:             "user",
		config.KeyPassword:         "password",
		config.KeyDatabase:         "database",
		config.KeyCharset:          "charset",
		config.KeyStatementTimeout: "statement-timeout",
		config.KeyDebug:            "debug",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(
		newQueryCommand(a),
		newExecCommand(a),
		newSelectCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newStatusCommand(a),
		newConfigCommand(a),
		newSyntaxCommand(),
		newVersionCommand(),
	)
	return cmd
}

// connectionConfig resolves the settings and applies mods in order
func (a *app) connectionConfig(mods ...func(*client.Config)) client.Config {
	cfg := config.Connection(a.v)
	for _, mod := range mods {
		mod(&cfg)
	}
	return cfg
}

// connect opens a connection using the resolved settings
func (a *app) connect(ctx context.Context, mods ...func(*client.Config)) (*client.Connection, error) {
	cfg := a.connectionConfig(mods...)
	debug.Debug("connecting", "host", cfg.Host, "port", cfg.Port, "user", cfg.User, "database", cfg.Database)

	conn, err := client.Open(ctx, cfg, client.WithLogger(debug.ConnectionLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return conn, nil
}

// withConnection runs fn on a fresh connection and closes it afterwards
func (a *app) withConnection(ctx context.Context, fn func(*client.Connection) error, mods ...func(*client.Config)) error {
	conn, err := a.connect(ctx, mods...)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}
