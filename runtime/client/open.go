package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yabx-net/mysql/query/escape"
)

var charsetName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ErrUnsafeCharset is returned for character sets in which an escaped quote
// can be absorbed into a multibyte character.
var ErrUnsafeCharset = errors.New("charset is not safe for client-side escaping")

func checkCharset(name string) error {
	if !charsetName.MatchString(name) {
		return fmt.Errorf("invalid charset name %q", name)
	}
	if !escape.SafeCharset(name) {
		return fmt.Errorf("%w: %s", ErrUnsafeCharset, name)
	}
	return nil
}

func driverConfig(cfg Config) *mysql.Config {
	mcfg := mysql.NewConfig()
	mcfg.User = cfg.User
	mcfg.Passwd = cfg.Password
	mcfg.Net = "tcp"
	mcfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mcfg.ParseTime = true
	mcfg.Loc = time.UTC
	mcfg.Timeout = cfg.ConnectTimeout
	mcfg.ReadTimeout = cfg.ReadTimeout
	mcfg.WriteTimeout = cfg.WriteTimeout
	mcfg.MultiStatements = cfg.MultiStatements
	return mcfg
}

// Open connects to a MySQL server and prepares a session: it selects the
// database, sets the connection charset and inspects sql_mode to pick the
// string escaping rules. Any failure is returned as a *ConstructionError.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Connection, error) {
	cfg = cfg.withDefaults()
	if err := checkCharset(cfg.Charset); err != nil {
		return nil, &ConstructionError{Stage: "set charset", Err: err}
	}

	connector, err := mysql.NewConnector(driverConfig(cfg))
	if err != nil {
		return nil, &ConstructionError{Stage: "configure", Err: err}
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, &ConstructionError{Stage: "connect", Err: err}
	}

	drv := &sqlDriver{db: db, conn: conn, quote: escape.Backslash}
	fail := func(stage string, err error) (*Connection, error) {
		drv.Close()
		return nil, &ConstructionError{Stage: stage, Err: err}
	}

	if cfg.Database != "" {
		name, err := escape.Identifier(cfg.Database)
		if err != nil {
			return fail("select database", err)
		}
		if _, err := conn.ExecContext(ctx, "USE "+name); err != nil {
			return fail("select database", err)
		}
	}

	if _, err := conn.ExecContext(ctx, "SET NAMES "+cfg.Charset); err != nil {
		return fail("set charset", err)
	}

	var sqlMode string
	if err := conn.QueryRowContext(ctx, "SELECT @@SESSION.sql_mode").Scan(&sqlMode); err != nil {
		return fail("sql mode", err)
	}
	for _, mode := range strings.Split(sqlMode, ",") {
		switch strings.TrimSpace(mode) {
		case "ANSI_QUOTES":
			return fail("sql mode", fmt.Errorf("ANSI_QUOTES is enabled; double-quoted literals would be read as identifiers"))
		case "NO_BACKSLASH_ESCAPES":
			drv.quote = escape.DoubleQuotes
		}
	}

	if cfg.StatementTimeout > 0 {
		opts = append([]Option{WithStatementTimeout(cfg.StatementTimeout)}, opts...)
	}
	c := New(drv, opts...)
	c.checkServerVersion(ctx)
	return c, nil
}
