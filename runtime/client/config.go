package client

import "time"

// Config holds the parameters used to open a Connection.
// They are consumed by Open and not retained.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// Charset is sent with SET NAMES. Only charsets accepted by
	// escape.SafeCharset are allowed; Open rejects gbk, big5, sjis and the like.
	Charset string

	// ConnectTimeout, ReadTimeout and WriteTimeout are passed to the driver.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// StatementTimeout bounds each statement; zero means no limit.
	// When it fires the driver closes the network connection, so the session
	// (selected database, charset, any open transaction) is gone and every
	// later call fails. Check QueryError.SessionLost and open a new Connection.
	StatementTimeout time.Duration

	// MultiStatements lets one Exec carry several ;-separated statements.
	// It widens what an injected fragment can do, so leave it off unless the
	// SQL comes from a trusted file.
	MultiStatements bool
}

// DefaultConfig returns the default connection parameters
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           3306,
		Charset:        "utf8mb4",
		ConnectTimeout: 10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port == 0 {
		c.Port = def.Port
	}
	if c.Charset == "" {
		c.Charset = def.Charset
	}
	return c
}
