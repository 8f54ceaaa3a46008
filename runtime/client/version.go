package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
	"github.com/spf13/cast"
)

var versionPrefix = regexp.MustCompile(`^\d+(\.\d+)*`)

// MinServerVersion is the server range Open accepts without a warning
var MinServerVersion = version.MustConstraints(version.NewConstraint(">= 5.7"))

// ServerVersion returns the numeric part of the server's VERSION(), so
// "8.0.36-0ubuntu0.22.04.1" and "10.11.6-MariaDB" parse as 8.0.36 and 10.11.6.
func (c *Connection) ServerVersion(ctx context.Context) (*version.Version, error) {
	rows, err := c.exec.Query(ctx, "SELECT VERSION() AS `version`")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("client: server returned no version")
	}
	raw, err := cast.ToStringE(rows[0]["version"])
	if err != nil {
		return nil, fmt.Errorf("client: server version: %w", err)
	}
	prefix := versionPrefix.FindString(raw)
	if prefix == "" {
		return nil, fmt.Errorf("client: unrecognized server version %q", raw)
	}
	return version.NewVersion(prefix)
}

func (c *Connection) checkServerVersion(ctx context.Context) {
	if c.logger == nil {
		return
	}
	v, err := c.ServerVersion(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "could not determine server version", "error", err)
		return
	}
	if !MinServerVersion.Check(v) {
		c.logger.WarnContext(ctx, "server version is older than supported", "version", v.String(), "required", MinServerVersion.String())
	}
}
