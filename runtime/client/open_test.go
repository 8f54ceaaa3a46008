package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnsafeCharset(t *testing.T) {
	for _, charset := range []string{"gbk", "big5", "sjis", "cp932", "gb18030"} {
		t.Run(charset, func(t *testing.T) {
			cfg := DefaultConfig()
			// Unroutable: reaching the dial would hang until ConnectTimeout
			cfg.Host = "192.0.2.1"
			cfg.ConnectTimeout = time.Hour
			cfg.Charset = charset

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			_, err := Open(ctx, cfg)
			var ce *ConstructionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "set charset", ce.Stage)
			assert.ErrorIs(t, err, ErrUnsafeCharset)
		})
	}
}

func TestCheckCharset(t *testing.T) {
	assert.NoError(t, checkCharset("utf8mb4"))
	assert.NoError(t, checkCharset("latin1"))
	assert.ErrorIs(t, checkCharset("gbk"), ErrUnsafeCharset)
	assert.Error(t, checkCharset("utf8mb4; DROP TABLE t"))
}

func TestDriverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.User = "app"
	cfg.Port = 3307

	mcfg := driverConfig(cfg)
	assert.Equal(t, "127.0.0.1:3307", mcfg.Addr)
	assert.Equal(t, "app", mcfg.User)
	assert.True(t, mcfg.ParseTime)
	assert.False(t, mcfg.MultiStatements)

	cfg.MultiStatements = true
	assert.True(t, driverConfig(cfg).MultiStatements)
}
