package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer

	InitWriter(false, &buf)
	Debug("hidden")
	assert.False(t, Enabled())
	assert.Nil(t, ConnectionLogger())
	assert.Empty(t, buf.String())

	InitWriter(true, &buf)
	Debug("shown", "query", "SELECT 1")
	assert.True(t, Enabled())
	assert.NotNil(t, ConnectionLogger())
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `query="SELECT 1"`)
}
