package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabx-net/mysql/query/sqlgen"
)

func TestParsePairs(t *testing.T) {
	m, err := parsePairs([]string{"status=active", "id=1", "deleted_at=NULL", "id=2", "note=a=b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"status", "id", "deleted_at", "note"}, m.Keys())

	id, _ := m.Get("id")
	assert.Equal(t, []any{"1", "2"}, id)

	deleted, ok := m.Get("deleted_at")
	assert.True(t, ok)
	assert.Nil(t, deleted)

	note, _ := m.Get("note")
	assert.Equal(t, "a=b", note)
}

func TestParsePairsInvalid(t *testing.T) {
	_, err := parsePairs([]string{"novalue"})
	assert.Error(t, err)

	_, err = parsePairs([]string{"=x"})
	assert.Error(t, err)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"t=users", "ids=1", "ids=2", "ids=3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"t": "users", "ids": []any{"1", "2", "3"}}, params)
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, []sqlgen.OrderBy{
		{Field: "created_at", Direction: "desc"},
		{Field: "id"},
	}, parseOrder([]string{"created_at:desc", "id"}))
}
