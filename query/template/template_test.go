package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabx-net/mysql/query/escape"
)

func newRenderer() *Renderer {
	return New(escape.New(escape.Backslash))
}

func TestRenderAllForms(t *testing.T) {
	got, err := newRenderer().Render("SELECT {&col} FROM users WHERE x = {$val} ORDER BY id {#dir}", map[string]any{
		"col": "name",
		"val": "O'Brien",
		"dir": "DESC",
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT `name` FROM users WHERE x = \"O\\'Brien\" ORDER BY id DESC", got)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	got, err := newRenderer().Render("SELECT {$a}, {$missing}, {x}, {", map[string]any{"a": 1, "unused": 2})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1, {$missing}, {x}, {", got)
}

func TestRenderIsSinglePass(t *testing.T) {
	got, err := newRenderer().Render("{#a} {$b}", map[string]any{
		"a": "{$b}",
		"b": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, `{$b} "x"`, got)
}

func TestRenderPrefixNamesDoNotCollide(t *testing.T) {
	got, err := newRenderer().Render("{$id} {$id2}", map[string]any{"id": 1, "id2": 2})
	require.NoError(t, err)
	assert.Equal(t, "1 2", got)
}

func TestRenderSameKeyAllForms(t *testing.T) {
	got, err := newRenderer().Render("{$k} {&k} {#k}", map[string]any{"k": "t.c"})
	require.NoError(t, err)
	assert.Equal(t, "\"t.c\" `t`.`c` t.c", got)
}

func TestRenderListValue(t *testing.T) {
	got, err := newRenderer().Render("id IN {$ids}", map[string]any{"ids": []int{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "id IN (1, 2, 3)", got)
}

func TestRenderNoParams(t *testing.T) {
	got, err := newRenderer().Render("SELECT {$a}", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT {$a}", got)
}

func TestRenderErrors(t *testing.T) {
	r := newRenderer()

	_, err := r.Render("{$v}", map[string]any{"v": struct{}{}})
	var typeErr *escape.UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)

	_, err = r.Render("{&v}", map[string]any{"v": 5})
	var idErr *escape.InvalidIdentifierError
	assert.ErrorAs(t, err, &idErr)

	_, err = r.Render("{#v}", map[string]any{"v": struct{}{}})
	assert.ErrorAs(t, err, &typeErr)
}
