package sqlgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/ordered"
)

func newGenerator() *Generator {
	return NewGenerator(escape.New(escape.Backslash))
}

func TestWhere(t *testing.T) {
	g := newGenerator()

	got, err := g.Where(ordered.New().Set("status", nil).Set("id", []int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "WHERE `status` IS NULL AND `id` IN (1, 2, 3)", got)

	got, err = g.Where(ordered.New().Set("u.name", "O'Brien").Set("active", true))
	require.NoError(t, err)
	assert.Equal(t, "WHERE `u`.`name` = \"O\\'Brien\" AND `active` = TRUE", got)

	got, err = g.Where(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	var missing *string
	got, err = g.Where(ordered.New().Set("deleted_at", missing))
	require.NoError(t, err)
	assert.Equal(t, "WHERE `deleted_at` IS NULL", got)
}

func TestSelect(t *testing.T) {
	g := newGenerator()

	tests := []struct {
		name string
		q    SelectQuery
		want string
	}{
		{
			name: "defaults",
			q:    SelectQuery{Table: "users"},
			want: "SELECT * FROM `users`",
		},
		{
			name: "full",
			q: SelectQuery{
				Table:   "app.users",
				Where:   ordered.New().Set("status", "active"),
				OrderBy: []OrderBy{{Field: "created_at", Direction: "desc"}, {Field: "id"}},
				Limit:   10,
				Fields:  []escape.Field{{Name: "id"}, escape.As("email", "mail")},
			},
			want: "SELECT `id`, `email` AS `mail` FROM `app`.`users` WHERE `status` = \"active\" ORDER BY `created_at` DESC, `id` LIMIT 10",
		},
		{
			name: "zero limit ignored",
			q:    SelectQuery{Table: "t", Limit: 0, OrderBy: []OrderBy{{Field: "a", Direction: " asc "}}},
			want: "SELECT * FROM `t` ORDER BY `a` ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Select(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectRejectsBadDirection(t *testing.T) {
	_, err := newGenerator().Select(SelectQuery{
		Table:   "t",
		OrderBy: []OrderBy{{Field: "a", Direction: "ASC; DROP TABLE t"}},
	})
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestInsert(t *testing.T) {
	g := newGenerator()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := g.Insert("users", ordered.New().Set("email", "a@b.c").Set("age", 30).Set("created_at", ts), false)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`email`, `age`, `created_at`) VALUES (\"a@b.c\", 30, \"2024-01-02T03:04:05+00:00\")", got)

	got, err = g.Insert("users", ordered.New().Set("email", "a@b.c"), true)
	require.NoError(t, err)
	assert.Equal(t, "INSERT IGNORE INTO `users` (`email`) VALUES (\"a@b.c\")", got)

	got, err = g.Insert("counters", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `counters` () VALUES ()", got)
}

func TestInsertMany(t *testing.T) {
	g := newGenerator()

	got, err := g.InsertMany("tags", []string{"name", "weight"}, [][]any{{"go", 1}, {"sql", nil}}, false)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `tags` (`name`, `weight`) VALUES (\"go\", 1), (\"sql\", NULL)", got)

	_, err = g.InsertMany("tags", []string{"name"}, [][]any{{"go", 1}}, false)
	assert.Error(t, err)

	_, err = g.InsertMany("tags", []string{"name"}, nil, false)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestUpdate(t *testing.T) {
	g := newGenerator()

	got, err := g.Update("users",
		ordered.New().Set("name", "Bob").Set("deleted_at", nil),
		ordered.New().Set("id", 7))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `name` = \"Bob\", `deleted_at` = NULL WHERE `id` = 7", got)

	_, err = g.Update("users", ordered.New().Set("name", "Bob"), nil)
	assert.ErrorIs(t, err, ErrEmptyWhere)

	_, err = g.Update("users", nil, ordered.New().Set("id", 7))
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestDelete(t *testing.T) {
	g := newGenerator()

	got, err := g.Delete("users", ordered.New().Set("id", []int64{4, 5}))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users` WHERE `id` IN (4, 5)", got)

	_, err = g.Delete("users", ordered.New())
	assert.ErrorIs(t, err, ErrEmptyWhere)
}

func TestGeneratorPropagatesEscapeErrors(t *testing.T) {
	g := newGenerator()

	_, err := g.Insert("users", ordered.New().Set("meta", map[string]int{}), false)
	var typeErr *escape.UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)

	_, err = g.Select(SelectQuery{Table: ""})
	var idErr *escape.InvalidIdentifierError
	assert.ErrorAs(t, err, &idErr)
}
