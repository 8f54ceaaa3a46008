package client

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabx-net/mysql/query/escape"
	"github.com/yabx-net/mysql/query/executor"
	"github.com/yabx-net/mysql/query/ordered"
	"github.com/yabx-net/mysql/query/sqlgen"
)

type fakeDriver struct {
	queries []string
	rows    []Row
	result  ExecResult
	errs    map[string]error
	closed  bool
}

func (d *fakeDriver) Query(_ context.Context, query string) ([]Row, error) {
	d.queries = append(d.queries, query)
	if err := d.errs[query]; err != nil {
		return nil, err
	}
	return d.rows, nil
}

func (d *fakeDriver) Exec(_ context.Context, query string) (ExecResult, error) {
	d.queries = append(d.queries, query)
	if err := d.errs[query]; err != nil {
		return ExecResult{}, err
	}
	return d.result, nil
}

func (d *fakeDriver) Escape(s string) string {
	return escape.Backslash(s)
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func TestQueryRendersTemplate(t *testing.T) {
	drv := &fakeDriver{rows: []Row{{"id": int64(1)}}}
	c := New(drv)

	rows, err := c.Query(context.Background(), "SELECT * FROM {&table} WHERE name = {$name} {#order}", map[string]any{
		"table": "users",
		"name":  `x"; DROP TABLE users; --`,
		"order": "ORDER BY id",
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"SELECT * FROM `users` WHERE name = \"x\\\"; DROP TABLE users; --\" ORDER BY id"}, drv.queries)
}

func TestQueryOneAppendsLimit(t *testing.T) {
	drv := &fakeDriver{rows: []Row{{"id": int64(1)}, {"id": int64(2)}}}
	c := New(drv)

	row, err := c.QueryOne(context.Background(), "SELECT id FROM t;  ", nil)
	require.NoError(t, err)
	assert.Equal(t, Row{"id": int64(1)}, row)

	_, err = c.QueryOne(context.Background(), "SELECT id FROM t limit 1", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"SELECT id FROM t LIMIT 1", "SELECT id FROM t limit 1"}, drv.queries)
}

func TestQueryOneNoRows(t *testing.T) {
	c := New(&fakeDriver{})

	row, err := c.QueryOne(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestSelectOptions(t *testing.T) {
	drv := &fakeDriver{}
	c := New(drv)

	_, err := c.Select(context.Background(), "users",
		ordered.New().Set("status", "active"),
		Columns("id", "email"),
		OrderBy("id", "DESC"),
		Limit(5),
	)
	require.NoError(t, err)

	_, err = c.SelectOne(context.Background(), "users", nil, Fields(escape.As("email", "mail")))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"SELECT `id`, `email` FROM `users` WHERE `status` = \"active\" ORDER BY `id` DESC LIMIT 5",
		"SELECT `email` AS `mail` FROM `users` LIMIT 1",
	}, drv.queries)
}

func TestWrites(t *testing.T) {
	drv := &fakeDriver{result: ExecResult{LastInsertID: 12, RowsAffected: 3}}
	c := New(drv)
	ctx := context.Background()

	id, err := c.Insert(ctx, "users", ordered.New().Set("email", "a@b.c"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = c.InsertIgnore(ctx, "users", ordered.New().Set("email", "a@b.c"))
	require.NoError(t, err)

	res, err := c.InsertMany(ctx, "tags", []string{"name"}, [][]any{{"a"}, {"b"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.RowsAffected)

	n, err := c.Update(ctx, "users", ordered.New().Set("email", "x@y.z"), ordered.New().Set("id", 12))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = c.Delete(ctx, "users", ordered.New().Set("id", 12))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.Equal(t, []string{
		"INSERT INTO `users` (`email`) VALUES (\"a@b.c\")",
		"INSERT IGNORE INTO `users` (`email`) VALUES (\"a@b.c\")",
		"INSERT INTO `tags` (`name`) VALUES (\"a\"), (\"b\")",
		"UPDATE `users` SET `email` = \"x@y.z\" WHERE `id` = 12",
		"DELETE FROM `users` WHERE `id` = 12",
	}, drv.queries)
}

func TestWritesRequireWhere(t *testing.T) {
	drv := &fakeDriver{}
	c := New(drv)

	_, err := c.Update(context.Background(), "users", ordered.New().Set("a", 1), nil)
	assert.ErrorIs(t, err, sqlgen.ErrEmptyWhere)

	_, err = c.Delete(context.Background(), "users", ordered.New())
	assert.ErrorIs(t, err, sqlgen.ErrEmptyWhere)

	assert.Empty(t, drv.queries)
}

func TestDuplicateEntry(t *testing.T) {
	insert := "INSERT INTO `users` (`email`) VALUES (\"a@b.c\")"
	drv := &fakeDriver{errs: map[string]error{
		insert: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.email'"},
	}}
	c := New(drv)

	_, err := c.Insert(context.Background(), "users", ordered.New().Set("email", "a@b.c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, executor.ErrDuplicateEntry)

	var dup *executor.DuplicateEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a@b.c", dup.Entry)
	assert.Equal(t, "email", dup.Index())
}

func TestEscapeHelpers(t *testing.T) {
	c := New(&fakeDriver{})

	v, err := c.EscapeValue([]any{1, "a", nil})
	require.NoError(t, err)
	assert.Equal(t, `(1, "a", NULL)`, v)

	id, err := c.EscapeIdentifier("db.table")
	require.NoError(t, err)
	assert.Equal(t, "`db`.`table`", id)

	w, err := c.Where(ordered.New().Set("a", 1))
	require.NoError(t, err)
	assert.Equal(t, "WHERE `a` = 1", w)
}

func TestTransactionCommit(t *testing.T) {
	drv := &fakeDriver{}
	c := New(drv)

	err := c.Transaction(context.Background(), func(tx *Connection) error {
		_, err := tx.Exec(context.Background(), "DELETE FROM t WHERE id = 1", nil)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"START TRANSACTION", "DELETE FROM t WHERE id = 1", "COMMIT"}, drv.queries)
}

func TestTransactionRollback(t *testing.T) {
	drv := &fakeDriver{}
	c := New(drv)
	boom := errors.New("boom")

	err := c.Transaction(context.Background(), func(*Connection) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"START TRANSACTION", "ROLLBACK"}, drv.queries)
}

func TestTransactionRollbackOnPanic(t *testing.T) {
	drv := &fakeDriver{}
	c := New(drv)

	assert.PanicsWithValue(t, "boom", func() {
		_ = c.Transaction(context.Background(), func(*Connection) error { panic("boom") })
	})
	assert.Equal(t, []string{"START TRANSACTION", "ROLLBACK"}, drv.queries)
}

func TestPoolRegistration(t *testing.T) {
	p := NewPool()
	a := New(&fakeDriver{}, WithPool(p))
	b := New(&fakeDriver{}, WithPool(p))
	standalone := New(&fakeDriver{})

	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, -1, standalone.Index())

	got, err := p.Get(1)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = p.Get(2)
	assert.Error(t, err)
}

func TestServerVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	drv := &fakeDriver{rows: []Row{{"version": "5.6.51-log"}}}
	c := New(drv, WithLogger(logger))

	v, err := c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.6.51", v.String())

	c.checkServerVersion(context.Background())
	assert.Contains(t, buf.String(), "server version is older than supported")

	drv.rows = []Row{{"version": "10.11.6-MariaDB"}}
	v, err = c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.11.6", v.String())
}

func TestClose(t *testing.T) {
	drv := &fakeDriver{}
	require.NoError(t, New(drv).Close())
	assert.True(t, drv.closed)
}

func TestMinServerVersion(t *testing.T) {
	for _, tt := range []struct {
		raw  string
		want bool
	}{
		{"5.6.51-log", false},
		{"5.7.44", true},
		{"8.0.36-0ubuntu0.22.04.1", true},
		{"10.11.6-MariaDB", true},
	} {
		c := New(&fakeDriver{rows: []Row{{"version": tt.raw}}})
		v, err := c.ServerVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.want, MinServerVersion.Check(v), tt.raw)
	}
}
