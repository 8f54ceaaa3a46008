package client

import (
	"context"
	"fmt"

	"github.com/yabx-net/mysql/query/sqlgen"
)

// Begin starts a transaction. Nested transactions are not supported.
func (c *Connection) Begin(ctx context.Context) error {
	_, err := c.exec.Exec(ctx, sqlgen.StartTransaction)
	return err
}

// Commit commits the current transaction
func (c *Connection) Commit(ctx context.Context) error {
	_, err := c.exec.Exec(ctx, sqlgen.Commit)
	return err
}

// Rollback rolls back the current transaction
func (c *Connection) Rollback(ctx context.Context) error {
	_, err := c.exec.Exec(ctx, sqlgen.Rollback)
	return err
}

// TransactionFunc is a function that runs within a transaction
type TransactionFunc func(c *Connection) error

// Transaction executes fn within a transaction.
// If fn returns an error or panics the transaction is rolled back,
// otherwise it is committed.
func (c *Connection) Transaction(ctx context.Context, fn TransactionFunc) (err error) {
	if err := c.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = c.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(c); err != nil {
		if rbErr := c.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := c.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
