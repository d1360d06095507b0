package database

import (
	"context"
	"fmt"
)

type txKey struct{}

// WithTransaction runs fn inside a transaction. The transaction rides the
// context; repositories pick it up through GetQuerier. A nil db runs fn
// directly, which keeps services usable against in-memory repositories.
func WithTransaction(ctx context.Context, db *DB, fn func(ctx context.Context) error) error {
	if db == nil {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction: %w (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetQuerier returns the transaction bound to the context, or the pool.
func GetQuerier(ctx context.Context, db *DB) Querier {
	if q, ok := ctx.Value(txKey{}).(Querier); ok {
		return q
	}
	return db.Pool
}
