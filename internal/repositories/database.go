package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stocktrack/internal/common"
)

// Database is the slice of pgxpool.Pool the repositories need. pgxmock
// satisfies it, which is how the transaction paths get tested.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// mapStoreError converts driver-level failures into the domain taxonomy.
// Foreign-key and unique violations surface as Conflict, absent rows as
// NotFound; anything else passes through as a store error.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return common.ErrConflict
		case "23505": // unique_violation
			return common.ErrConflict
		}
	}
	return err
}
