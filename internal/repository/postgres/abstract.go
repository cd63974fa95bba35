package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/chat-service/internal/repository"

	"github.com/jackc/pgx/v5"
	pgconn "github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

/*
абстрактный слой над *pgxpool.Pool / pgx.Tx
чтобы составные операции шли одной транзакцией, а не по одному запросу
*/
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return repository.ErrUnavailable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique violation
			return repository.ErrAlreadyExists
		case "23503": // foreign key violation — ссылка на несуществующую строку
			return repository.ErrNotFound
		case "23514": // check violation
			return repository.ErrInvalidInput
		}
	}
	return err
}

// inTx выполняет fn в одной транзакции; при ошибке — rollback.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(q querier) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return mapPgError(err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return mapPgError(tx.Commit(ctx))
}
