package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hifzhub/murajaah/internal/entity"
)

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return entity.ErrDuplicateReviewItem
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrReviewItemNotFound
	}
	return err
}
