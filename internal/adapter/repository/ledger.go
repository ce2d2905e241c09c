package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/repository"
	"github.com/hifzhub/murajaah/pkg/filterexpr"
)

const ledgerColumns = `id, user_id, kind, points, submission_id, context, created_at`

type ledgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository constructs a pgx-backed hasanat ledger repository.
func NewLedgerRepository(pool *pgxpool.Pool) repository.LedgerRepository {
	return &ledgerRepository{pool: pool}
}

// Append inserts the entry unless its submission id is already recorded.
// The partial unique index on submission_id makes replays a no-op, so a
// retried review submission can never double-award points.
func (r *ledgerRepository) Append(ctx context.Context, entry *entity.HasanatLedgerEntry) (*entity.HasanatLedgerEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	const insert = `INSERT INTO hasanat_ledger
		(user_id, kind, points, submission_id, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (submission_id) WHERE submission_id <> '' DO NOTHING
		RETURNING ` + ledgerColumns

	inserted, err := scanLedgerEntry(r.pool.QueryRow(ctx, insert,
		entry.UserID, string(entry.Kind), entry.Points,
		entry.SubmissionID, entry.Context, entry.CreatedAt,
	))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("append ledger entry: %w", err)
	}

	const existing = `SELECT ` + ledgerColumns + `
		FROM hasanat_ledger WHERE submission_id = $1`
	prior, err := scanLedgerEntry(r.pool.QueryRow(ctx, existing, entry.SubmissionID))
	if err != nil {
		return nil, false, fmt.Errorf("load replayed ledger entry: %w", err)
	}
	return prior, false, nil
}

func (r *ledgerRepository) TotalForUser(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM hasanat_ledger WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum hasanat: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) List(ctx context.Context, query *repository.ListLedgerQuery) ([]entity.HasanatLedgerEntry, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := filterexpr.Bind(query, query, listLedgerSchema); err != nil {
		return nil, 0, err
	}
	normalizePagination(&query.Pagination)

	sql := `SELECT ` + ledgerColumns + `, COUNT(*) OVER() AS total_count
		FROM hasanat_ledger
		WHERE user_id = $1
		  AND ($2::text = '' OR kind = $2)
		  AND ($3::bigint = 0 OR points >= $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY ` + orderClause(query.PrimaryKey, query.PrimaryDesc) + `, id DESC
		LIMIT $6 OFFSET $7`

	rows, err := r.pool.Query(ctx, sql,
		query.UserID, query.Kind, query.MinPoints,
		nullableTime(query.From), nullableTime(query.To),
		query.PageSize, query.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var (
		entries []entity.HasanatLedgerEntry
		total   int64
	)
	for rows.Next() {
		var e entity.HasanatLedgerEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Kind, &e.Points,
			&e.SubmissionID, &e.Context, &e.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, total, nil
}

func scanLedgerEntry(row pgx.Row) (*entity.HasanatLedgerEntry, error) {
	var e entity.HasanatLedgerEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Kind, &e.Points, &e.SubmissionID, &e.Context, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
