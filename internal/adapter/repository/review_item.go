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

const reviewItemColumns = `id, student_id, plan_id, surah, ayah, ease_factor, interval_days,
	repetitions, confidence_score, due_at, last_reviewed_at, version, created_at, updated_at`

type reviewItemRepository struct {
	pool *pgxpool.Pool
}

// NewReviewItemRepository constructs a pgx-backed review item repository.
func NewReviewItemRepository(pool *pgxpool.Pool) repository.ReviewItemRepository {
	return &reviewItemRepository{pool: pool}
}

func (r *reviewItemRepository) CreateBatch(ctx context.Context, items []entity.ReviewItem) ([]entity.ReviewItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	const query = `INSERT INTO review_items
		(student_id, plan_id, surah, ayah, ease_factor, interval_days, repetitions,
		 confidence_score, due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (student_id, plan_id, surah, ayah) DO NOTHING
		RETURNING ` + reviewItemColumns

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.StudentID, item.PlanID, item.Verse.Surah, item.Verse.Ayah,
			item.EaseFactor, item.IntervalDays, item.Repetitions,
			item.ConfidenceScore, item.DueAt, item.CreatedAt, item.UpdatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]entity.ReviewItem, 0, len(items))
	for range items {
		row := results.QueryRow()
		item, err := scanReviewItem(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Existing (student, plan, verse) row; the conflict is benign.
				continue
			}
			return nil, fmt.Errorf("create review items: %w", translatePgError(err))
		}
		created = append(created, *item)
	}
	return created, nil
}

func (r *reviewItemRepository) GetByVerse(ctx context.Context, studentID, planID int64, verse entity.VerseRef) (*entity.ReviewItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	const query = `SELECT ` + reviewItemColumns + `
		FROM review_items
		WHERE student_id = $1 AND plan_id = $2 AND surah = $3 AND ayah = $4`

	item, err := scanReviewItem(r.pool.QueryRow(ctx, query, studentID, planID, verse.Surah, verse.Ayah))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrReviewItemNotFound
		}
		return nil, fmt.Errorf("get review item: %w", err)
	}
	return item, nil
}

func (r *reviewItemRepository) UpdateScheduled(ctx context.Context, item *entity.ReviewItem) (*entity.ReviewItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	const query = `UPDATE review_items
		SET ease_factor = $1, interval_days = $2, repetitions = $3,
		    confidence_score = $4, due_at = $5, last_reviewed_at = $6,
		    version = version + 1, updated_at = now()
		WHERE id = $7 AND version = $8
		RETURNING ` + reviewItemColumns

	updated, err := scanReviewItem(r.pool.QueryRow(ctx, query,
		item.EaseFactor, item.IntervalDays, item.Repetitions,
		item.ConfidenceScore, item.DueAt, item.LastReviewedAt,
		item.ID, item.Version,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update review item: %w", err)
	}

	// No row matched; tell a lost version race apart from a missing item.
	var exists bool
	if probeErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM review_items WHERE id = $1)`, item.ID,
	).Scan(&exists); probeErr != nil {
		return nil, fmt.Errorf("update review item: %w", probeErr)
	}
	if exists {
		return nil, entity.ErrStaleWriteConflict
	}
	return nil, entity.ErrReviewItemNotFound
}

func (r *reviewItemRepository) ListDue(ctx context.Context, query *repository.ListDueQuery) ([]entity.ReviewItem, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := filterexpr.Bind(query, query, listDueSchema); err != nil {
		return nil, 0, err
	}
	normalizePagination(&query.Pagination)

	sql := `SELECT ` + reviewItemColumns + `, COUNT(*) OVER() AS total_count
		FROM review_items
		WHERE student_id = $1 AND due_at <= $2
		  AND ($3::bigint = 0 OR plan_id = $3)
		  AND ($4::float8 = 0 OR confidence_score >= $4)
		  AND ($5::float8 = 0 OR confidence_score <= $5)
		ORDER BY ` + orderClause(query.PrimaryKey, query.PrimaryDesc) + `, id ASC
		LIMIT $6 OFFSET $7`

	rows, err := r.pool.Query(ctx, sql,
		query.StudentID, query.DueBefore,
		query.PlanID, query.MinConfidence, query.MaxConfidence,
		query.PageSize, query.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list due review items: %w", err)
	}
	defer rows.Close()

	var (
		items []entity.ReviewItem
		total int64
	)
	for rows.Next() {
		var item entity.ReviewItem
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.PlanID, &item.Verse.Surah, &item.Verse.Ayah,
			&item.EaseFactor, &item.IntervalDays, &item.Repetitions, &item.ConfidenceScore,
			&item.DueAt, &item.LastReviewedAt, &item.Version, &item.CreatedAt, &item.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list due review items: %w", err)
	}
	return items, total, nil
}

func scanReviewItem(row pgx.Row) (*entity.ReviewItem, error) {
	var item entity.ReviewItem
	err := row.Scan(
		&item.ID, &item.StudentID, &item.PlanID, &item.Verse.Surah, &item.Verse.Ayah,
		&item.EaseFactor, &item.IntervalDays, &item.Repetitions, &item.ConfidenceScore,
		&item.DueAt, &item.LastReviewedAt, &item.Version, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func normalizePagination(p *repository.Pagination) {
	if p.PageNo < 1 {
		p.PageNo = 1
	}
	if p.PageSize < 1 || p.PageSize > 200 {
		p.PageSize = 50
	}
}
