package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so db-init can run repeatedly.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS review_items (
		id               BIGSERIAL PRIMARY KEY,
		student_id       BIGINT NOT NULL,
		plan_id          BIGINT NOT NULL,
		surah            INT NOT NULL,
		ayah             INT NOT NULL,
		ease_factor      DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		interval_days    INT NOT NULL DEFAULT 1,
		repetitions      INT NOT NULL DEFAULT 0,
		confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		due_at           TIMESTAMPTZ NOT NULL,
		last_reviewed_at TIMESTAMPTZ,
		version          BIGINT NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_review_items_verse UNIQUE (student_id, plan_id, surah, ayah)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_items_due
		ON review_items (student_id, due_at)`,

	`CREATE TABLE IF NOT EXISTS hasanat_ledger (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL,
		kind          TEXT NOT NULL,
		points        BIGINT NOT NULL,
		submission_id TEXT NOT NULL DEFAULT '',
		context       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_hasanat_ledger_submission
		ON hasanat_ledger (submission_id) WHERE submission_id <> ''`,
	`CREATE INDEX IF NOT EXISTS idx_hasanat_ledger_user
		ON hasanat_ledger (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS analysis_results (
		submission_id TEXT PRIMARY KEY,
		student_id    BIGINT NOT NULL,
		surah         INT NOT NULL,
		ayah          INT NOT NULL,
		transcription TEXT NOT NULL,
		expected_text TEXT NOT NULL,
		alignments    JSONB NOT NULL DEFAULT '[]',
		issues        JSONB NOT NULL DEFAULT '[]',
		accuracy      DOUBLE PRECISION NOT NULL,
		fluency       DOUBLE PRECISION NOT NULL,
		tajweed       DOUBLE PRECISION NOT NULL,
		overall       DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema to the target database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
