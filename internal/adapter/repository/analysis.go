package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/repository"
)

type analysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository constructs a pgx-backed analysis result store.
func NewAnalysisRepository(pool *pgxpool.Pool) repository.AnalysisRepository {
	return &analysisRepository{pool: pool}
}

func (r *analysisRepository) Save(ctx context.Context, result *entity.AnalysisResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	alignments, err := json.Marshal(result.Alignments)
	if err != nil {
		return fmt.Errorf("encode alignments: %w", err)
	}
	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}

	// Results are immutable; a replayed submission keeps its first analysis.
	const query = `INSERT INTO analysis_results
		(submission_id, student_id, surah, ayah, transcription, expected_text,
		 alignments, issues, accuracy, fluency, tajweed, overall, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (submission_id) DO NOTHING`

	_, err = r.pool.Exec(ctx, query,
		result.SubmissionID, result.StudentID, result.Verse.Surah, result.Verse.Ayah,
		result.Transcription, result.ExpectedText, alignments, issues,
		result.Accuracy, result.Fluency, result.Tajweed, result.Overall, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save analysis result: %w", err)
	}
	return nil
}

func (r *analysisRepository) GetBySubmission(ctx context.Context, submissionID string) (*entity.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	const query = `SELECT submission_id, student_id, surah, ayah, transcription, expected_text,
		alignments, issues, accuracy, fluency, tajweed, overall, created_at
		FROM analysis_results WHERE submission_id = $1`

	var (
		result     entity.AnalysisResult
		alignments []byte
		issues     []byte
	)
	err := r.pool.QueryRow(ctx, query, submissionID).Scan(
		&result.SubmissionID, &result.StudentID, &result.Verse.Surah, &result.Verse.Ayah,
		&result.Transcription, &result.ExpectedText, &alignments, &issues,
		&result.Accuracy, &result.Fluency, &result.Tajweed, &result.Overall, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("get analysis result: %w", err)
	}
	if err := json.Unmarshal(alignments, &result.Alignments); err != nil {
		return nil, fmt.Errorf("decode alignments: %w", err)
	}
	if err := json.Unmarshal(issues, &result.Issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return &result, nil
}
