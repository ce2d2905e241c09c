package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hifzhub/murajaah/internal/arabic"
	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/hasanat"
	"github.com/hifzhub/murajaah/internal/repository"
	"github.com/hifzhub/murajaah/internal/srs"
)

// Analyzer is the recitation pipeline seen from the submission flow.
type Analyzer interface {
	Analyze(ctx context.Context, sub *entity.ReviewSubmission) (*entity.AnalysisResult, error)
}

// EventPublisher emits ReviewCompleted to downstream consumers.
type EventPublisher interface {
	PublishReviewCompleted(ctx context.Context, event entity.ReviewCompleted) error
}

// ReviewUsecase processes review submissions end to end.
type ReviewUsecase interface {
	SubmitReview(ctx context.Context, sub *entity.ReviewSubmission) (*entity.ReviewResult, error)
	GetAnalysis(ctx context.Context, submissionID string) (*entity.AnalysisResult, error)
}

// Number of re-read-and-reapply attempts after a stale write conflict.
const defaultUpdateRetries = 3

// NewReviewUsecase wires the submission flow with its collaborators.
func NewReviewUsecase(
	items repository.ReviewItemRepository,
	ledger repository.LedgerRepository,
	analyses repository.AnalysisRepository,
	analyzer Analyzer,
	publisher EventPublisher,
	logger *logrus.Logger,
) ReviewUsecase {
	return &reviewUsecase{
		items:     items,
		ledger:    ledger,
		analyses:  analyses,
		analyzer:  analyzer,
		publisher: publisher,
		logger:    logger,
		clock:     time.Now,
		retries:   defaultUpdateRetries,
	}
}

type reviewUsecase struct {
	items     repository.ReviewItemRepository
	ledger    repository.LedgerRepository
	analyses  repository.AnalysisRepository
	analyzer  Analyzer
	publisher EventPublisher
	logger    *logrus.Logger
	clock     func() time.Time
	retries   int
}

// SubmitReview runs the full flow: optional audio analysis, confidence
// fusion, the optimistic schedule write, the hasanat award and the
// ReviewCompleted event. Provider failures degrade to self-reported
// confidence; only invalid input and retry exhaustion surface as errors.
func (u *reviewUsecase) SubmitReview(ctx context.Context, sub *entity.ReviewSubmission) (*entity.ReviewResult, error) {
	if sub == nil {
		return nil, entity.ErrInvalidConfidence
	}
	if math.IsNaN(sub.SelfConfidence) || sub.SelfConfidence < 0 || sub.SelfConfidence > 1 {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidConfidence, sub.SelfConfidence)
	}
	if !sub.Verse.Valid() {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidVerseRef, sub.Verse)
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	analysis, degraded := u.analyze(ctx, sub)

	var analysisOverall *float64
	if analysis != nil {
		overall := analysis.OverallUnit()
		analysisOverall = &overall
	}
	fused := srs.Fuse(sub.SelfConfidence, analysisOverall)

	item, err := u.reschedule(ctx, sub, fused)
	if err != nil {
		return nil, err
	}

	points, err := u.award(ctx, sub, analysis, fused)
	if err != nil {
		return nil, err
	}

	if analysis != nil {
		u.saveAnalysis(ctx, analysis)
	}
	u.publish(ctx, sub, item, fused, points)

	return &entity.ReviewResult{
		SubmissionID:    sub.ID,
		Item:            item,
		FusedConfidence: fused,
		PointsAwarded:   points,
		NextDueAt:       item.DueAt,
		Analysis:        analysis,
		Degraded:        degraded,
	}, nil
}

func (u *reviewUsecase) GetAnalysis(ctx context.Context, submissionID string) (*entity.AnalysisResult, error) {
	return u.analyses.GetBySubmission(ctx, submissionID)
}

// analyze runs the pipeline when audio is present. Failures are logged and
// swallowed: a spaced-repetition system must stay usable when analysis is
// offline.
func (u *reviewUsecase) analyze(ctx context.Context, sub *entity.ReviewSubmission) (*entity.AnalysisResult, bool) {
	if !sub.HasAudio() {
		return nil, false
	}

	analysis, err := u.analyzer.Analyze(ctx, sub)
	if err != nil {
		u.logger.WithError(err).WithFields(logrus.Fields{
			"submission": sub.ID,
			"student":    sub.StudentID,
			"verse":      sub.Verse.Key(),
		}).Warn("recitation analysis degraded to self-reported confidence")
		return nil, true
	}
	return analysis, false
}

// reschedule applies the scheduler under optimistic concurrency: on a stale
// write it re-reads the item and reapplies the pure transform.
func (u *reviewUsecase) reschedule(ctx context.Context, sub *entity.ReviewSubmission, fused float64) (*entity.ReviewItem, error) {
	var lastErr error
	for attempt := 0; attempt < u.retries; attempt++ {
		current, err := u.items.GetByVerse(ctx, sub.StudentID, sub.PlanID, sub.Verse)
		if err != nil {
			return nil, err
		}

		next, err := srs.UpdateSchedule(*current, fused, u.clock())
		if err != nil {
			return nil, err
		}

		updated, err := u.items.UpdateScheduled(ctx, &next)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, entity.ErrStaleWriteConflict) {
			return nil, err
		}
		lastErr = err
		u.logger.WithFields(logrus.Fields{
			"submission": sub.ID,
			"attempt":    attempt + 1,
		}).Info("review item changed underneath us, retrying")
	}
	return nil, fmt.Errorf("update review item after %d attempts: %w", u.retries, lastErr)
}

// award computes the hasanat and appends the ledger entry. The submission id
// is the deduplication key: replays award nothing extra.
func (u *reviewUsecase) award(ctx context.Context, sub *entity.ReviewSubmission, analysis *entity.AnalysisResult, fused float64) (int64, error) {
	points, err := hasanat.ComputeReward(u.letterCount(analysis), fused, entity.ActivityMemorizationReview)
	if err != nil {
		return 0, err
	}
	if analysis != nil {
		points += hasanat.AccuracyBonus(analysis.Accuracy)
	}

	entry := &entity.HasanatLedgerEntry{
		UserID:       sub.StudentID,
		Kind:         entity.ActivityMemorizationReview,
		Points:       points,
		SubmissionID: sub.ID,
		Context:      sub.Verse.Key(),
		CreatedAt:    u.clock(),
	}
	_, inserted, err := u.ledger.Append(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("append ledger entry: %w", err)
	}
	if !inserted {
		u.logger.WithField("submission", sub.ID).Info("ledger entry already recorded, skipping duplicate award")
	}
	return points, nil
}

func (u *reviewUsecase) letterCount(analysis *entity.AnalysisResult) int {
	if analysis == nil {
		return 0
	}
	return arabic.LetterCount(analysis.ExpectedText)
}

// saveAnalysis persists the audit record; failure never aborts a submission.
func (u *reviewUsecase) saveAnalysis(ctx context.Context, analysis *entity.AnalysisResult) {
	if err := u.analyses.Save(ctx, analysis); err != nil {
		u.logger.WithError(err).WithField("submission", analysis.SubmissionID).Warn("persist analysis result")
	}
}

func (u *reviewUsecase) publish(ctx context.Context, sub *entity.ReviewSubmission, item *entity.ReviewItem, fused float64, points int64) {
	event := entity.ReviewCompleted{
		SubmissionID:    sub.ID,
		StudentID:       sub.StudentID,
		PlanID:          sub.PlanID,
		Verse:           sub.Verse,
		FusedConfidence: fused,
		PointsAwarded:   points,
		NextDueAt:       item.DueAt,
		OccurredAt:      u.clock(),
	}
	if err := u.publisher.PublishReviewCompleted(ctx, event); err != nil {
		u.logger.WithError(err).WithField("submission", sub.ID).Warn("publish review completed event")
	}
}
