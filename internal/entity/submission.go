package entity

import "time"

// ReviewSubmission is the ephemeral input of one review attempt. It is never
// persisted as its own entity; it is consumed to produce a ReviewResult.
type ReviewSubmission struct {
	ID             string
	StudentID      int64
	PlanID         int64
	Verse          VerseRef
	SelfConfidence float64
	Audio          []byte
	ElapsedSeconds int32
}

// HasAudio reports whether a recording was attached.
func (s *ReviewSubmission) HasAudio() bool { return len(s.Audio) > 0 }

// ReviewResult is the outcome of a processed submission.
type ReviewResult struct {
	SubmissionID    string          `json:"submission_id"`
	Item            *ReviewItem     `json:"-"`
	FusedConfidence float64         `json:"fused_confidence"`
	PointsAwarded   int64           `json:"points_awarded"`
	NextDueAt       time.Time       `json:"next_due_at"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
	Degraded        bool            `json:"degraded"`
}

// ReviewCompleted is emitted after a submission has been fully processed.
// Consumers (notifications, teacher oversight) deduplicate on SubmissionID.
type ReviewCompleted struct {
	SubmissionID    string    `json:"submission_id"`
	StudentID       int64     `json:"student_id"`
	PlanID          int64     `json:"plan_id"`
	Verse           VerseRef  `json:"verse"`
	FusedConfidence float64   `json:"fused_confidence"`
	PointsAwarded   int64     `json:"points_awarded"`
	NextDueAt       time.Time `json:"next_due_at"`
	OccurredAt      time.Time `json:"occurred_at"`
}
