package entity

import (
	"strings"
	"time"
)

// ActivityKind distinguishes how hasanat were earned.
type ActivityKind string

const (
	ActivityRecitation         ActivityKind = "recitation"
	ActivityMemorizationReview ActivityKind = "memorization_review"
)

// ParseActivityKind converts an arbitrary string into a supported kind.
func ParseActivityKind(s string) (ActivityKind, error) {
	switch ActivityKind(strings.ToLower(strings.TrimSpace(s))) {
	case ActivityRecitation:
		return ActivityRecitation, nil
	case ActivityMemorizationReview:
		return ActivityMemorizationReview, nil
	default:
		return "", ErrInvalidActivityKind
	}
}

// HasanatLedgerEntry is one append-only reward record. A user's total is the
// running sum; entries are never mutated after creation. SubmissionID is the
// deduplication key for review-driven awards.
type HasanatLedgerEntry struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	Kind         ActivityKind `json:"kind"`
	Points       int64        `json:"points"`
	SubmissionID string       `json:"submission_id,omitempty"`
	Context      string       `json:"context,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
