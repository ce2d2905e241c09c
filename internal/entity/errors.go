package entity

import "errors"

// Domain errors for the review engine and related aggregates.
var (
	ErrInvalidConfidence        = errors.New("confidence out of range")
	ErrInvalidVerseRef          = errors.New("invalid verse reference")
	ErrReviewItemNotFound       = errors.New("review item not found")
	ErrDuplicateReviewItem      = errors.New("review item already exists")
	ErrTranscriptionUnavailable = errors.New("transcription unavailable")
	ErrReferenceTextUnavailable = errors.New("reference text unavailable")
	ErrStaleWriteConflict       = errors.New("stale write conflict")
	ErrAnalysisNotFound         = errors.New("analysis result not found")
	ErrInvalidActivityKind      = errors.New("invalid activity kind")
	ErrInvalidPlan              = errors.New("invalid memorization plan")
)
