package entity

import "time"

// MatchKind classifies a single position of the word alignment.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchClose     MatchKind = "close"
	MatchPartial   MatchKind = "partial"
	MatchDifferent MatchKind = "different"
	MatchMissing   MatchKind = "missing"
	MatchExtra     MatchKind = "extra"
)

// WordAlignment records how one recited word lines up against the reference.
// Alignment is purely positional; recitations with re-ordered words are
// undercounted (known heuristic limitation).
type WordAlignment struct {
	Position   int       `json:"position"`
	Expected   string    `json:"expected"`
	Actual     string    `json:"actual"`
	Similarity float64   `json:"similarity"`
	Kind       MatchKind `json:"kind"`
}

// AnalysisIssue flags a suspected pronunciation problem at one position.
type AnalysisIssue struct {
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Note     string `json:"note"`
}

// AnalysisResult is the immutable outcome of one recitation analysis.
// Sub-scores and Overall are on the 0-100 display scale.
type AnalysisResult struct {
	SubmissionID  string          `json:"submission_id"`
	StudentID     int64           `json:"student_id"`
	Verse         VerseRef        `json:"verse"`
	Transcription string          `json:"transcription"`
	ExpectedText  string          `json:"expected_text"`
	Alignments    []WordAlignment `json:"alignments"`
	Issues        []AnalysisIssue `json:"issues"`
	Accuracy      float64         `json:"accuracy"`
	Fluency       float64         `json:"fluency"`
	Tajweed       float64         `json:"tajweed"`
	Overall       float64         `json:"overall"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OverallUnit returns the overall score on the [0,1] fusion scale.
func (r *AnalysisResult) OverallUnit() float64 { return r.Overall / 100 }
