// Package recitation turns an audio submission into a scored analysis of
// how faithfully a verse was recited. The pipeline fans out to a
// transcription provider and a reference-text provider, aligns the
// normalized word sequences and aggregates accuracy, fluency and tajweed
// sub-scores into one overall confidence.
package recitation

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hifzhub/murajaah/internal/arabic"
	"github.com/hifzhub/murajaah/internal/entity"
)

// Transcriber converts recited audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// VerseTextProvider supplies the canonical text of a verse.
type VerseTextProvider interface {
	VerseText(ctx context.Context, ref entity.VerseRef) (string, error)
}

// Cache is the read-through cache injected into the pipeline. Implementations
// must tolerate concurrent use; a miss is (_, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Weights for folding the sub-scores into the overall confidence.
const (
	accuracyWeight = 0.4
	fluencyWeight  = 0.3
	tajweedWeight  = 0.3

	closeMatchCredit = 0.8
)

// Options tunes cache TTLs and provider deadlines.
type Options struct {
	VerseTextTTL    time.Duration
	AnalysisTTL     time.Duration
	ProviderTimeout time.Duration
}

func (o *Options) withDefaults() Options {
	opts := Options{
		VerseTextTTL:    30 * 24 * time.Hour, // scripture text is immutable
		AnalysisTTL:     24 * time.Hour,
		ProviderTimeout: 30 * time.Second,
	}
	if o == nil {
		return opts
	}
	if o.VerseTextTTL > 0 {
		opts.VerseTextTTL = o.VerseTextTTL
	}
	if o.AnalysisTTL > 0 {
		opts.AnalysisTTL = o.AnalysisTTL
	}
	if o.ProviderTimeout > 0 {
		opts.ProviderTimeout = o.ProviderTimeout
	}
	return opts
}

// Pipeline orchestrates one analysis invocation. It is stateless apart from
// the injected collaborators and safe for concurrent use.
type Pipeline struct {
	transcriber Transcriber
	verses      VerseTextProvider
	cache       Cache
	scorer      Scorer
	logger      *logrus.Logger
	opts        Options
	clock       func() time.Time
}

// NewPipeline wires the pipeline with its collaborators. opts may be nil.
func NewPipeline(transcriber Transcriber, verses VerseTextProvider, cache Cache, scorer Scorer, logger *logrus.Logger, opts *Options) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		verses:      verses,
		cache:       cache,
		scorer:      scorer,
		logger:      logger,
		opts:        opts.withDefaults(),
		clock:       time.Now,
	}
}

// Analyze produces an AnalysisResult for one submission. It fails with
// entity.ErrTranscriptionUnavailable or entity.ErrReferenceTextUnavailable
// when the respective collaborator cannot supply data; callers degrade to
// self-reported confidence instead of failing the submission.
func (p *Pipeline) Analyze(ctx context.Context, sub *entity.ReviewSubmission) (*entity.AnalysisResult, error) {
	if cached, ok := p.cachedResult(ctx, sub); ok {
		return cached, nil
	}

	var expected, transcription string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := p.expectedText(gctx, sub.Verse)
		if err != nil {
			return err
		}
		expected = text
		return nil
	})
	g.Go(func() error {
		tctx, cancel := context.WithTimeout(gctx, p.opts.ProviderTimeout)
		defer cancel()
		text, err := p.transcriber.Transcribe(tctx, sub.Audio)
		if err != nil {
			return fmt.Errorf("%w: %v", entity.ErrTranscriptionUnavailable, err)
		}
		transcription = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	expectedWords := arabic.Words(expected)
	if len(expectedWords) == 0 {
		return nil, fmt.Errorf("%w: empty reference text for %s", entity.ErrReferenceTextUnavailable, sub.Verse)
	}
	actualWords := arabic.Words(transcription)

	alignments, issues := p.align(expectedWords, actualWords)
	result := p.score(sub, expected, transcription, expectedWords, alignments, issues)

	p.storeResult(sub, result)
	return result, nil
}

// align pads the shorter word sequence with empty placeholders and
// classifies each position. Positional only: no re-ordering tolerance.
func (p *Pipeline) align(expected, actual []string) ([]entity.WordAlignment, []entity.AnalysisIssue) {
	length := len(expected)
	if len(actual) > length {
		length = len(actual)
	}

	alignments := make([]entity.WordAlignment, 0, length)
	var issues []entity.AnalysisIssue

	for i := 0; i < length; i++ {
		var exp, act string
		if i < len(expected) {
			exp = expected[i]
		}
		if i < len(actual) {
			act = actual[i]
		}

		similarity := p.scorer.Similarity(exp, act)
		alignment := entity.WordAlignment{
			Position:   i,
			Expected:   exp,
			Actual:     act,
			Similarity: similarity,
			Kind:       classify(exp, act, similarity),
		}
		alignments = append(alignments, alignment)

		if note, ok := p.scorer.ConfusionNote(exp, act); ok {
			issues = append(issues, entity.AnalysisIssue{
				Position: i,
				Expected: exp,
				Actual:   act,
				Note:     note,
			})
		}
	}
	return alignments, issues
}

func classify(expected, actual string, similarity float64) entity.MatchKind {
	switch {
	case expected == "" && actual != "":
		return entity.MatchExtra
	case actual == "" && expected != "":
		return entity.MatchMissing
	case expected == actual:
		return entity.MatchExact
	case similarity > closeThreshold:
		return entity.MatchClose
	case similarity > partialThreshold:
		return entity.MatchPartial
	default:
		return entity.MatchDifferent
	}
}

func (p *Pipeline) score(sub *entity.ReviewSubmission, expected, transcription string, expectedWords []string, alignments []entity.WordAlignment, issues []entity.AnalysisIssue) *entity.AnalysisResult {
	totalWords := float64(len(expectedWords))

	exactCount := float64(lo.CountBy(alignments, func(a entity.WordAlignment) bool { return a.Kind == entity.MatchExact }))
	closeCount := float64(lo.CountBy(alignments, func(a entity.WordAlignment) bool { return a.Kind == entity.MatchClose }))
	similaritySum := lo.SumBy(alignments, func(a entity.WordAlignment) float64 { return a.Similarity })

	accuracy := (exactCount + closeMatchCredit*closeCount) / totalWords
	fluency := 0.0
	if len(alignments) > 0 {
		fluency = similaritySum / float64(len(alignments))
	}
	tajweed := 1 - float64(len(issues))/totalWords
	if tajweed < 0 {
		tajweed = 0
	}
	overall := accuracyWeight*accuracy + fluencyWeight*fluency + tajweedWeight*tajweed

	return &entity.AnalysisResult{
		SubmissionID:  sub.ID,
		StudentID:     sub.StudentID,
		Verse:         sub.Verse,
		Transcription: transcription,
		ExpectedText:  expected,
		Alignments:    alignments,
		Issues:        issues,
		Accuracy:      accuracy * 100,
		Fluency:       fluency * 100,
		Tajweed:       tajweed * 100,
		Overall:       overall * 100,
		CreatedAt:     p.clock(),
	}
}

// expectedText reads the verse text through the cache; scripture never
// changes, so the TTL is long.
func (p *Pipeline) expectedText(ctx context.Context, ref entity.VerseRef) (string, error) {
	key := verseTextKey(ref)
	if text, ok, err := p.cache.Get(ctx, key); err == nil && ok {
		return text, nil
	} else if err != nil {
		p.logger.WithError(err).WithField("verse", ref.Key()).Warn("verse text cache read failed")
	}

	vctx, cancel := context.WithTimeout(ctx, p.opts.ProviderTimeout)
	defer cancel()
	text, err := p.verses.VerseText(vctx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrReferenceTextUnavailable, err)
	}

	p.setAsync(key, text, p.opts.VerseTextTTL)
	return text, nil
}

func (p *Pipeline) cachedResult(ctx context.Context, sub *entity.ReviewSubmission) (*entity.AnalysisResult, bool) {
	raw, ok, err := p.cache.Get(ctx, analysisKey(sub))
	if err != nil {
		p.logger.WithError(err).Warn("analysis cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var result entity.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		p.logger.WithError(err).Warn("analysis cache entry corrupt")
		return nil, false
	}
	// The cached analysis may belong to an earlier retry of the same audio.
	result.SubmissionID = sub.ID
	return &result, true
}

// storeResult memoizes the analysis so client retries with identical audio
// do not re-bill the transcription provider.
func (p *Pipeline) storeResult(sub *entity.ReviewSubmission, result *entity.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		p.logger.WithError(err).Warn("marshal analysis for cache")
		return
	}
	p.setAsync(analysisKey(sub), string(raw), p.opts.AnalysisTTL)
}

// setAsync writes to the cache off the critical scheduling path.
func (p *Pipeline) setAsync(key, value string, ttl time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.cache.Set(ctx, key, value, ttl); err != nil {
			p.logger.WithError(err).WithField("key", key).Debug("cache write failed")
		}
	}()
}

func verseTextKey(ref entity.VerseRef) string {
	return "verse:text:" + ref.ID()
}

func analysisKey(sub *entity.ReviewSubmission) string {
	digest := sha256.Sum256(sub.Audio)
	return fmt.Sprintf("analysis:%d:%s:%x", sub.StudentID, sub.Verse.ID(), digest)
}
