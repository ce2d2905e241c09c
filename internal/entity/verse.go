package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// SurahCount is the number of surahs in the mushaf.
const SurahCount = 114

// MaxAyahCount is the ayah count of the longest surah (Al-Baqarah).
const MaxAyahCount = 286

// VerseRef identifies a single ayah within a surah.
type VerseRef struct {
	Surah int `json:"surah"`
	Ayah  int `json:"ayah"`
}

// Valid reports whether the reference points inside the mushaf bounds.
func (v VerseRef) Valid() bool {
	return v.Surah >= 1 && v.Surah <= SurahCount && v.Ayah >= 1 && v.Ayah <= MaxAyahCount
}

// Key returns the canonical "surah:ayah" form, e.g. "2:255".
func (v VerseRef) Key() string {
	return fmt.Sprintf("%d:%d", v.Surah, v.Ayah)
}

// ID returns the fixed-width SSSAAA identifier, e.g. "002255".
func (v VerseRef) ID() string {
	return fmt.Sprintf("%03d%03d", v.Surah, v.Ayah)
}

func (v VerseRef) String() string { return v.Key() }

// ParseVerseRef parses a "surah:ayah" reference.
func ParseVerseRef(s string) (VerseRef, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrInvalidVerseRef, s)
	}
	surah, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrInvalidVerseRef, s)
	}
	ayah, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrInvalidVerseRef, s)
	}
	ref := VerseRef{Surah: surah, Ayah: ayah}
	if !ref.Valid() {
		return VerseRef{}, fmt.Errorf("%w: %q", ErrInvalidVerseRef, s)
	}
	return ref, nil
}

// ParseVerseRange parses "surah:first-last" (or a single "surah:ayah") into
// the individual references it spans.
func ParseVerseRange(s string) ([]VerseRef, error) {
	trimmed := strings.TrimSpace(s)
	dash := strings.IndexByte(trimmed, '-')
	if dash < 0 {
		ref, err := ParseVerseRef(trimmed)
		if err != nil {
			return nil, err
		}
		return []VerseRef{ref}, nil
	}

	first, err := ParseVerseRef(trimmed[:dash])
	if err != nil {
		return nil, err
	}
	last, err := strconv.Atoi(strings.TrimSpace(trimmed[dash+1:]))
	if err != nil || last < first.Ayah || last > MaxAyahCount {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVerseRef, s)
	}

	refs := make([]VerseRef, 0, last-first.Ayah+1)
	for ayah := first.Ayah; ayah <= last; ayah++ {
		refs = append(refs, VerseRef{Surah: first.Surah, Ayah: ayah})
	}
	return refs, nil
}
