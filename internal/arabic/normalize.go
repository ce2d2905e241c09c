// Package arabic holds the text utilities shared by the recitation scorer
// and the hasanat calculator: diacritic stripping, whitespace folding and
// letter counting over Uthmani script.
package arabic

import (
	"strings"
	"unicode"
)

const tatweel = 'ـ'

// diacriticRanges covers tashkeel and the Quranic annotation marks that must
// not participate in word comparison or letter counting.
var diacriticRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1}, // honorific & Quranic signs
		{Lo: 0x064B, Hi: 0x065F, Stride: 1}, // tashkeel: fathatan..wavy hamza
		{Lo: 0x0670, Hi: 0x0670, Stride: 1}, // superscript alef
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1}, // small high ligatures
		{Lo: 0x06DF, Hi: 0x06E8, Stride: 1}, // small high marks
		{Lo: 0x06EA, Hi: 0x06ED, Stride: 1}, // empty centre marks
		{Lo: 0x08D3, Hi: 0x08FF, Stride: 1}, // extended Quranic annotations
	},
}

// IsDiacritic reports whether r is a tashkeel or annotation mark.
func IsDiacritic(r rune) bool {
	return unicode.Is(diacriticRanges, r)
}

// Normalize strips diacritics and tatweel and collapses runs of whitespace
// to single spaces so two Arabic strings can be compared fairly.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true // swallow leading whitespace
	for _, r := range s {
		switch {
		case IsDiacritic(r) || r == tatweel:
			continue
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
				space = true
			}
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Words normalizes s and splits it into whitespace-delimited tokens.
func Words(s string) []string {
	return strings.Fields(Normalize(s))
}

// LetterCount counts the Arabic letters in s, ignoring diacritics, tatweel,
// whitespace and any non-Arabic runes. This is the letter basis of hasanat.
func LetterCount(s string) int {
	count := 0
	for _, r := range s {
		if r == tatweel {
			continue
		}
		if unicode.IsLetter(r) && unicode.Is(unicode.Arabic, r) {
			count++
		}
	}
	return count
}
