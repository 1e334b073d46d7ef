// Package normtext canonicalizes strings for comparison. The feed this
// project ingests mixes full-width and half-width forms, stray Unicode
// whitespace, and several visually-identical dash and bracket variants;
// folding all of that down to one canonical form is what makes substring
// matching against configured tags reliable.
package normtext

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// punctFold maps punctuation, bracket, and dash variants to a single
// canonical rune. Applied after NFKC, which already folds most full-width
// forms; these are the leftovers NFKC preserves.
var punctFold = map[rune]rune{
	'‐': '-', '‑': '-', '‒': '-', '–': '-', '—': '-', '―': '-',
	'−': '-', '〜': '~', '～': '~',
	'・': '.', '･': '.', '•': '.', '·': '.',
	'「': '[', '」': ']', '『': '[', '』': ']',
	'【': '[', '】': ']', '〔': '[', '〕': ']',
	'〈': '<', '〉': '>', '《': '<', '》': '>',
	'“': '"', '”': '"', '‘': '\'', '’': '\'',
	'！': '!', '？': '?', '、': ',', '。': '.',
}

// Fold returns the canonical comparison form of s: NFKC and width folding,
// every Unicode whitespace class removed, punctuation variants folded, and
// case lowered. Pure and total; any input yields some (possibly empty) string.
func Fold(s string) string {
	s = width.Fold.String(s)
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if f, ok := punctFold[r]; ok {
			r = f
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// CleanIdentifier strips everything except digits and the check character X
// from a candidate identifier, upper-casing a trailing lower-case x. It never
// validates; callers decide whether the result is a usable identifier.
func CleanIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKC.String(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}
