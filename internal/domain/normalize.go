package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares paragraph text for classification and storage:
//   - applies Unicode NFC so precomposed and decomposed diacritics
//     compare equal
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//
// Case is preserved: Turoyo transliteration is case-significant and
// reference sigla distinguish "EL" from "el.".
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := true
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// StripSpace removes all whitespace from s after NFC normalization.
// Used to compare token streams against their source text without
// caring where word breaks fell.
func StripSpace(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
