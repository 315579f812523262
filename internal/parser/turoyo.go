// Package parser turns a pre-materialized block stream of a Turoyo verb
// glossary document into dictionary entries. It covers block
// classification, etymology extraction, table-cell tokenization,
// example segmentation, idiom collection and the final whole-corpus
// homonym pass. Pure functions over immutable input: no I/O happens
// here and a failed classification degrades instead of aborting.
package parser

import (
	"strings"
	"unicode"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// turoyoLetters is the transliteration alphabet of the glossary: Latin
// base letters, the Semitist diacritic set, vowels with length marks
// and the glottal/pharyngeal letters.
const turoyoLetters = "ʔʕabcčdḏefgġǧhḥijklmnopqrsṣštṭṯuvwxyzžāēīōūǟǝəăĕŭ"

// heavyLetters are the code points that essentially never occur in
// German or English gloss text. Their density drives the script
// heuristic when run styles are missing.
const heavyLetters = "ʔʕčḏġǧḥṣšṭṯžǝəāēīōūǟ"

func makeRuneSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

var (
	turoyoRunes = makeRuneSet(turoyoLetters)
	heavyRunes  = makeRuneSet(heavyLetters)
)

// isTuroyoRune reports whether r may occur inside a transliterated
// root. Combining marks count: source documents mix precomposed and
// decomposed diacritics.
func isTuroyoRune(r rune) bool {
	return turoyoRunes[r] || unicode.Is(unicode.Mn, r)
}

const (
	minRootLetters = 2
	maxRootLetters = 12
)

// matchRoot tries to read a Turoyo root at the start of text: 2-12
// alphabet code points, optionally followed by a space and a single
// digit (a source-provided homonym suffix). Returns the root, the
// remaining text and whether the match succeeded.
func matchRoot(text string) (root, rest string, ok bool) {
	text = domain.NormalizeText(text)
	end := 0
	letters := 0
	for i, r := range text {
		if !isTuroyoRune(r) {
			break
		}
		if !unicode.Is(unicode.Mn, r) {
			letters++
		}
		end = i + len(string(r))
	}
	if letters < minRootLetters || letters > maxRootLetters {
		return "", "", false
	}
	rest = text[end:]
	if rest != "" {
		r := []rune(rest)[0]
		// The alphabet run must end at a word boundary, not in the
		// middle of a foreign word.
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return "", "", false
		}
	}
	root = text[:end]

	// Source-provided homonym suffix: "ʔmr 2".
	if len(rest) >= 2 && rest[0] == ' ' && rest[1] >= '1' && rest[1] <= '9' {
		if len(rest) == 2 || !isWordByte(rest[2]) {
			root += rest[:2]
			rest = rest[2:]
		}
	}
	return root, strings.TrimSpace(rest), true
}

func isWordByte(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// looksTuroyo reports whether s reads as transliterated Turoyo rather
// than gloss text: at least 3 diacritic-bearing code points, or more
// than 15% of its letters carrying them.
func looksTuroyo(s string) bool {
	var letters, heavy int
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			heavy++
			continue
		}
		if unicode.IsLetter(r) {
			letters++
			if heavyRunes[r] {
				heavy++
			}
		}
	}
	if heavy >= 3 {
		return true
	}
	return letters > 0 && float64(heavy) > 0.15*float64(letters)
}

// germanStopwords are function words frequent in the glossary's German
// translations. One hit is strong evidence against Turoyo.
var germanStopwords = makeStringSet(
	"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen",
	"einem", "einer", "und", "oder", "nicht", "mit", "von", "auf",
	"für", "ist", "sind", "war", "sich", "werden", "wurde", "man",
	"als", "auch", "wenn", "dann", "noch", "nur", "schon", "sehr",
	"wie", "aus", "bei", "nach", "über", "unter", "zu", "zum", "zur",
	"etwas", "jemand", "jemanden", "machen", "lassen", "haben", "sein",
)

func makeStringSet(ss ...string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}

// hasGermanWord reports whether s contains a German function word.
func hasGermanWord(s string) bool {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?()[]'\"")
		if germanStopwords[w] {
			return true
		}
	}
	return false
}

// classifyText decides Turoyo vs. Translation for free cell text. An
// explicit italic flag wins; otherwise German function words veto and
// diacritic density confirms.
func classifyText(s string, italic *bool) domain.TokenKind {
	if italic != nil {
		if *italic {
			return domain.TokenTuroyo
		}
		return domain.TokenTranslation
	}
	if hasGermanWord(s) {
		return domain.TokenTranslation
	}
	if looksTuroyo(s) {
		return domain.TokenTuroyo
	}
	return domain.TokenTranslation
}
