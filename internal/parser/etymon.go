package parser

import (
	"regexp"
	"strings"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// Source-language abbreviations as they appear in the glossary.
// Longer spellings come first so the alternation prefers them.
var sourceAbbrevs = []string{
	"Arab.", "Aram.", "Akkad.", "Armen.", "Engl.", "Hebr.", "Kurd.",
	"Mlaḥso", "NENA", "Pers.", "Russ.", "Syr.", "Turk.", "MEA", "Ar.",
	"Fr.", "Gr.", "It.", "Lat.", "MA",
}

// sourceNorm collapses variant spellings to the canonical abbreviation.
var sourceNorm = map[string]string{
	"Ar.": "Arab.",
}

func normSource(s string) string {
	if n, ok := sourceNorm[s]; ok {
		return n
	}
	return s
}

var sourceAlt = func() string {
	quoted := make([]string, len(sourceAbbrevs))
	for i, s := range sourceAbbrevs {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}()

// Etymon sub-patterns in priority order. Group layout per pattern:
// source, root, reference, meaning (where present).
var (
	// "Kurd. p'erç cf. Chyet 438: to crush"
	etymonCfRe = regexp.MustCompile(`^(` + sourceAlt + `)\s+(\S+)\s+cf\.\s+([^:]+?)\s*:\s*(.+)$`)

	// "Arab. ʕbd, Wehr 807: dienen, göttliche Verehrung erweisen"
	etymonRefRe = regexp.MustCompile(`^(` + sourceAlt + `)\s+([^\s,]+),\s*([^:]+?)\s*:\s*(.+)$`)

	// "cf. Syr. ʕbd, PS 2772: to do"; reference and meaning optional.
	cfEtymonRe = regexp.MustCompile(`^cf\.\s+(` + sourceAlt + `)\s+([^\s,]+)(?:,\s*([^:]+?)\s*:\s*)?(.*)$`)

	// "SL; 123 ..." (abbreviation, semicolon, running number, notes).
	abbrevNumRe = regexp.MustCompile(`^(\p{Lu}[\p{L}]*\.?)\s*;\s*(\d+[a-z]?)\s*(.*)$`)

	// Freeform markers keep their whole text as notes. The word
	// boundary stays off "cf.": a \b after the dot never matches
	// before the following space.
	freeformRe = regexp.MustCompile(`^(?:see\b|cf\.|unknown\b)`)

	// Source followed by anything that fits no tighter pattern.
	srcNotesRe = regexp.MustCompile(`^(` + sourceAlt + `)\s+(.+)$`)
)

// parseEtymon matches one cognate part against the sub-patterns in
// priority order. The raw fallback guarantees an etymon is never lost
// to unparseable syntax.
func parseEtymon(part string) domain.Etymon {
	part = strings.TrimSpace(part)
	part = strings.TrimSpace(strings.TrimPrefix(part, "<"))
	if part == "" {
		return domain.Etymon{}
	}

	if m := etymonCfRe.FindStringSubmatch(part); m != nil {
		return domain.Etymon{
			Source:     normSource(m[1]),
			SourceRoot: m[2],
			Reference:  strings.TrimSpace(m[3]),
			Meaning:    strings.TrimSpace(m[4]),
		}
	}
	if m := etymonRefRe.FindStringSubmatch(part); m != nil {
		return domain.Etymon{
			Source:     normSource(m[1]),
			SourceRoot: m[2],
			Reference:  strings.TrimSpace(m[3]),
			Meaning:    strings.TrimSpace(m[4]),
		}
	}
	if m := cfEtymonRe.FindStringSubmatch(part); m != nil {
		et := domain.Etymon{
			Source:     normSource(m[1]),
			SourceRoot: m[2],
		}
		if m[3] != "" {
			et.Reference = strings.TrimSpace(m[3])
			et.Meaning = strings.TrimSpace(m[4])
		} else {
			et.Notes = strings.TrimSpace(m[4])
		}
		return et
	}
	if m := abbrevNumRe.FindStringSubmatch(part); m != nil {
		return domain.Etymon{
			Reference: m[1] + " " + m[2],
			Notes:     strings.TrimSpace(m[3]),
		}
	}
	if freeformRe.MatchString(part) {
		return domain.Etymon{Notes: part}
	}
	if m := srcNotesRe.FindStringSubmatch(part); m != nil {
		return domain.Etymon{
			Source: normSource(m[1]),
			Notes:  strings.TrimSpace(m[2]),
		}
	}
	return domain.Etymon{Raw: part}
}
