package parser

import (
	"regexp"
	"strings"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// idiomSectionLabels recognize the section headers that introduce
// trailing idiom blocks.
var idiomSectionLabels = makeStringSet(
	"idiomatic phrases", "idioms", "collocations",
)

// isIdiomSectionLabel reports whether text is a bare idiom-section
// header.
func isIdiomSectionLabel(text string) bool {
	t := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(text), ":"))
	return idiomSectionLabels[t]
}

// numberedListRe matches a numbered general-meaning list:
// "1) text; 2) text;". Those belong to the stem gloss, not the idioms.
var numberedListRe = regexp.MustCompile(`^\d{1,2}\)\s+[^;]+;(?:\s*\d{1,2}\)\s+[^;]+;?)*\s*$`)

// IdiomSegmenter collects the trailing plain-text blocks of an entry
// into idiom strings, filtering out section labels and leftover
// markers.
type IdiomSegmenter struct {
	stats *Stats
}

func NewIdiomSegmenter(stats *Stats) *IdiomSegmenter {
	return &IdiomSegmenter{stats: stats}
}

// Segment filters the pending buffer down to idiom text, kept verbatim
// after normalization. Returns nil when nothing survives.
func (s *IdiomSegmenter) Segment(pending []domain.Paragraph) []string {
	var idioms []string
	for _, p := range pending {
		text := domain.NormalizeText(p.Text)
		if text == "" {
			continue
		}
		if isIdiomSectionLabel(text) {
			continue
		}
		if strings.HasPrefix(text, "(Detrans") {
			continue
		}
		if strings.Contains(text, ";") && numberedListRe.MatchString(text) {
			continue
		}
		idioms = append(idioms, text)
	}
	if len(idioms) == 0 {
		return nil
	}
	s.stats.IdiomEntries += len(idioms)
	return idioms
}
