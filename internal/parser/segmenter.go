package parser

import (
	"strings"
	"unicode"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// Segmenter groups a token list into examples: a Turoyo token opens a
// new example, translations and references attach to the open one. Two
// repair passes then fix the damage the source layout does to that
// simple rule.
type Segmenter struct {
	stats *Stats
}

func NewSegmenter(stats *Stats) *Segmenter {
	return &Segmenter{stats: stats}
}

func (s *Segmenter) Segment(tokens []domain.Token) []domain.Example {
	examples := segmentBase(tokens)
	examples = s.mergeAcross(examples)
	examples = s.splitConcatenated(examples)
	return examples
}

// SegmentCell segments one cell given per-paragraph token lists. Base
// segmentation flushes at paragraph boundaries; the repair passes then
// run across the whole cell, which is what lets the cross-paragraph
// merge reunite a Turoyo paragraph with its translation paragraph.
func (s *Segmenter) SegmentCell(paragraphs [][]domain.Token) []domain.Example {
	var examples []domain.Example
	for _, tokens := range paragraphs {
		examples = append(examples, segmentBase(tokens)...)
	}
	examples = s.mergeAcross(examples)
	examples = s.splitConcatenated(examples)
	return examples
}

func segmentBase(tokens []domain.Token) []domain.Example {
	var out []domain.Example
	var cur domain.Example

	flush := func() {
		if !cur.IsEmpty() {
			out = append(out, cur)
		}
		cur = domain.Example{}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case domain.TokenTuroyo:
			if !cur.IsEmpty() {
				flush()
			}
			cur.Turoyo = tok.Text
		case domain.TokenTranslation:
			cur.Translations = append(cur.Translations, stripQuotes(tok.Text))
		case domain.TokenReference:
			cur.References = append(cur.References, tok.Text)
		}
		cur.Tokens = append(cur.Tokens, tok)
	}
	flush()
	return out
}

// stripQuotes removes one enclosing quote pair. Token texts keep their
// quotes for losslessness; example fields hold the bare content.
func stripQuotes(s string) string {
	r := []rune(s)
	if len(r) >= 2 {
		if closer, ok := quoteClosers[r[0]]; ok && r[len(r)-1] == closer {
			return strings.TrimSpace(string(r[1 : len(r)-1]))
		}
	}
	return s
}

// mergeAcross joins an example that got only Turoyo text with a
// following one that got only translations. Story excerpts emit the
// Turoyo and its translation as separate paragraphs, which the base
// rule reads as two examples.
func (s *Segmenter) mergeAcross(examples []domain.Example) []domain.Example {
	out := examples[:0]
	for i := 0; i < len(examples); i++ {
		ex := examples[i]
		if ex.Turoyo != "" && len(ex.Translations) == 0 && i+1 < len(examples) {
			next := examples[i+1]
			if next.Turoyo == "" && len(next.Translations) > 0 {
				ex.Translations = append(ex.Translations, next.Translations...)
				ex.References = append(ex.References, next.References...)
				ex.Tokens = append(ex.Tokens, next.Tokens...)
				s.stats.MergedExamples++
				i++
			}
		}
		out = append(out, ex)
	}
	return out
}

// splitConcatenated recovers examples a single source paragraph ran
// together: the token pattern
//
//	Translation ";" ... Reference ";" substantial-content
//
// marks a boundary before the substantial content.
func (s *Segmenter) splitConcatenated(examples []domain.Example) []domain.Example {
	var out []domain.Example
	for _, ex := range examples {
		points := splitPoints(ex.Tokens)
		if len(points) == 0 {
			out = append(out, ex)
			continue
		}
		s.stats.SplitExamples += len(points)
		prev := 0
		for _, p := range append(points, len(ex.Tokens)) {
			if part := buildExample(ex.Tokens[prev:p]); !part.IsEmpty() {
				out = append(out, part)
			}
			prev = p
		}
	}
	return out
}

// maxBoundaryGap bounds how far a Reference may trail its Translation
// for the two to count as one example's tail.
const maxBoundaryGap = 10

func splitPoints(tokens []domain.Token) []int {
	var points []int
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i].Kind != domain.TokenTranslation || !isPunct(tokens[i+1], ";") {
			continue
		}
		for j := i + 2; j < len(tokens)-1 && j <= i+2+maxBoundaryGap; j++ {
			if tokens[j].Kind != domain.TokenReference || !isPunct(tokens[j+1], ";") {
				continue
			}
			if k := j + 2; k < len(tokens) && isSubstantial(tokens[k]) {
				points = append(points, k)
				i = k - 1
			}
			break
		}
	}
	return points
}

func isPunct(tok domain.Token, text string) bool {
	return tok.Kind == domain.TokenPunct && tok.Text == text
}

// isSubstantial reports whether a token can plausibly open a new
// example: any translation, or Turoyo text of real length (at least 5
// characters, 3 of them letters).
func isSubstantial(tok domain.Token) bool {
	switch tok.Kind {
	case domain.TokenTranslation:
		return true
	case domain.TokenTuroyo:
		runes := []rune(tok.Text)
		if len(runes) < 5 {
			return false
		}
		letters := 0
		for _, r := range runes {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		return letters >= 3
	}
	return false
}

// buildExample aggregates a token slice into one example without
// re-running the opening rule; the split points already guarantee one
// example per slice.
func buildExample(tokens []domain.Token) domain.Example {
	var ex domain.Example
	var turoyo []string
	for _, tok := range tokens {
		switch tok.Kind {
		case domain.TokenTuroyo:
			turoyo = append(turoyo, tok.Text)
		case domain.TokenTranslation:
			ex.Translations = append(ex.Translations, stripQuotes(tok.Text))
		case domain.TokenReference:
			ex.References = append(ex.References, tok.Text)
		}
		ex.Tokens = append(ex.Tokens, tok)
	}
	ex.Turoyo = strings.Join(turoyo, " ")
	return ex
}
