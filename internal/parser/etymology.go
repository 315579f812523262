package parser

import (
	"regexp"
	"strings"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// etymologyMatch is the outcome of one matching strategy: the isolated
// etymology text (enclosing parentheses stripped) and whether the
// continuation paragraph was consumed.
type etymologyMatch struct {
	inner    string
	usedNext bool
	repaired bool
}

// etymologyStrategy isolates the etymology substring of a root header.
// Strategies run in declaration order; each later one exists because
// some stretch of the source is not well-formed enough for the
// previous one.
type etymologyStrategy interface {
	tryMatch(text, next string) (etymologyMatch, bool)
}

var etymologyStrategies = []etymologyStrategy{
	parenAngle{},
	parenSpacedAngle{},
	bareAngle{},
	bareCf{},
	corpusRef{},
	denomMarker{},
	genericMarker{},
	continuation{},
}

// parseEtymology extracts zero or more etymons from a root header's
// trailing text. next is the following paragraph's text; the reported
// bool says whether it was consumed, in which case the caller skips
// that block.
func parseEtymology(text, next string, stats *Stats) (*domain.Etymology, bool) {
	text = domain.NormalizeText(text)
	next = domain.NormalizeText(next)

	for _, s := range etymologyStrategies {
		m, ok := s.tryMatch(text, next)
		if !ok {
			continue
		}
		inner := strings.TrimSpace(m.inner)
		inner = strings.TrimSpace(strings.TrimPrefix(inner, "<"))
		if inner == "" {
			return nil, false
		}
		if m.repaired {
			stats.RepairedEtymologies++
		} else if m.usedNext {
			stats.ContinuedEtymologies++
		}

		parts, rel := splitEtymons(inner)
		etymons := make([]domain.Etymon, 0, len(parts))
		for _, p := range parts {
			if et := parseEtymon(p); !et.IsZero() {
				etymons = append(etymons, et)
			}
		}
		if len(etymons) == 0 {
			return nil, false
		}
		return &domain.Etymology{Etymons: etymons, Relationship: rel}, m.usedNext
	}
	return nil, false
}

// splitEtymons breaks the isolated etymology text into cognate parts.
// Only " also " and the "; and "/", and " conjunctions separate
// etymons. " or " never does: it occurs inside ordinary glosses
// ("a field, plain, or wide expanse") and splitting there corrupts the
// meaning field.
func splitEtymons(inner string) ([]string, string) {
	if parts := strings.Split(inner, " also "); len(parts) > 1 {
		return trimAll(parts), "also"
	}
	for _, sep := range []string{"; and ", ", and "} {
		if parts := strings.Split(inner, sep); len(parts) > 1 {
			return trimAll(parts), "and"
		}
	}
	return []string{strings.TrimSpace(inner)}, ""
}

func trimAll(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// scanBalanced returns the byte index of the parenthesis closing the
// one at open, or -1. Depth counting survives nested parens inside the
// etymology, such as a parenthesized stem marker.
func scanBalanced(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// truncatedListRe matches an extracted etymology that broke off at a
// numbered-list marker, the documented failure mode of the source
// typesetting: "... 1) to crush," closes the paren at the list marker.
var truncatedListRe = regexp.MustCompile(`\.\s*\d{1,2}$`)

// repairTruncated splices text with the next paragraph when the
// balanced close was actually an accidental nested close. The last ')'
// of the spliced text is then the true boundary.
func repairTruncated(text, next string, open, closeIdx int, inner string) (etymologyMatch, bool) {
	if next == "" || !truncatedListRe.MatchString(inner) {
		return etymologyMatch{}, false
	}
	trailing := strings.TrimSpace(text[closeIdx+1:])
	if !strings.HasSuffix(trailing, ",") {
		return etymologyMatch{}, false
	}
	if !strings.HasSuffix(next, ")") {
		return etymologyMatch{}, false
	}
	spliced := text + " " + next
	last := strings.LastIndexByte(spliced, ')')
	if last <= open {
		return etymologyMatch{}, false
	}
	return etymologyMatch{inner: spliced[open+1 : last], usedNext: true, repaired: true}, true
}

// parenAngle handles the canonical form: "root (< Source ...)" with a
// balanced close, including the malformed-parenthesis repair.
type parenAngle struct{}

func (parenAngle) tryMatch(text, next string) (etymologyMatch, bool) {
	open := strings.Index(text, "(<")
	if open < 0 {
		return etymologyMatch{}, false
	}
	closeIdx := scanBalanced(text, open)
	if closeIdx < 0 {
		return etymologyMatch{}, false
	}
	inner := text[open+1 : closeIdx]
	if m, ok := repairTruncated(text, next, open, closeIdx, inner); ok {
		return m, true
	}
	return etymologyMatch{inner: inner}, true
}

// parenSpacedAngle tolerates a space before the angle: "( <Source ...)".
type parenSpacedAngle struct{}

func (parenSpacedAngle) tryMatch(text, next string) (etymologyMatch, bool) {
	open := strings.Index(text, "( <")
	if open < 0 {
		return etymologyMatch{}, false
	}
	closeIdx := scanBalanced(text, open)
	if closeIdx < 0 {
		return etymologyMatch{}, false
	}
	inner := text[open+1 : closeIdx]
	if m, ok := repairTruncated(text, next, open, closeIdx, inner); ok {
		return m, true
	}
	return etymologyMatch{inner: inner}, true
}

// angleSourceRe finds "<Source" with no opening paren in sight.
var angleSourceRe = regexp.MustCompile(`<\s*\p{Lu}`)

// bareAngle handles headers that lost their opening paren entirely.
// The close is located heuristically: first ')' after the "<Source"
// token, or end of text.
type bareAngle struct{}

func (bareAngle) tryMatch(text, next string) (etymologyMatch, bool) {
	loc := angleSourceRe.FindStringIndex(text)
	if loc == nil {
		return etymologyMatch{}, false
	}
	// A paren right before the angle belongs to the paren strategies.
	for i := loc[0] - 1; i >= 0; i-- {
		if text[i] == ' ' {
			continue
		}
		if text[i] == '(' {
			return etymologyMatch{}, false
		}
		break
	}
	seg := text[loc[0]:]
	if closeIdx := strings.IndexByte(seg, ')'); closeIdx >= 0 {
		seg = seg[:closeIdx]
	}
	return etymologyMatch{inner: seg}, true
}

// bareCf handles "cf. ..." with no "<" at all.
type bareCf struct{}

func (bareCf) tryMatch(text, next string) (etymologyMatch, bool) {
	idx := strings.Index(text, "cf. ")
	if idx < 0 || strings.Contains(text, "<") {
		return etymologyMatch{}, false
	}
	seg := strings.TrimSpace(text[idx:])
	seg = strings.TrimSuffix(seg, ")")
	return etymologyMatch{inner: seg}, true
}

// corpusTextRe matches a corpus/text reference: "(PrtS text 25/96)".
var corpusTextRe = regexp.MustCompile(`\(([\p{Lu}][\p{L}\d.]*\s+text\b[^)]*)\)`)

type corpusRef struct{}

func (corpusRef) tryMatch(text, next string) (etymologyMatch, bool) {
	m := corpusTextRe.FindStringSubmatch(text)
	if m == nil {
		return etymologyMatch{}, false
	}
	return etymologyMatch{inner: m[1]}, true
}

// denomMarker handles denominal verbs: "(denom. < ...)".
type denomMarker struct{}

func (denomMarker) tryMatch(text, next string) (etymologyMatch, bool) {
	open := strings.Index(text, "(denom")
	if open < 0 {
		return etymologyMatch{}, false
	}
	closeIdx := scanBalanced(text, open)
	if closeIdx < 0 {
		closeIdx = len(text)
	}
	return etymologyMatch{inner: text[open+1 : closeIdx]}, true
}

// genericRe matches the remaining marker forms: "(see ...)",
// "(cf. ...)", "(unknown ...)". No \b after "cf.": the dot is a
// non-word character, so a boundary there can never precede a space.
var genericRe = regexp.MustCompile(`\((see\b|cf\.|unknown\b)[^)]*`)

type genericMarker struct{}

func (genericMarker) tryMatch(text, next string) (etymologyMatch, bool) {
	loc := genericRe.FindStringIndex(text)
	if loc == nil {
		return etymologyMatch{}, false
	}
	seg := text[loc[0]+1 : loc[1]]
	return etymologyMatch{inner: seg}, true
}

// continuation closes an unmatched "(<" using the first ')' of the
// next paragraph.
type continuation struct{}

func (continuation) tryMatch(text, next string) (etymologyMatch, bool) {
	open := strings.Index(text, "(<")
	if open < 0 {
		open = strings.Index(text, "( <")
	}
	if open < 0 || scanBalanced(text, open) >= 0 {
		return etymologyMatch{}, false
	}
	head := text[open+1:]
	if next == "" {
		return etymologyMatch{inner: head}, true
	}
	tail := next
	usedNext := true
	if closeIdx := strings.IndexByte(next, ')'); closeIdx >= 0 {
		tail = next[:closeIdx]
	}
	return etymologyMatch{inner: head + " " + tail, usedNext: usedNext}, true
}
