package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// Role labels the structural function of one document block.
type Role int

const (
	RolePlainText Role = iota
	RoleLetterHeader
	RoleRootHeader
	RoleStemHeader
)

func (r Role) String() string {
	switch r {
	case RoleLetterHeader:
		return "letter_header"
	case RoleRootHeader:
		return "root_header"
	case RoleStemHeader:
		return "stem_header"
	default:
		return "plain_text"
	}
}

// rootSizePt is the point size root headers carry in well-formed
// documents.
const rootSizePt = 11

var (
	// Explicit stem markers: a Roman numeral or one of the western
	// Aramaic stem abbreviations, followed by a colon.
	romanStemRe = regexp.MustCompile(`^(VIII|VII|VI|IX|IV|V|III|II|I|X)\s*:`)
	namedStemRe = regexp.MustCompile(`^(Pa|Af|Št|Šaf)\.\s*:`)

	seeTargetRe = regexp.MustCompile(`(?i)^see\s+(\S.*)$`)
)

// Classifier labels incoming blocks using style heuristics plus
// one-block lookahead. It never fails: anything unrecognized is
// PlainText and ends up in the idiom buffer.
type Classifier struct {
	stats *Stats
}

func NewClassifier(stats *Stats) *Classifier {
	return &Classifier{stats: stats}
}

// Classify labels one paragraph. next is the next non-empty block (nil
// at end of stream); inIdioms suppresses root detection inside an
// idiomatic-phrases section.
func (c *Classifier) Classify(p domain.Paragraph, next domain.Block, inIdioms bool) Role {
	text := domain.NormalizeText(p.Text)
	if text == "" {
		return RolePlainText
	}
	if isLetterHeader(text) {
		return RoleLetterHeader
	}
	if isExplicitStemText(text) {
		return RoleStemHeader
	}
	if c.isRootHeader(p, text, next, inIdioms) {
		return RoleRootHeader
	}
	if isImplicitStem(p, text, next) {
		return RoleStemHeader
	}
	return RolePlainText
}

// isLetterHeader reports whether text is a document-level section
// marker: exactly one Turoyo letter, combining marks aside.
func isLetterHeader(text string) bool {
	letters := 0
	for _, r := range text {
		if !isTuroyoRune(r) {
			return false
		}
		if !unicode.Is(unicode.Mn, r) {
			letters++
		}
	}
	return letters == 1
}

// isExplicitStemText reports whether text begins with an explicit stem
// marker.
func isExplicitStemText(text string) bool {
	if romanStemRe.MatchString(text) || namedStemRe.MatchString(text) {
		return true
	}
	return strings.HasPrefix(text, "Detransitive") ||
		strings.HasPrefix(text, "Action Noun") ||
		strings.HasPrefix(text, "Infinitiv")
}

// isImplicitStem covers stem headers that omit the numeral: a paragraph
// directly followed by a table, opening with italic Turoyo-looking
// text, is read as Stem I.
func isImplicitStem(p domain.Paragraph, text string, next domain.Block) bool {
	if _, isTable := next.(domain.Table); !isTable {
		return false
	}
	if !p.LeadingItalic() {
		return false
	}
	first := text
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	return looksTuroyo(first) || looksTuroyo(text)
}

func (c *Classifier) isRootHeader(p domain.Paragraph, text string, next domain.Block, inIdioms bool) bool {
	_, rest, ok := matchRoot(text)
	if !ok {
		return false
	}
	if strings.HasPrefix(rest, "→") || seeTargetRe.MatchString(rest) {
		return false
	}

	// Full root styling always wins: the next entry's header is what
	// terminates an idiomatic-phrases section.
	if p.HasItalicRun() && p.HasRunSized(rootSizePt) {
		return true
	}
	// Inside an idioms section nothing weaker may open an entry, or
	// idiom text with a root-shaped Turoyo prefix becomes a bogus
	// root.
	if inIdioms {
		return false
	}
	if hasStyleInfo(p) {
		// Style metadata is present but does not look like a root
		// header. Trust it.
		return false
	}

	// No style metadata at all: accept only with structural evidence,
	// so entries survive documents with stripped formatting without
	// idiom text being promoted to roots.
	nextPara, isPara := next.(domain.Paragraph)
	if !isPara || !isExplicitStemText(domain.NormalizeText(nextPara.Text)) {
		return false
	}
	if hasEtymologyEvidence(rest) {
		c.stats.ContextualRoots++
		return true
	}
	return false
}

func hasStyleInfo(p domain.Paragraph) bool {
	for _, r := range p.Runs {
		if r.Italic != nil || r.SizePt != nil {
			return true
		}
	}
	return false
}

// hasEtymologyEvidence checks the header's trailing text for an
// etymology marker, or failing that for enough parenthesized material
// to make a bare root plausible.
func hasEtymologyEvidence(rest string) bool {
	if strings.Contains(rest, "(<") || strings.Contains(rest, "( <") ||
		strings.Contains(rest, "(denom") {
		return true
	}
	open := strings.IndexByte(rest, '(')
	return open >= 0 && strings.IndexByte(rest[open:], ')') > 0 &&
		len([]rune(rest)) >= 10
}

// matchCrossReference reads a "root → target" or "root see target"
// header. Such headers open an entry holding only the cross-reference.
func matchCrossReference(text string) (root, target string, ok bool) {
	root, rest, ok := matchRoot(domain.NormalizeText(text))
	if !ok {
		return "", "", false
	}
	if after, found := strings.CutPrefix(rest, "→"); found {
		target = strings.TrimSpace(after)
		return root, target, target != ""
	}
	if m := seeTargetRe.FindStringSubmatch(rest); m != nil {
		return root, strings.TrimSpace(m[1]), true
	}
	return "", "", false
}
