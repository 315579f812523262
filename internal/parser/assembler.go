package parser

import (
	"log/slog"
	"strings"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// namedStemLabels maps the western Aramaic stem abbreviations to the
// Roman numerals the glossary uses everywhere else.
var namedStemLabels = map[string]string{
	"Pa":  "II",
	"Af":  "III",
	"Št":  "IV",
	"Šaf": "IV",
}

// Assembler drives the classifier over a block stream, opens entries
// and stems, and routes tables into conjugation buckets. It holds no
// per-document state: each Assemble call owns its whole scan context,
// so one Assembler may serve concurrent document parses.
type Assembler struct {
	log *slog.Logger
}

func NewAssembler(log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{log: log}
}

// section is the scan's two-state machine. InIdiomSection suppresses
// root detection so idiom text with root-shaped Turoyo prefixes cannot
// open a bogus entry.
type section int

const (
	sectionDefault section = iota
	sectionIdioms
)

// scan is the per-document parse context. Owned exclusively by one
// Assemble call, never shared.
type scan struct {
	log        *slog.Logger
	stats      Stats
	classifier *Classifier
	tokenizer  *Tokenizer
	segmenter  *Segmenter
	idioms     *IdiomSegmenter

	entries []domain.Entry
	current *domain.Entry
	stemIdx int
	section section
	pending []domain.Paragraph
	skip    map[int]bool
}

// Assemble runs a single forward pass with one-block lookahead over
// the stream and returns the sealed entries plus scan statistics.
func (a *Assembler) Assemble(blocks []domain.Block) ([]domain.Entry, Stats) {
	sc := &scan{
		log:     a.log,
		stemIdx: -1,
		skip:    make(map[int]bool),
	}
	sc.classifier = NewClassifier(&sc.stats)
	sc.tokenizer = NewTokenizer(&sc.stats)
	sc.segmenter = NewSegmenter(&sc.stats)
	sc.idioms = NewIdiomSegmenter(&sc.stats)
	sc.stats.Blocks = len(blocks)

	for i := 0; i < len(blocks); i++ {
		if sc.skip[i] {
			continue
		}
		switch b := blocks[i].(type) {
		case domain.Paragraph:
			sc.paragraph(blocks, i, b)
		case domain.Table:
			sc.table(b)
		}
	}
	sc.seal()
	sc.stats.Entries = len(sc.entries)
	return sc.entries, sc.stats
}

func (sc *scan) paragraph(blocks []domain.Block, i int, p domain.Paragraph) {
	if p.IsEmpty() {
		return
	}
	next, nextIdx := nextNonEmpty(blocks, i+1, sc.skip)

	switch sc.classifier.Classify(p, next, sc.section == sectionIdioms) {
	case RoleLetterHeader:
		// Document-level marker, nothing downstream needs it.
	case RoleRootHeader:
		sc.openEntry(p, next, nextIdx)
	case RoleStemHeader:
		sc.openStem(blocks, i, p)
	default:
		sc.plainText(p)
	}
}

func (sc *scan) openEntry(p domain.Paragraph, next domain.Block, nextIdx int) {
	sc.seal()

	text := domain.NormalizeText(p.Text)
	root, rest, _ := matchRoot(text)
	entry := domain.Entry{Root: root}

	if strings.HasPrefix(rest, "?") || strings.Contains(text, "(?)") {
		entry.Uncertain = true
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "?"))
	}

	var nextText string
	if np, ok := next.(domain.Paragraph); ok {
		nextText = np.Text
	}
	etymology, usedNext := parseEtymology(rest, nextText, &sc.stats)
	entry.Etymology = etymology
	if usedNext && nextIdx >= 0 {
		sc.skip[nextIdx] = true
	}

	sc.current = &entry
	sc.log.Debug("opened entry", slog.String("root", root))
}

func (sc *scan) openStem(blocks []domain.Block, i int, p domain.Paragraph) {
	if sc.current == nil {
		sc.stats.DroppedStems++
		return
	}
	sc.section = sectionDefault

	text := domain.NormalizeText(p.Text)
	stem := domain.Stem{}
	special := false

	switch {
	case romanStemRe.MatchString(text):
		m := romanStemRe.FindStringSubmatch(text)
		stem.Label = m[1]
		rest := strings.TrimSpace(text[len(m[0]):])
		// A later (Detrans.) annotation retroactively reclassifies a
		// numbered stem.
		if strings.Contains(rest, "(Detrans") {
			stem.Label = "Detransitive"
		}
		stem.Forms = parseForms(rest)
		stem.Gloss = parenGloss(rest)
	case namedStemRe.MatchString(text):
		m := namedStemRe.FindStringSubmatch(text)
		stem.Label = namedStemLabels[m[1]]
		rest := strings.TrimSpace(text[len(m[0]):])
		stem.Forms = parseForms(rest)
		stem.Gloss = parenGloss(rest)
	case strings.HasPrefix(text, "Detransitive"):
		stem.Label = "Detransitive"
		rest := strings.TrimSpace(strings.TrimPrefix(text, "Detransitive"))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		stem.Forms = parseForms(rest)
		special = true
	case strings.HasPrefix(text, "Action Noun"):
		stem.Label = "Action Noun"
		special = true
	case strings.HasPrefix(text, "Infinitiv"):
		stem.Label = "Infinitiv"
		special = true
	default:
		// Implicit Stem I: the paragraph itself carries the forms.
		stem.Label = "I"
		stem.Forms = parseForms(text)
		stem.Gloss = parenGloss(text)
		sc.stats.ImplicitStems++
	}

	if special {
		sc.specialLookahead(blocks, i, &stem)
	}

	// A Detransitive stem that already exists for this entry is
	// reused, not duplicated.
	if stem.Label == "Detransitive" {
		if idx := sc.current.FindStem("Detransitive"); idx >= 0 {
			sc.current.Stems[idx].Forms = append(sc.current.Stems[idx].Forms, stem.Forms...)
			sc.stemIdx = idx
			return
		}
	}

	sc.current.Stems = append(sc.current.Stems, stem)
	sc.stemIdx = len(sc.current.Stems) - 1
}

// specialLookahead captures forms and a single gloss paragraph for the
// special stem labels, scanning up to 3 non-empty paragraphs ahead.
// Consumed paragraphs are skipped by the main loop.
func (sc *scan) specialLookahead(blocks []domain.Block, i int, stem *domain.Stem) {
	seen := 0
	for j := i + 1; j < len(blocks) && seen < 3; j++ {
		if sc.skip[j] {
			continue
		}
		p, ok := blocks[j].(domain.Paragraph)
		if !ok {
			return
		}
		text := domain.NormalizeText(p.Text)
		if text == "" {
			continue
		}
		if isExplicitStemText(text) || looksLikeRootHeader(p, text) {
			return
		}
		seen++

		if len(stem.Forms) == 0 && (strings.Contains(text, "/") || isTuroyoWord(text)) {
			if forms := parseForms(text); len(forms) > 0 {
				stem.Forms = forms
				sc.skip[j] = true
				continue
			}
		}
		if stem.Gloss == "" {
			stem.Gloss = text
			sc.skip[j] = true
			return
		}
	}
}

func looksLikeRootHeader(p domain.Paragraph, text string) bool {
	if _, _, ok := matchRoot(text); !ok {
		return false
	}
	return p.HasItalicRun() && p.HasRunSized(rootSizePt)
}

func (sc *scan) plainText(p domain.Paragraph) {
	text := domain.NormalizeText(p.Text)

	if sc.section != sectionIdioms {
		if root, target, ok := matchCrossReference(text); ok {
			sc.seal()
			entry := domain.Entry{Root: root, CrossReference: target}
			sc.current = &entry
			sc.stats.CrossReferences++
			return
		}
	}

	if isIdiomSectionLabel(text) {
		sc.section = sectionIdioms
	}
	sc.pending = append(sc.pending, p)
}

func (sc *scan) table(t domain.Table) {
	if sc.current == nil || sc.stemIdx < 0 {
		sc.stats.DroppedTables++
		return
	}
	if len(t.Rows) == 0 || len(t.Rows[0]) < 2 {
		sc.stats.DroppedTables++
		return
	}

	row := t.Rows[0]
	categories := canonicalCategories(cellText(row[0]), &sc.stats)
	if len(categories) == 0 {
		sc.stats.DroppedTables++
		return
	}

	tokens := make([][]domain.Token, 0, len(row[1].Paragraphs))
	for _, para := range row[1].Paragraphs {
		tokens = append(tokens, sc.tokenizer.TokenizeParagraph(para))
	}
	examples := sc.segmenter.SegmentCell(tokens)
	stem := &sc.current.Stems[sc.stemIdx]
	for _, cat := range categories {
		stem.AddExamples(cat, examples)
	}
}

// seal closes the open entry: the pending plain-text buffer becomes
// its idiom list and the entry joins the corpus.
func (sc *scan) seal() {
	if sc.current != nil {
		sc.current.Idioms = sc.idioms.Segment(sc.pending)
		sc.entries = append(sc.entries, *sc.current)
	}
	sc.pending = nil
	sc.current = nil
	sc.stemIdx = -1
	sc.section = sectionDefault
}

func nextNonEmpty(blocks []domain.Block, from int, skip map[int]bool) (domain.Block, int) {
	for i := from; i < len(blocks); i++ {
		if skip[i] {
			continue
		}
		if p, ok := blocks[i].(domain.Paragraph); ok && p.IsEmpty() {
			continue
		}
		return blocks[i], i
	}
	return nil, -1
}

func cellText(c domain.Cell) string {
	var parts []string
	for _, p := range c.Paragraphs {
		if t := domain.NormalizeText(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// parseForms reads slash-separated Turoyo forms from the text before
// any parenthesized gloss.
func parseForms(text string) []string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, "(;"); i >= 0 {
		text = text[:i]
	}
	var forms []string
	for _, f := range strings.Split(text, "/") {
		f = strings.Trim(f, " ,.–-")
		if f != "" && isTuroyoWord(f) {
			forms = append(forms, f)
		}
	}
	return forms
}

// isTuroyoWord reports whether every rune of s belongs to the Turoyo
// alphabet (spaces and hyphens aside).
func isTuroyoWord(s string) bool {
	letters := 0
	for _, r := range s {
		if r == ' ' || r == '-' || r == '\'' {
			continue
		}
		if !isTuroyoRune(r) {
			return false
		}
		letters++
	}
	return letters > 0
}

// parenGloss extracts the first parenthesized span as a gloss.
func parenGloss(text string) string {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return ""
	}
	closeIdx := scanBalanced(text, open)
	if closeIdx < 0 {
		return ""
	}
	gloss := strings.TrimSpace(text[open+1 : closeIdx])
	if strings.HasPrefix(gloss, "Detrans") {
		return ""
	}
	return gloss
}
