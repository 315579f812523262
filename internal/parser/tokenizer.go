package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// quoteClosers maps each supported opening quote to its closer: the
// Semitist modifier-letter pair, curly single and double quotes, and
// the two straight forms.
var quoteClosers = map[rune]rune{
	'ʻ':  'ʼ',
	'‘':  '’',
	'“':  '”',
	'"':  '"',
	'\'': '\'',
}

// apostropheRunes are quote characters that double as word-internal
// apostrophes ("mother's", "p'erçiqandin"). Flanked by letters on both
// sides they are never quote delimiters.
var apostropheRunes = map[rune]bool{
	'\'': true,
	'’':  true,
	'ʼ':  true,
}

var punctRunes = map[rune]bool{
	';': true, ',': true, ':': true, '(': true, ')': true,
}

// styledText is a paragraph flattened to runes with a parallel per-rune
// italic tri-state, so free text can be split at style boundaries.
type styledText struct {
	runes  []rune
	italic []*bool
}

func newStyledText(p domain.Paragraph) styledText {
	var st styledText
	if len(p.Runs) == 0 {
		st.runes = []rune(norm.NFC.String(p.Text))
		st.italic = make([]*bool, len(st.runes))
		return st
	}
	for _, run := range p.Runs {
		for _, r := range norm.NFC.String(run.Text) {
			st.runes = append(st.runes, r)
			st.italic = append(st.italic, run.Italic)
		}
	}
	return st
}

// Tokenizer turns table-cell text into ordered token lists. It never
// fails: unbalanced quotes and brackets degrade to literal punctuation
// instead of consuming the rest of the cell.
type Tokenizer struct {
	stats *Stats
}

func NewTokenizer(stats *Stats) *Tokenizer {
	return &Tokenizer{stats: stats}
}

// TokenizeCell tokenizes every paragraph of a cell in order.
func (t *Tokenizer) TokenizeCell(cell domain.Cell) []domain.Token {
	var tokens []domain.Token
	for _, p := range cell.Paragraphs {
		tokens = append(tokens, t.TokenizeParagraph(p)...)
	}
	return tokens
}

// TokenizeParagraph scans one paragraph into tokens. Concatenating the
// token texts reproduces the paragraph text up to whitespace.
func (t *Tokenizer) TokenizeParagraph(p domain.Paragraph) []domain.Token {
	st := newStyledText(p)
	var tokens []domain.Token

	freeStart := -1
	flush := func(end int) {
		if freeStart >= 0 {
			tokens = t.emitFreeText(st, freeStart, end, tokens)
			freeStart = -1
		}
	}

	i := 0
	for i < len(st.runes) {
		r := st.runes[i]

		// Numbered-list markers split the paragraph into independent
		// example streams; the marker itself stays as punctuation.
		if n := listMarkerLen(st.runes, i); n > 0 {
			flush(i)
			tokens = append(tokens, domain.Token{Kind: domain.TokenPunct, Text: string(st.runes[i : i+n])})
			i += n
			continue
		}

		if closer, isQuote := quoteClosers[r]; isQuote && !(apostropheRunes[r] && letterFlanked(st.runes, i)) {
			if end := scanQuote(st.runes, i, closer); end >= 0 {
				flush(i)
				tokens = append(tokens, domain.Token{
					Kind: domain.TokenTranslation,
					Text: string(st.runes[i : end+1]),
				})
				i = end + 1
				continue
			}
			// No balanced close in this paragraph: a literal quote
			// character, not a span.
			flush(i)
			tokens = append(tokens, domain.Token{Kind: domain.TokenPunct, Text: string(r)})
			i++
			continue
		}

		if r == '[' {
			if end := indexRune(st.runes, i+1, ']'); end >= 0 {
				flush(i)
				tokens = append(tokens, domain.Token{
					Kind: domain.TokenNote,
					Text: string(st.runes[i : end+1]),
				})
				i = end + 1
				continue
			}
			flush(i)
			tokens = append(tokens, domain.Token{Kind: domain.TokenPunct, Text: string(r)})
			i++
			continue
		}

		if punctRunes[r] {
			flush(i)
			tokens = append(tokens, domain.Token{Kind: domain.TokenPunct, Text: string(r)})
			i++
			continue
		}

		if freeStart < 0 && !unicode.IsSpace(r) {
			freeStart = i
		}
		i++
	}
	flush(len(st.runes))
	return tokens
}

// scanQuote finds the closer matching the opening quote at open, using
// depth counting (re-opening the same quote character nests) and the
// apostrophe exclusion. Returns -1 when unbalanced.
func scanQuote(runes []rune, open int, closer rune) int {
	opener := runes[open]
	depth := 1
	for i := open + 1; i < len(runes); i++ {
		r := runes[i]
		if r == closer {
			if apostropheRunes[r] && letterFlanked(runes, i) {
				continue
			}
			depth--
			if depth == 0 {
				return i
			}
			continue
		}
		if r == opener && opener != closer {
			depth++
		}
	}
	return -1
}

func letterFlanked(runes []rune, i int) bool {
	return i > 0 && i+1 < len(runes) &&
		unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}

func indexRune(runes []rune, from int, want rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == want {
			return i
		}
	}
	return -1
}

// listMarkerLen reports the rune length of a numbered-list marker
// ("1) ", "12) ") starting at i, or 0.
func listMarkerLen(runes []rune, i int) int {
	if i > 0 && !unicode.IsSpace(runes[i-1]) {
		return 0
	}
	j := i
	for j < len(runes) && j-i < 2 && unicode.IsDigit(runes[j]) {
		j++
	}
	if j == i || j >= len(runes) || runes[j] != ')' {
		return 0
	}
	if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
		return 0
	}
	return j - i + 1
}

// Reference patterns in specificity order.
var refPatterns = []*regexp.Regexp{
	// Cross-reference with trailing abbreviation and number:
	// "+ Mödi ʕbd.2".
	regexp.MustCompile(`\+\s*\p{Lu}[\p{L}' ]*?\s\p{Ll}+\.\s*\d+[a-z]?`),
	// Lowercase siglum: "ib. 53/54".
	regexp.MustCompile(`\p{Ll}+\.\s*\d+(?:/\d+)*`),
	// Uppercase siglum: "EL 20", "KED 107".
	regexp.MustCompile(`\p{Lu}{1,3}\s?\d+(?:/\d+)*`),
	// Bare page or section numbers: "12", "53/54".
	regexp.MustCompile(`\d+(?:/\d+)*`),
}

// emitFreeText flushes a free-text range: split at italic-state
// boundaries, then extract references and classify the remainder.
func (t *Tokenizer) emitFreeText(st styledText, start, end int, tokens []domain.Token) []domain.Token {
	groupStart := start
	var groupItalic *bool
	haveGroup := false

	flushGroup := func(upto int) {
		chunk := strings.TrimSpace(string(st.runes[groupStart:upto]))
		if chunk != "" {
			tokens = t.emitChunk(chunk, groupItalic, tokens)
		}
	}

	for i := start; i < end; i++ {
		if unicode.IsSpace(st.runes[i]) {
			continue
		}
		if !haveGroup {
			groupItalic = st.italic[i]
			haveGroup = true
			continue
		}
		if !sameTriState(groupItalic, st.italic[i]) {
			flushGroup(i)
			groupStart = i
			groupItalic = st.italic[i]
		}
	}
	if haveGroup {
		flushGroup(end)
	}
	return tokens
}

func sameTriState(a, b *bool) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	return *a == *b
}

// emitChunk extracts reference spans from one free-text chunk and
// classifies what is left as Turoyo or Translation.
func (t *Tokenizer) emitChunk(chunk string, italic *bool, tokens []domain.Token) []domain.Token {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return tokens
	}

	for _, re := range refPatterns {
		loc := re.FindStringIndex(chunk)
		if loc == nil {
			continue
		}
		pre, ref, post := chunk[:loc[0]], chunk[loc[0]:loc[1]], chunk[loc[1]:]
		tokens = t.emitChunk(pre, italic, tokens)
		tokens = append(tokens, domain.Token{Kind: domain.TokenReference, Text: strings.TrimSpace(ref)})
		return t.emitChunk(post, italic, tokens)
	}

	if italic == nil {
		t.stats.HeuristicTexts++
	}
	return append(tokens, domain.Token{Kind: classifyText(chunk, italic), Text: chunk})
}
