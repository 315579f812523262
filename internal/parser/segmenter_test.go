package parser

import (
	"reflect"
	"testing"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

func tok(kind domain.TokenKind, text string) domain.Token {
	return domain.Token{Kind: kind, Text: text}
}

func TestSegmentBase(t *testing.T) {
	var stats Stats
	s := NewSegmenter(&stats)

	tokens := []domain.Token{
		tok(domain.TokenTuroyo, "ʕbədle u ʕwodo"),
		tok(domain.TokenTranslation, "ʻer hat die Arbeit gemachtʼ"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenReference, "53/54"),
		tok(domain.TokenTuroyo, "ʕamle mede"),
		tok(domain.TokenTranslation, "ʻer machte etwasʼ"),
	}

	got := s.Segment(tokens)
	if len(got) != 2 {
		t.Fatalf("got %d examples, want 2", len(got))
	}
	if got[0].Turoyo != "ʕbədle u ʕwodo" {
		t.Errorf("first Turoyo = %q", got[0].Turoyo)
	}
	if want := []string{"er hat die Arbeit gemacht"}; !reflect.DeepEqual(got[0].Translations, want) {
		t.Errorf("first Translations = %v, want %v", got[0].Translations, want)
	}
	if want := []string{"53/54"}; !reflect.DeepEqual(got[0].References, want) {
		t.Errorf("first References = %v, want %v", got[0].References, want)
	}
	if got[1].Turoyo != "ʕamle mede" {
		t.Errorf("second Turoyo = %q", got[1].Turoyo)
	}
	if len(got[0].Tokens) != 4 || len(got[1].Tokens) != 2 {
		t.Errorf("token retention broken: %d, %d", len(got[0].Tokens), len(got[1].Tokens))
	}
}

func TestSegmentTranslationOnly(t *testing.T) {
	var stats Stats
	got := NewSegmenter(&stats).Segment([]domain.Token{
		tok(domain.TokenTranslation, "ʻhello worldʼ"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenReference, "12"),
		tok(domain.TokenPunct, ";"),
	})

	if len(got) != 1 {
		t.Fatalf("got %d examples, want 1", len(got))
	}
	ex := got[0]
	if ex.Turoyo != "" {
		t.Errorf("Turoyo = %q, want empty", ex.Turoyo)
	}
	if want := []string{"hello world"}; !reflect.DeepEqual(ex.Translations, want) {
		t.Errorf("Translations = %v, want %v", ex.Translations, want)
	}
	if want := []string{"12"}; !reflect.DeepEqual(ex.References, want) {
		t.Errorf("References = %v, want %v", ex.References, want)
	}
}

// Story excerpts put the Turoyo phrase and its translation in separate
// cell paragraphs; the merge pass reunites them.
func TestSegmentCellMergesAcrossParagraphs(t *testing.T) {
	var stats Stats
	s := NewSegmenter(&stats)

	got := s.SegmentCell([][]domain.Token{
		{tok(domain.TokenTuroyo, "ʕbədle u ʕwodo")},
		{tok(domain.TokenTranslation, "ʻer tat esʼ"), tok(domain.TokenReference, "15")},
	})

	if len(got) != 1 {
		t.Fatalf("got %d examples, want 1 merged", len(got))
	}
	ex := got[0]
	if ex.Turoyo != "ʕbədle u ʕwodo" {
		t.Errorf("Turoyo = %q", ex.Turoyo)
	}
	if want := []string{"er tat es"}; !reflect.DeepEqual(ex.Translations, want) {
		t.Errorf("Translations = %v, want %v", ex.Translations, want)
	}
	if want := []string{"15"}; !reflect.DeepEqual(ex.References, want) {
		t.Errorf("References = %v, want %v", ex.References, want)
	}
	if stats.MergedExamples != 1 {
		t.Errorf("MergedExamples = %d, want 1", stats.MergedExamples)
	}
}

func TestSegmentCellNoMergeWhenTranslated(t *testing.T) {
	var stats Stats
	s := NewSegmenter(&stats)

	got := s.SegmentCell([][]domain.Token{
		{tok(domain.TokenTuroyo, "ʕbədle"), tok(domain.TokenTranslation, "ʻhe didʼ")},
		{tok(domain.TokenTranslation, "ʻstray glossʼ")},
	})

	if len(got) != 2 {
		t.Fatalf("got %d examples, want 2", len(got))
	}
	if stats.MergedExamples != 0 {
		t.Errorf("MergedExamples = %d, want 0", stats.MergedExamples)
	}
}

// A translation, its trailing reference and then substantial new content
// inside one paragraph means two examples got run together.
func TestSegmentSplitsConcatenated(t *testing.T) {
	var stats Stats
	s := NewSegmenter(&stats)

	got := s.Segment([]domain.Token{
		tok(domain.TokenTuroyo, "ʕbədle u ʕwodo"),
		tok(domain.TokenTranslation, "ʻer tat die Arbeitʼ"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenReference, "53/54"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenTranslation, "ʻer machte etwas anderesʼ"),
		tok(domain.TokenReference, "60"),
	})

	if len(got) != 2 {
		t.Fatalf("got %d examples, want 2 after split", len(got))
	}
	if stats.SplitExamples != 1 {
		t.Errorf("SplitExamples = %d, want 1", stats.SplitExamples)
	}
	if got[0].Turoyo != "ʕbədle u ʕwodo" || got[1].Turoyo != "" {
		t.Errorf("split roots = %q, %q", got[0].Turoyo, got[1].Turoyo)
	}
	if want := []string{"er tat die Arbeit"}; !reflect.DeepEqual(got[0].Translations, want) {
		t.Errorf("first Translations = %v, want %v", got[0].Translations, want)
	}
	if want := []string{"53/54"}; !reflect.DeepEqual(got[0].References, want) {
		t.Errorf("first References = %v, want %v", got[0].References, want)
	}
	if want := []string{"er machte etwas anderes"}; !reflect.DeepEqual(got[1].Translations, want) {
		t.Errorf("second Translations = %v, want %v", got[1].Translations, want)
	}
	if want := []string{"60"}; !reflect.DeepEqual(got[1].References, want) {
		t.Errorf("second References = %v, want %v", got[1].References, want)
	}
}

func TestSegmentNoSplitOnShortTuroyo(t *testing.T) {
	var stats Stats
	s := NewSegmenter(&stats)

	got := s.Segment([]domain.Token{
		tok(domain.TokenTuroyo, "ʕbədle u ʕwodo"),
		tok(domain.TokenTranslation, "ʻer tat die Arbeitʼ"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenReference, "53/54"),
		tok(domain.TokenPunct, ";"),
		tok(domain.TokenTuroyo, "ʕbd"),
	})

	if len(got) != 2 {
		// "ʕbd" still opens a second example via the base rule; the
		// point is that no split fires on top of it.
		t.Fatalf("got %d examples, want 2", len(got))
	}
	if stats.SplitExamples != 0 {
		t.Errorf("SplitExamples = %d, want 0", stats.SplitExamples)
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ʻhello worldʼ", "hello world"},
		{"‘dort’", "dort"},
		{"\"so\"", "so"},
		{"no quotes", "no quotes"},
		{"ʻunbalanced", "ʻunbalanced"},
		{"ʼreversedʻ", "ʼreversedʻ"},
	}
	for _, tt := range tests {
		if got := stripQuotes(tt.in); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
