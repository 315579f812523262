package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// Export writes entries to w as a JSON array, one record per unique
// root/homonym pair. A nil slice exports as an empty array, never
// null, and the same holds for the list and mapping fields inside
// each entry.
func Export(w io.Writer, entries []domain.Entry, indent bool) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	for i := range entries {
		normalizeEntry(&entries[i])
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("export entries: %w", err)
	}
	return nil
}

// normalizeEntry replaces nil collections with empty ones. A
// cross-reference entry has no stems and a Turoyo-only example has no
// translations, but neither may serialize as null.
func normalizeEntry(e *domain.Entry) {
	if e.Stems == nil {
		e.Stems = []domain.Stem{}
	}
	for i := range e.Stems {
		s := &e.Stems[i]
		if s.Conjugations == nil {
			s.Conjugations = map[string][]domain.Example{}
		}
		for _, examples := range s.Conjugations {
			for j := range examples {
				if examples[j].Translations == nil {
					examples[j].Translations = []string{}
				}
				if examples[j].References == nil {
					examples[j].References = []string{}
				}
			}
		}
	}
}
