package domain

// Run is a contiguous span of paragraph text sharing one style. Style
// fields are tri-state: nil means the source carried no flag at all,
// which is common in documents with stripped formatting.
type Run struct {
	Text   string   `json:"text"`
	Italic *bool    `json:"italic,omitempty"`
	Bold   *bool    `json:"bold,omitempty"`
	SizePt *float64 `json:"size_pt,omitempty"`
}

// Paragraph is a block of running text with optional run-level styles.
// Text always holds the full paragraph text; Runs, when present, cover
// the same text split by style.
type Paragraph struct {
	Text string `json:"text"`
	Runs []Run  `json:"runs,omitempty"`
}

// Cell is a single table cell, itself a sequence of paragraphs.
type Cell struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Table is a grid of cells. The first row of a glossary table holds
// [category-label-cell, content-cell].
type Table struct {
	Rows [][]Cell `json:"rows"`
}

// Block is one unit of the pre-materialized document stream: either a
// Paragraph or a Table. The document-container adapter producing the
// stream is external to this module.
type Block interface {
	isBlock()
}

func (Paragraph) isBlock() {}
func (Table) isBlock()     {}

// IsEmpty reports whether the paragraph contains no visible text.
func (p Paragraph) IsEmpty() bool {
	return NormalizeText(p.Text) == ""
}

// HasItalicRun reports whether any run is explicitly flagged italic.
func (p Paragraph) HasItalicRun() bool {
	for _, r := range p.Runs {
		if r.Italic != nil && *r.Italic {
			return true
		}
	}
	return false
}

// HasStyledRuns reports whether any run carries an explicit italic flag,
// true or false. When no run does, style-based classification is
// impossible and heuristics take over.
func (p Paragraph) HasStyledRuns() bool {
	for _, r := range p.Runs {
		if r.Italic != nil {
			return true
		}
	}
	return false
}

// HasRunSized reports whether any run is set to the given point size.
func (p Paragraph) HasRunSized(pt float64) bool {
	for _, r := range p.Runs {
		if r.SizePt != nil && *r.SizePt == pt {
			return true
		}
	}
	return false
}

// LeadingItalic reports whether the first non-empty run is flagged
// italic. Used for the implicit Stem I inference.
func (p Paragraph) LeadingItalic() bool {
	for _, r := range p.Runs {
		if NormalizeText(r.Text) == "" {
			continue
		}
		return r.Italic != nil && *r.Italic
	}
	return false
}
