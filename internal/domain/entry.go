package domain

// Example is one conjugation example: a Turoyo phrase with its
// translations and source references. Tokens retains the full token
// stream for re-segmentation and debugging.
type Example struct {
	Turoyo       string   `json:"turoyo"`
	Translations []string `json:"translations"`
	References   []string `json:"references"`
	Tokens       []Token  `json:"tokens,omitempty"`
}

// IsEmpty reports whether the example carries no content at all.
func (e Example) IsEmpty() bool {
	return e.Turoyo == "" && len(e.Translations) == 0 && len(e.References) == 0
}

// Etymon is one source-language cognate record. At least one field is
// populated; Raw is the fallback when no structural pattern matched.
type Etymon struct {
	Source     string `json:"source,omitempty"`
	SourceRoot string `json:"source_root,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Meaning    string `json:"meaning,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Raw        string `json:"raw,omitempty"`
}

// IsZero reports whether no field of the etymon is populated.
func (e Etymon) IsZero() bool {
	return e == Etymon{}
}

// Etymology is the ordered list of etymons extracted from a root
// header. Relationship is set only when the header explicitly used a
// conjunction ("also", "and") between truly distinct cognates; "or"
// inside the text is never treated as a separator.
type Etymology struct {
	Etymons      []Etymon `json:"etymons"`
	Relationship string   `json:"relationship,omitempty"`
}

// Stem is one derivational form of a root: a Roman numeral label or one
// of the special labels ("Detransitive", "Action Noun", "Infinitiv").
// Conjugations maps canonical category names to example lists.
type Stem struct {
	Label        string               `json:"label"`
	Forms        []string             `json:"forms,omitempty"`
	Gloss        string               `json:"gloss,omitempty"`
	Conjugations map[string][]Example `json:"conjugations"`
}

// AddExamples appends examples to the named conjugation category,
// creating the bucket on first use.
func (s *Stem) AddExamples(category string, examples []Example) {
	if len(examples) == 0 {
		return
	}
	if s.Conjugations == nil {
		s.Conjugations = make(map[string][]Example)
	}
	s.Conjugations[category] = append(s.Conjugations[category], examples...)
}

// Entry is one dictionary entry: a verb root with its etymology, stems
// and trailing idiomatic phrases.
type Entry struct {
	Root           string     `json:"root"`
	HomonymIndex   int        `json:"homonym_index,omitempty"`
	Etymology      *Etymology `json:"etymology,omitempty"`
	CrossReference string     `json:"cross_reference,omitempty"`
	Stems          []Stem     `json:"stems"`
	Idioms         []string   `json:"idioms,omitempty"`
	Uncertain      bool       `json:"uncertain"`
}

// FindStem returns the index of the stem with the given label, or -1.
func (e *Entry) FindStem(label string) int {
	for i := range e.Stems {
		if e.Stems[i].Label == label {
			return i
		}
	}
	return -1
}
