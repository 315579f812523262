package parser

// Stats counts classification decisions and degradations made during a
// parse. Nothing here is fatal: the pipeline records what it had to
// guess, repair or drop and keeps going, so the counts can be audited
// externally instead of raising errors.
type Stats struct {
	Blocks               int `json:"blocks"`
	Entries              int `json:"entries"`
	ContextualRoots      int `json:"contextual_roots"`
	ImplicitStems        int `json:"implicit_stems"`
	DroppedTables        int `json:"dropped_tables"`
	DroppedStems         int `json:"dropped_stems"`
	RepairedEtymologies  int `json:"repaired_etymologies"`
	ContinuedEtymologies int `json:"continued_etymologies"`
	MergedExamples       int `json:"merged_examples"`
	SplitExamples        int `json:"split_examples"`
	HeuristicTexts       int `json:"heuristic_texts"`
	UnknownCategories    int `json:"unknown_categories"`
	IdiomEntries         int `json:"idiom_entries"`
	CrossReferences      int `json:"cross_references"`
	HomonymGroups        int `json:"homonym_groups"`
}

// Add accumulates o into s. Used by the corpus fan-in to aggregate
// per-document statistics.
func (s *Stats) Add(o Stats) {
	s.Blocks += o.Blocks
	s.Entries += o.Entries
	s.ContextualRoots += o.ContextualRoots
	s.ImplicitStems += o.ImplicitStems
	s.DroppedTables += o.DroppedTables
	s.DroppedStems += o.DroppedStems
	s.RepairedEtymologies += o.RepairedEtymologies
	s.ContinuedEtymologies += o.ContinuedEtymologies
	s.MergedExamples += o.MergedExamples
	s.SplitExamples += o.SplitExamples
	s.HeuristicTexts += o.HeuristicTexts
	s.UnknownCategories += o.UnknownCategories
	s.IdiomEntries += o.IdiomEntries
	s.CrossReferences += o.CrossReferences
	s.HomonymGroups += o.HomonymGroups
}
