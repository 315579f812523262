package parser

import (
	"strings"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// headerCategories collapses the many spellings of table headers to
// canonical conjugation category names. A header may denote two
// categories joined by "and".
var headerCategories = map[string][]string{
	"Preterit":           {"Preterit"},
	"Preterite":          {"Preterit"},
	"Präteritum":         {"Preterit"},
	"Ko-Preterit":        {"Ko_Preterit"},
	"Infectum":           {"Infectum"},
	"Imperativ":          {"Imperative"},
	"Imperative":         {"Imperative"},
	"Infinitiv":          {"Infinitive"},
	"Infinitive":         {"Infinitive"},
	"Part. Act.":         {"Participle_Active"},
	"Part. act.":         {"Participle_Active"},
	"Part.Act.":          {"Participle_Active"},
	"Participle Active":  {"Participle_Active"},
	"Part. Pass.":        {"Participle_Passive"},
	"Part. pass.":        {"Participle_Passive"},
	"Part.Pass.":         {"Participle_Passive"},
	"Participle Passive": {"Participle_Passive"},
	"Nomen agentis":      {"Nomen_Agentis"},
	"Nomen Agentis":      {"Nomen_Agentis"},
	"Nomen actionis":     {"Action_Noun"},
	"Action Noun":        {"Action_Noun"},
	"Verbal Noun":        {"Action_Noun"},
}

// canonicalCategories maps a raw header cell to one or more canonical
// category names. Unknown spellings pass through verbatim with a
// counter increment rather than losing the table.
func canonicalCategories(header string, stats *Stats) []string {
	h := strings.TrimSuffix(domain.NormalizeText(header), ":")
	h = strings.TrimSpace(h)
	if h == "" {
		return nil
	}
	if cats, ok := headerCategories[h]; ok {
		return cats
	}
	if parts := strings.Split(h, " and "); len(parts) > 1 {
		var cats []string
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if mapped, ok := headerCategories[p]; ok {
				cats = append(cats, mapped...)
				continue
			}
			stats.UnknownCategories++
			cats = append(cats, p)
		}
		return cats
	}
	stats.UnknownCategories++
	return []string{h}
}
