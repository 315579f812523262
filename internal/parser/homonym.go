package parser

import (
	"fmt"
	"regexp"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// signature is the part of an etymology that distinguishes true
// homonyms: the first etymon's identifying fields. valid is false when
// the entry has no etymology at all.
type signature struct {
	valid      bool
	source     string
	sourceRoot string
	reference  string
	notes      string
	raw        string
}

func signatureOf(e *domain.Entry) signature {
	if e.Etymology == nil || len(e.Etymology.Etymons) == 0 {
		return signature{}
	}
	et := e.Etymology.Etymons[0]
	return signature{
		valid:      true,
		source:     et.Source,
		sourceRoot: et.SourceRoot,
		reference:  et.Reference,
		notes:      et.Notes,
		raw:        et.Raw,
	}
}

var rootSuffixRe = regexp.MustCompile(` \d+$`)

func baseRoot(root string) string {
	return rootSuffixRe.ReplaceAllString(root, "")
}

// Disambiguate numbers same-spelled roots with distinct etymologies.
// It runs once over the sealed corpus and mutates only Root and
// HomonymIndex. Suffixes are assigned in encounter order; groups where
// the author already numbered a member are left untouched, and groups
// sharing one signature stay unnumbered: same root with the same
// etymology is the same entry duplicated by document error, not a
// homonym pair.
func Disambiguate(entries []domain.Entry, stats *Stats) {
	groups := make(map[string][]int)
	var order []string
	for i := range entries {
		b := baseRoot(entries[i].Root)
		if _, seen := groups[b]; !seen {
			order = append(order, b)
		}
		groups[b] = append(groups[b], i)
	}

	for _, b := range order {
		idx := groups[b]
		if len(idx) < 2 {
			continue
		}

		authorNumbered := false
		for _, i := range idx {
			if entries[i].Root != b {
				authorNumbered = true
				break
			}
		}
		if authorNumbered {
			continue
		}

		distinct := make(map[signature]bool, len(idx))
		for _, i := range idx {
			distinct[signatureOf(&entries[i])] = true
		}
		if len(distinct) < 2 {
			continue
		}

		stats.HomonymGroups++
		for n, i := range idx {
			entries[i].HomonymIndex = n + 1
			entries[i].Root = fmt.Sprintf("%s %d", b, n+1)
		}
	}
}
