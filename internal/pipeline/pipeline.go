// Package pipeline orchestrates glossary parsing over whole documents:
// per-document parses fan out across a bounded worker group, results
// gather in input order, and the homonym pass runs once over the
// concatenated corpus. Parsing itself is pure and total; the only
// errors here come from configuration, cancellation and export I/O.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/surayt/turoyo-glossary/internal/domain"
	"github.com/surayt/turoyo-glossary/internal/parser"
)

// Document is one pre-materialized block stream. The container-reading
// adapter producing it is external to this module.
type Document struct {
	Name   string
	Blocks []domain.Block
}

// Result holds the entries and aggregated statistics of a parse.
type Result struct {
	Entries []domain.Entry
	Stats   parser.Stats
}

// Pipeline runs the parser over documents and corpora.
type Pipeline struct {
	log *slog.Logger
	cfg Config
}

func New(log *slog.Logger, cfg Config) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{log: log, cfg: cfg}
}

// ParseDocument parses one document. Deterministic: the same block
// stream always yields the same entries.
func (p *Pipeline) ParseDocument(doc Document) Result {
	entries, stats := parser.NewAssembler(p.log).Assemble(doc.Blocks)
	p.log.Info("parsed document",
		slog.String("document", doc.Name),
		slog.Int("blocks", stats.Blocks),
		slog.Int("entries", stats.Entries),
		slog.Int("contextual_roots", stats.ContextualRoots),
		slog.Int("dropped_tables", stats.DroppedTables),
		slog.Int("dropped_stems", stats.DroppedStems),
	)
	return Result{Entries: entries, Stats: stats}
}

// ParseCorpus parses documents concurrently, concatenates the results
// in input order and runs the homonym disambiguation pass over the
// whole corpus. Documents share no mutable state, so the fan-out is
// limited only by cfg.Workers.
func (p *Pipeline) ParseCorpus(ctx context.Context, docs []Document) (Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return Result{}, err
	}

	results := make([]Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.ParseDocument(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("parse corpus: %w", err)
	}

	var total Result
	for _, r := range results {
		total.Entries = append(total.Entries, r.Entries...)
		total.Stats.Add(r.Stats)
	}
	parser.Disambiguate(total.Entries, &total.Stats)

	p.log.Info("corpus assembled",
		slog.Int("documents", len(docs)),
		slog.Int("entries", len(total.Entries)),
		slog.Int("homonym_groups", total.Stats.HomonymGroups),
		slog.Int("idiom_entries", total.Stats.IdiomEntries),
	)
	return total, nil
}
