package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

func testPipeline(workers int) *Pipeline {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, Config{Workers: workers})
}

func boolPtr(b bool) *bool      { return &b }
func f64Ptr(f float64) *float64 { return &f }

// glossaryDoc builds a minimal single-entry document around the given
// root and etymology tail.
func glossaryDoc(name, root, tail string) Document {
	return Document{
		Name: name,
		Blocks: []domain.Block{
			domain.Paragraph{
				Text: root + " " + tail,
				Runs: []domain.Run{
					{Text: root + " ", Italic: boolPtr(true), SizePt: f64Ptr(11)},
					{Text: tail, Italic: boolPtr(false)},
				},
			},
			domain.Paragraph{Text: "I: " + root},
			domain.Table{Rows: [][]domain.Cell{{
				{Paragraphs: []domain.Paragraph{{Text: "Preterit"}}},
				{Paragraphs: []domain.Paragraph{{Text: "ʕbədle mede ʻer tat etwasʼ; 12;"}}},
			}}},
		},
	}
}

func TestParseDocument(t *testing.T) {
	p := testPipeline(1)
	res := p.ParseDocument(glossaryDoc("doc", "ʕbd", "(< Arab. ʕbd, Wehr 807: dienen)"))

	require.Len(t, res.Entries, 1)
	entry := res.Entries[0]
	assert.Equal(t, "ʕbd", entry.Root)
	require.NotNil(t, entry.Etymology)
	assert.Equal(t, "Arab.", entry.Etymology.Etymons[0].Source)
	require.Len(t, entry.Stems, 1)
	assert.Len(t, entry.Stems[0].Conjugations["Preterit"], 1)
	assert.Equal(t, 3, res.Stats.Blocks)
}

func TestParseCorpusPreservesDocumentOrder(t *testing.T) {
	docs := []Document{
		glossaryDoc("a", "qṭl", "(< Arab. qatala, Wehr 200: töten)"),
		glossaryDoc("b", "šmʕ", "(< Arab. samiʕa, Wehr 500: hören)"),
		glossaryDoc("c", "nfq", "(< Arab. nafaqa, Wehr 600: ausgehen)"),
	}

	res, err := testPipeline(3).ParseCorpus(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 3)

	assert.Equal(t, "qṭl", res.Entries[0].Root)
	assert.Equal(t, "šmʕ", res.Entries[1].Root)
	assert.Equal(t, "nfq", res.Entries[2].Root)
	assert.Equal(t, 9, res.Stats.Blocks)
}

func TestParseCorpusDisambiguatesAcrossDocuments(t *testing.T) {
	docs := []Document{
		glossaryDoc("a", "ʕbd", "(< Arab. ʕbd, Wehr 807: dienen)"),
		glossaryDoc("b", "ʕbd", "(< Syr. ʕbd, PS 2772: to do)"),
	}

	res, err := testPipeline(2).ParseCorpus(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "ʕbd 1", res.Entries[0].Root)
	assert.Equal(t, 1, res.Entries[0].HomonymIndex)
	assert.Equal(t, "ʕbd 2", res.Entries[1].Root)
	assert.Equal(t, 2, res.Entries[1].HomonymIndex)
	assert.Equal(t, 1, res.Stats.HomonymGroups)
}

func TestParseCorpusInvalidConfig(t *testing.T) {
	_, err := testPipeline(0).ParseCorpus(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestParseCorpusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []Document{glossaryDoc("a", "ʕbd", "(< Arab. ʕbd, Wehr 807: dienen)")}
	_, err := testPipeline(1).ParseCorpus(ctx, docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// The same corpus must export byte-identically on every run, worker
// scheduling aside.
func TestParseCorpusDeterministic(t *testing.T) {
	docs := []Document{
		glossaryDoc("a", "ʕbd", "(< Arab. ʕbd, Wehr 807: dienen)"),
		glossaryDoc("b", "ʕbd", "(< Syr. ʕbd, PS 2772: to do)"),
		glossaryDoc("c", "qṭl", "(< Arab. qatala, Wehr 200: töten)"),
	}

	export := func() []byte {
		res, err := testPipeline(4).ParseCorpus(context.Background(), docs)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, res.Entries, true))
		return buf.Bytes()
	}

	first := export()
	for i := 0; i < 5; i++ {
		require.Equal(t, first, export())
	}
}
