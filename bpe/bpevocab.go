// Package bpe implements the BPE subword vocabulary: a learned merge table,
// a greedy segmenter over it, a pluggable segmentation cache, and a
// composed BPEVocab tying all three to a flat vocab.Vocab of known pieces.
package bpe

import (
	"github.com/Interactions-AI/vecxx/vocab"
	"github.com/pkg/errors"
)

// ErrResourceOpen wraps a failure to open either the vocab or the codes
// source, whether during BPEVocab construction or in LoadMergeTableFile.
var ErrResourceOpen = errors.New("vecxx: bpe vocabulary resources could not be opened")

// BPEVocabOption configures a BPEVocab at construction.
type BPEVocabOption func(*bpevocabConfig)

type bpevocabConfig struct {
	cache       Cache
	inVocabBack bool
}

// WithCache overrides the default segmentation cache (a MapCache). Pass
// NewSyncCache() for concurrent use, or NoCache{} to disable memoization.
func WithCache(c Cache) BPEVocabOption {
	return func(cfg *bpevocabConfig) { cfg.cache = c }
}

// WithInVocabBackOff enables the segmenter's in-vocab back-off pass (see
// Segmenter.backOff): any piece the merge loop produces that is absent from
// the vocab table is re-split into its single-rune components.
func WithInVocabBackOff() BPEVocabOption {
	return func(cfg *bpevocabConfig) { cfg.inVocabBack = true }
}

// BPEVocab composes a MergeTable, a flat Vocab of known pieces, and a
// Segmenter backed by a Cache, per spec §4.5. It is the subword
// counterpart to vocab.Vocab and satisfies the same Vocabulary surface a
// Vectorizer depends on (Lookup, Rlookup, Segment).
type BPEVocab struct {
	vocab   *vocab.Vocab
	merges  *MergeTable
	cache   Cache
	segment *Segmenter
}

// New builds a BPEVocab from a plain-text vocab file and a plain-text codes
// file. Both must be openable and readable or construction fails; malformed
// codes lines are skipped rather than rejected (see LoadMergeTable). When
// vocabFile and codesFile are the same path and that file carries the
// compiled-snapshot signature, both tables are loaded from the single
// snapshot instead (see LoadSnapshot).
func New(vocabFile, codesFile string, opts ...BPEVocabOption) (*BPEVocab, error) {
	cfg := &bpevocabConfig{cache: NewMapCache()}
	for _, opt := range opts {
		opt(cfg)
	}

	if vocabFile == codesFile {
		if isSnapshot, err := pathHasSnapshotSignature(vocabFile); err != nil {
			return nil, errors.Wrapf(ErrResourceOpen, "probing %q: %v", vocabFile, err)
		} else if isSnapshot {
			return newFromSnapshot(vocabFile, cfg)
		}
	}

	v, err := vocab.LoadFile(vocabFile)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "loading vocab file %q: %v", vocabFile, err)
	}
	m, err := LoadMergeTableFile(codesFile)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "loading codes file %q: %v", codesFile, err)
	}
	return newBPEVocab(v, m, cfg), nil
}

func newBPEVocab(v *vocab.Vocab, m *MergeTable, cfg *bpevocabConfig) *BPEVocab {
	var segOpts []SegmenterOption
	if cfg.inVocabBack {
		segOpts = append(segOpts, WithInVocabFilter(v))
	}
	return &BPEVocab{
		vocab:   v,
		merges:  m,
		cache:   cfg.cache,
		segment: NewSegmenter(m, cfg.cache, segOpts...),
	}
}

// Lookup delegates to the underlying Vocab.
func (b *BPEVocab) Lookup(piece string, normalize vocab.Transform) int {
	return b.vocab.Lookup(piece, normalize)
}

// Rlookup delegates to the underlying Vocab.
func (b *BPEVocab) Rlookup(id int) string {
	return b.vocab.Rlookup(id)
}

// Size delegates to the underlying Vocab.
func (b *BPEVocab) Size() int {
	return b.vocab.Size()
}

// Segment invokes the BPE segmenter, with caching, per spec §4.5.
func (b *BPEVocab) Segment(word string) []string {
	return b.segment.Segment(word)
}

// MergeCount returns the number of learned merges, for diagnostics.
func (b *BPEVocab) MergeCount() int {
	return b.merges.Len()
}

// CompileVocab writes a single-file snapshot at path containing both the
// vocab table and the merge table, loadable in place of the original two
// text files per spec §4.5.
func (b *BPEVocab) CompileVocab(path string) error {
	return writeSnapshot(path, b.vocab, b.merges)
}
