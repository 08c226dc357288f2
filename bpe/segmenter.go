package bpe

import (
	"strings"
	"unicode/utf8"

	"github.com/Interactions-AI/vecxx/vocab"
)

// endOfWord is the internal marker appended to the last symbol of a word
// before the merge loop runs. It must never leak into an emitted piece or a
// compiled snapshot's surface forms; it is stripped at emission.
const endOfWord = "</w>"

// continuationSuffix marks every piece of a segmented word except the last.
const continuationSuffix = "@@"

// inVocabChecker is the minimal surface Segmenter needs from a full-form
// vocabulary to run the optional in-vocab back-off pass.
type inVocabChecker interface {
	Lookup(piece string, normalize vocab.Transform) int
}

// Segmenter greedily segments one word at a time into BPE pieces, by
// repeatedly applying the lowest-ranked learned merge until none applies.
// It never fails: an unknown word always yields some sequence of pieces,
// down to single characters in the worst case.
type Segmenter struct {
	merges  *MergeTable
	cache   Cache
	vocab   inVocabChecker // optional, used only by the in-vocab filter
	inVocab bool
}

// SegmenterOption configures a Segmenter at construction.
type SegmenterOption func(*Segmenter)

// WithInVocabFilter enables the optional back-off pass described in spec
// §4.3: after segmentation, any piece absent from vocab is re-split into its
// single-rune components (see backOff). It is off by default.
func WithInVocabFilter(vocab inVocabChecker) SegmenterOption {
	return func(s *Segmenter) {
		s.vocab = vocab
		s.inVocab = true
	}
}

// NewSegmenter builds a Segmenter over merges, memoizing results in cache.
// A nil cache is invalid; pass NoCache{} to disable memoization.
func NewSegmenter(merges *MergeTable, cache Cache, opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{merges: merges, cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment splits word into an ordered sequence of BPE pieces. Every piece
// but the last carries the "@@" continuation suffix; the last piece is
// bare. Segmentation of a given word is deterministic and, through the
// cache, idempotent across calls.
func (s *Segmenter) Segment(word string) []string {
	if cached, ok := s.cache.Get(word); ok {
		return cached
	}

	var pieces []string
	if utf8.RuneCountInString(word) <= 1 {
		pieces = []string{word}
	} else {
		symbols := initialSymbols(word)
		for len(symbols) > 1 {
			left, right, found := s.lowestRankedPair(symbols)
			if !found {
				break
			}
			symbols = mergePairEverywhere(symbols, left, right)
		}
		pieces = emit(symbols)
	}

	if s.inVocab && s.vocab != nil {
		pieces = s.backOff(pieces)
	}

	s.cache.Put(word, pieces)
	return pieces
}

// initialSymbols splits word into one symbol per rune, appending the
// end-of-word marker to the last symbol.
func initialSymbols(word string) []string {
	runes := []rune(word)
	symbols := make([]string, len(runes))
	for i, r := range runes {
		symbols[i] = string(r)
	}
	symbols[len(symbols)-1] += endOfWord
	return symbols
}

// lowestRankedPair scans all adjacent pairs in symbols and returns the one
// with the smallest merge rank, breaking ties by leftmost position.
func (s *Segmenter) lowestRankedPair(symbols []string) (left, right string, found bool) {
	bestRank := -1
	for i := 0; i < len(symbols)-1; i++ {
		rank, ok := s.merges.Rank(symbols[i], symbols[i+1])
		if !ok {
			continue
		}
		if !found || rank < bestRank {
			bestRank = rank
			left, right = symbols[i], symbols[i+1]
			found = true
		}
	}
	return
}

// mergePairEverywhere replaces every non-overlapping left-to-right
// occurrence of the pair (left, right) in symbols with their concatenation,
// advancing past each merged position so overlapping matches never double
// merge.
func mergePairEverywhere(symbols []string, left, right string) []string {
	out := make([]string, 0, len(symbols))
	for i := 0; i < len(symbols); {
		if i < len(symbols)-1 && symbols[i] == left && symbols[i+1] == right {
			out = append(out, left+right)
			i += 2
			continue
		}
		out = append(out, symbols[i])
		i++
	}
	return out
}

// emit strips the end-of-word marker from the final symbol and appends the
// continuation suffix to every symbol but the last.
func emit(symbols []string) []string {
	pieces := make([]string, len(symbols))
	last := len(symbols) - 1
	for i, sym := range symbols {
		if i == last {
			pieces[i] = strings.TrimSuffix(sym, endOfWord)
		} else {
			pieces[i] = sym + continuationSuffix
		}
	}
	return pieces
}

// backOff re-splits any piece absent from vocab's full-form dictionary into
// its single-rune components in one step; an unknown piece that is already a
// single rune is kept as is. The rune components are not looked up, so one
// absent from vocab is still emitted. This is the off-by-default resolution
// of spec §4.3's under-specified in-vocab back-off strategy (see
// DESIGN.md).
func (s *Segmenter) backOff(pieces []string) []string {
	var out []string
	last := len(pieces) - 1
	for i, p := range pieces {
		if s.vocab.Lookup(p, nil) != vocab.UNK {
			out = append(out, p)
			continue
		}
		bare := strings.TrimSuffix(p, continuationSuffix)
		runes := []rune(bare)
		if len(runes) <= 1 {
			out = append(out, p)
			continue
		}
		for j, r := range runes {
			sym := string(r)
			if i != last || j != len(runes)-1 {
				sym += continuationSuffix
			}
			out = append(out, sym)
		}
	}
	return out
}
