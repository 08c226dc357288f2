// Package vocab implements the flat word-level vocabulary: a dense
// piece<->id mapping with four reserved ids inserted ahead of any caller
// supplied pieces.
package vocab

import (
	"sort"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Reserved ids, fixed by construction order. They are never reassigned.
const (
	PAD = 0
	GO  = 1
	EOS = 2
	UNK = 3
)

// reservedPieces holds the canonical internal spelling of the four reserved
// slots. Callers choose whatever sentinel text they want emitted
// (conventionally "<PAD>", "<GO>", "<EOS>", "<UNK>") via a Vectorizer's
// begin/end token lists; those strings are matched against these lowercase
// canonical forms once a Transform has been applied at lookup time.
var reservedPieces = [...]string{PAD: "<pad>", GO: "<go>", EOS: "<eos>", UNK: "<unk>"}

// Transform is a caller-supplied, deterministic, side-effect-free
// normalization function (e.g. strings.ToLower) applied to a piece before
// it is looked up. A nil Transform means "no normalization".
type Transform func(string) string

// Vocab is a flat piece<->id mapping. It is immutable after construction.
type Vocab struct {
	forward map[string]int
	reverse []string
}

// New builds a Vocab from an ordered list of pieces. The four reserved
// entries are inserted first, at ids 0..3; the given pieces are then
// appended in order, with duplicates collapsing to their first occurrence.
func New(pieces []string) *Vocab {
	v := newReserved()
	for _, p := range pieces {
		v.insert(p)
	}
	klog.V(2).Infof("vocab: built from %d ordered pieces, size=%d", len(pieces), v.Size())
	return v
}

// NewFromCounts builds a Vocab from a piece->count mapping. Pieces are
// inserted in descending count order; ties are broken by ascending piece
// string, so construction is deterministic regardless of map iteration
// order.
func NewFromCounts(counts map[string]int) *Vocab {
	type entry struct {
		piece string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for p, c := range counts {
		entries = append(entries, entry{p, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].piece < entries[j].piece
	})

	v := newReserved()
	for _, e := range entries {
		v.insert(e.piece)
	}
	klog.V(2).Infof("vocab: built from %d counted pieces, size=%d", len(counts), v.Size())
	return v
}

func newReserved() *Vocab {
	v := &Vocab{
		forward: make(map[string]int),
		reverse: make([]string, 0, len(reservedPieces)),
	}
	for _, p := range reservedPieces {
		v.insert(p)
	}
	return v
}

// insert appends piece at the next free id, unless it is already present.
func (v *Vocab) insert(piece string) {
	if _, ok := v.forward[piece]; ok {
		return
	}
	id := len(v.reverse)
	v.forward[piece] = id
	v.reverse = append(v.reverse, piece)
}

// Lookup applies normalize to piece (if non-nil) and returns its id, or
// UNK's id (3) if the (possibly normalized) piece is not in the vocabulary.
// Lookup never fails.
func (v *Vocab) Lookup(piece string, normalize Transform) int {
	if normalize != nil {
		piece = normalize(piece)
	}
	if id, ok := v.forward[piece]; ok {
		return id
	}
	return UNK
}

// Rlookup returns the piece stored at id, or the empty string if id is out
// of range.
func (v *Vocab) Rlookup(id int) string {
	if id < 0 || id >= len(v.reverse) {
		return ""
	}
	return v.reverse[id]
}

// Size returns the number of entries, including the 4 reserved ones.
func (v *Vocab) Size() int {
	return len(v.reverse)
}

// Segment trivially returns word as its own single piece: flat word
// vocabularies do not subdivide tokens. An empty word yields no pieces
// (nil). It exists so that Vocab satisfies
// the same Vocabulary surface a BPE vocabulary does, for use by a
// vectorizer.
func (v *Vocab) Segment(word string) []string {
	if word == "" {
		return nil
	}
	return []string{word}
}

// Pieces returns the non-reserved entries in ascending id order, for use by
// components (such as a compiled-snapshot writer) that need to rebuild an
// equivalent Vocab via New.
func (v *Vocab) Pieces() []string {
	if len(v.reverse) <= len(reservedPieces) {
		return nil
	}
	out := make([]string, len(v.reverse)-len(reservedPieces))
	copy(out, v.reverse[len(reservedPieces):])
	return out
}

// ErrResourceOpen wraps a failure to open or read a vocabulary source file.
var ErrResourceOpen = errors.New("vecxx: vocabulary resource could not be opened")
