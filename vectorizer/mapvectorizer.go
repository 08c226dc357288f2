package vectorizer

import "github.com/Interactions-AI/vecxx/tokenadapter"

// MapVectorizer converts a sequence of field-bearing records to and from
// dense integer id sequences, per spec §4.6's record input shape. The
// fields named by WithFields (default ["text"]) are extracted from each
// record and joined with a single space before segmentation.
type MapVectorizer struct {
	engine
}

// NewMap builds a MapVectorizer over vocab.
func NewMap(vocab Vocabulary, opts ...Option) *MapVectorizer {
	return &MapVectorizer{engine{vocab: vocab, cfg: newConfig(opts)}}
}

func (v *MapVectorizer) tokens(records []tokenadapter.Record) []string {
	return tokenadapter.AdaptRecords(records, v.cfg.fields)
}

// ConvertToPieces extracts and joins each record's configured fields, then
// segments the results in order, bracketed by the configured begin/end
// pieces.
func (v *MapVectorizer) ConvertToPieces(records []tokenadapter.Record) []string {
	return v.convertToPieces(v.tokens(records))
}

// ConvertToIds maps ConvertToPieces's output through the vocabulary and
// applies pad/truncate semantics. mxlen optionally overrides the
// vectorizer's configured default for this call only.
func (v *MapVectorizer) ConvertToIds(records []tokenadapter.Record, mxlen ...int) ([]int, int) {
	return v.convertToIds(v.tokens(records), firstOrNil(mxlen))
}

// ConvertToIdsStack applies ConvertToIds to every row in batch with the
// same mxlen, returning the flat concatenation of row id vectors and a
// per-row length vector.
func (v *MapVectorizer) ConvertToIdsStack(batch [][]tokenadapter.Record, mxlen int) ([]int, []int) {
	rows := make([][]string, len(batch))
	for i, records := range batch {
		rows[i] = v.tokens(records)
	}
	return v.convertToIdsStack(rows, mxlen)
}

// Decode reverse-looks-up ids into their surface text, dropping reserved
// sentinel slots and rejoining BPE continuation pieces without a space.
func (v *MapVectorizer) Decode(ids []int) string {
	return v.decode(ids)
}
