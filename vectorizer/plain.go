package vectorizer

// Vectorizer converts a sequence of plain whitespace-separated token
// strings to and from dense integer id sequences over vocab, per spec
// §4.6's plain input shape.
type Vectorizer struct {
	engine
}

// New builds a Vectorizer over vocab. With no options, there are no begin
// or end tokens, no transform, and no fixed output width.
func New(vocab Vocabulary, opts ...Option) *Vectorizer {
	return &Vectorizer{engine{vocab: vocab, cfg: newConfig(opts)}}
}

// ConvertToPieces segments tokens in order, bracketed by the configured
// begin/end pieces. It never truncates.
func (v *Vectorizer) ConvertToPieces(tokens []string) []string {
	return v.convertToPieces(tokens)
}

// ConvertToIds maps ConvertToPieces's output through the vocabulary and
// applies pad/truncate semantics. mxlen optionally overrides the
// vectorizer's configured default for this call only.
func (v *Vectorizer) ConvertToIds(tokens []string, mxlen ...int) ([]int, int) {
	return v.convertToIds(tokens, firstOrNil(mxlen))
}

// ConvertToIdsStack applies ConvertToIds to every row in batch with the
// same mxlen, returning the flat concatenation of row id vectors and a
// per-row length vector.
func (v *Vectorizer) ConvertToIdsStack(batch [][]string, mxlen int) ([]int, []int) {
	return v.convertToIdsStack(batch, mxlen)
}

// Decode reverse-looks-up ids into their surface text, dropping reserved
// sentinel slots and rejoining BPE continuation pieces without a space.
func (v *Vectorizer) Decode(ids []int) string {
	return v.decode(ids)
}

func firstOrNil(mxlen []int) *int {
	if len(mxlen) == 0 {
		return nil
	}
	return &mxlen[0]
}
