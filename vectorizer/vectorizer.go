// Package vectorizer implements the begin/body/end emission state machine
// that turns a stream of whitespace-separated tokens into dense integer id
// sequences, and back, over either a flat word vocabulary or a BPE
// vocabulary.
package vectorizer

import "github.com/Interactions-AI/vecxx/vocab"

// Transform is a caller-supplied per-token normalization callable, applied
// before segmentation and re-applied at lookup time.
type Transform = vocab.Transform

// Vocabulary is the minimal surface a vectorizer needs: both vocab.Vocab
// and bpe.BPEVocab satisfy it.
type Vocabulary interface {
	Lookup(piece string, normalize Transform) int
	Rlookup(id int) string
	Segment(word string) []string
}

// PAD is the reserved padding id, duplicated here so callers need not import
// the vocab package just to compare against it.
const PAD = vocab.PAD

const (
	vocabGO  = vocab.GO
	vocabEOS = vocab.EOS
	vocabUNK = vocab.UNK
)

// reserved reports whether id is one of PAD/GO/EOS: these are dropped
// entirely from decode output, never emitted as empty placeholders.
func reserved(id int) bool {
	return id == vocab.PAD || id == vocab.GO || id == vocab.EOS
}

// config holds the shared, immutable-after-construction settings of a
// Vectorizer or MapVectorizer.
type config struct {
	transform Transform
	beginToks []string
	endToks   []string
	mxlen     *int
	fields    []string
}

// Option configures a Vectorizer or MapVectorizer at construction.
type Option func(*config)

// WithTransform sets the per-token normalization callable applied before
// segmentation and re-applied at id lookup.
func WithTransform(t Transform) Option {
	return func(c *config) { c.transform = t }
}

// WithBeginTokens sets the piece strings prepended to every output.
func WithBeginTokens(toks ...string) Option {
	return func(c *config) { c.beginToks = append([]string(nil), toks...) }
}

// WithEndTokens sets the piece strings appended after all tokens.
func WithEndTokens(toks ...string) Option {
	return func(c *config) { c.endToks = append([]string(nil), toks...) }
}

// WithMaxLen fixes the default output width used when ConvertToIds is
// called without an explicit override.
func WithMaxLen(n int) Option {
	return func(c *config) { c.mxlen = &n }
}

// WithFields sets the record fields a MapVectorizer extracts and joins.
// Ignored by a plain Vectorizer.
func WithFields(fields ...string) Option {
	return func(c *config) { c.fields = append([]string(nil), fields...) }
}

func newConfig(opts []Option) *config {
	c := &config{fields: []string{"text"}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// engine holds the state machine shared by Vectorizer and MapVectorizer; it
// is parameterized only by the already-extracted plain token stream.
type engine struct {
	vocab Vocabulary
	cfg   *config
}

// convertToPieces runs the BEGIN -> BODY -> END machine: emit the
// configured begin pieces, segment every token in order, then emit the
// configured end pieces. Truncation never happens here.
func (e *engine) convertToPieces(tokens []string) []string {
	pieces := make([]string, 0, len(tokens)+len(e.cfg.beginToks)+len(e.cfg.endToks))
	pieces = append(pieces, e.cfg.beginToks...)
	for _, tok := range tokens {
		if e.cfg.transform != nil {
			tok = e.cfg.transform(tok)
		}
		pieces = append(pieces, e.vocab.Segment(tok)...)
	}
	pieces = append(pieces, e.cfg.endToks...)
	return pieces
}

// convertToIds maps convertToPieces's output through the vocabulary, then
// applies pad/truncate semantics for the effective mxlen (explicit override
// if given, else the configured default, else "no limit").
func (e *engine) convertToIds(tokens []string, mxlen *int) ([]int, int) {
	pieces := e.convertToPieces(tokens)
	ids := make([]int, len(pieces))
	for i, p := range pieces {
		ids[i] = e.vocab.Lookup(p, e.cfg.transform)
	}

	effective := mxlen
	if effective == nil {
		effective = e.cfg.mxlen
	}
	if effective == nil {
		return ids, len(ids)
	}
	n := *effective
	if len(ids) >= n {
		return ids[:n], n
	}
	out := make([]int, n)
	copy(out, ids)
	for i := len(ids); i < n; i++ {
		out[i] = PAD
	}
	return out, len(ids)
}

// convertToIdsStack applies convertToIds to every row with the same mxlen
// and concatenates the per-row id vectors in order.
func (e *engine) convertToIdsStack(batch [][]string, mxlen int) ([]int, []int) {
	flat := make([]int, 0, len(batch)*mxlen)
	lengths := make([]int, len(batch))
	for i, row := range batch {
		ids, length := e.convertToIds(row, &mxlen)
		flat = append(flat, ids...)
		lengths[i] = length
	}
	return flat, lengths
}

// decode reverse-looks-up every id, drops reserved PAD/GO/EOS slots
// entirely, and joins the remaining pieces with a single space except
// across a "@@" continuation boundary, where pieces concatenate directly.
func (e *engine) decode(ids []int) string {
	var out []byte
	pendingContinuation := false
	for _, id := range ids {
		if reserved(id) {
			continue
		}
		piece := e.vocab.Rlookup(id)
		isContinuation := hasContinuationSuffix(piece)
		bare := trimContinuationSuffix(piece)

		if len(out) > 0 && !pendingContinuation {
			out = append(out, ' ')
		}
		out = append(out, bare...)
		pendingContinuation = isContinuation
	}
	return string(out)
}

const continuationSuffix = "@@"

func hasContinuationSuffix(piece string) bool {
	return len(piece) >= len(continuationSuffix) && piece[len(piece)-len(continuationSuffix):] == continuationSuffix
}

func trimContinuationSuffix(piece string) string {
	if hasContinuationSuffix(piece) {
		return piece[:len(piece)-len(continuationSuffix)]
	}
	return piece
}
