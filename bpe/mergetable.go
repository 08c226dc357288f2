package bpe

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// MergeRule is one learned BPE merge: the ordered pair (Left, Right) and the
// rank (priority) it was learned at. Lower rank means the merge is applied
// earlier. Merged is simply Left+Right; it is not stored separately.
type MergeRule struct {
	Left  string
	Right string
	Rank  int
}

// Merged returns the symbol produced by applying this rule.
func (m MergeRule) Merged() string {
	return m.Left + m.Right
}

type pairKey struct {
	left, right string
}

// MergeTable is the ordered collection of learned BPE merges, additionally
// indexed by (left, right) pair for O(1) expected rank lookup. It is
// immutable after construction.
type MergeTable struct {
	rules  []MergeRule
	rankOf map[pairKey]int
}

// LoadMergeTableFile parses a BPE codes file: one merge per line, formatted
// "LEFT RIGHT" (whitespace separated). Blank lines and lines with fewer than
// two fields are skipped; the 0-based index among the remaining lines is the
// rank, so the first merge is the highest priority one. A file that cannot
// be opened is reported wrapped in ErrResourceOpen.
func LoadMergeTableFile(path string) (*MergeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "opening codes file %q: %v", path, err)
	}
	defer f.Close()
	return LoadMergeTable(f)
}

// LoadMergeTable parses a BPE codes stream in the same format as
// LoadMergeTableFile.
func LoadMergeTable(r io.Reader) (*MergeTable, error) {
	scanner := bufio.NewScanner(r)
	var parsed []MergeRule
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		parsed = append(parsed, MergeRule{Left: fields[0], Right: fields[1], Rank: len(parsed)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading codes stream")
	}
	return NewMergeTableFromRules(parsed), nil
}

// NewMergeTableFromRules builds a MergeTable from an already-ordered slice of
// rules (their Rank fields are trusted as given). Used both by the text-file
// loader and by the compiled-snapshot loader.
func NewMergeTableFromRules(rules []MergeRule) *MergeTable {
	t := &MergeTable{
		rules:  rules,
		rankOf: make(map[pairKey]int, len(rules)),
	}
	for _, r := range rules {
		t.rankOf[pairKey{r.Left, r.Right}] = r.Rank
	}
	return t
}

// Rank returns the merge rank for (left, right), or ok=false if no learned
// merge applies to that pair.
func (t *MergeTable) Rank(left, right string) (rank int, ok bool) {
	rank, ok = t.rankOf[pairKey{left, right}]
	return
}

// Len returns the number of learned merges.
func (t *MergeTable) Len() int {
	return len(t.rules)
}

// Rules returns the merges in ascending rank order. The caller must not
// modify the returned slice.
func (t *MergeTable) Rules() []MergeRule {
	return t.rules
}
