package vocab

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadFile parses a word-vocabulary text file: one piece per line, leading
// and trailing whitespace trimmed, blank lines skipped. Ids are assigned in
// file order after the 4 reserved ones.
func LoadFile(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceOpen, "opening vocab file %q: %v", path, err)
	}
	defer f.Close()

	var pieces []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pieces = append(pieces, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading vocab file %q", path)
	}
	return New(pieces), nil
}
