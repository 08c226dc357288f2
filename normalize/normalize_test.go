package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLower(t *testing.T) {
	assert.Equal(t, "arbor", Lower("ARBOR"))
}

func TestStripAccentsRemovesCombiningMarks(t *testing.T) {
	assert.Equal(t, "cafe", StripAccents("café"))
}

func TestNFCIsIdempotent(t *testing.T) {
	once := NFC("café")
	twice := NFC(once)
	assert.Equal(t, once, twice)
}

func TestNFKCFoldsCompatibilityForms(t *testing.T) {
	// U+FB01 LATIN SMALL LIGATURE FI decomposes to "fi" under NFKC.
	assert.Equal(t, "fi", NFKC("ﬁ"))
}
