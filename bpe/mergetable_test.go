package bpe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergeTableRankIsLineOrder(t *testing.T) {
	m, err := LoadMergeTable(strings.NewReader("a r\nb o\n\nbo r</w>\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	rank, ok := m.Rank("a", "r")
	require.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok = m.Rank("bo", "r</w>")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = m.Rank("z", "z")
	assert.False(t, ok)
}

func TestLoadMergeTableSkipsMalformedLines(t *testing.T) {
	m, err := LoadMergeTable(strings.NewReader("a r\nsingle-field\nb o\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}

func TestLoadMergeTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a r\nb o\n"), 0o644))

	m, err := LoadMergeTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}

func TestLoadMergeTableFileMissing(t *testing.T) {
	_, err := LoadMergeTableFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestMergeTableRulesOrder(t *testing.T) {
	m := NewMergeTableFromRules([]MergeRule{
		{Left: "a", Right: "r", Rank: 0},
		{Left: "b", Right: "o", Rank: 1},
	})
	rules := m.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "ar", rules[0].Merged())
	assert.Equal(t, "bo", rules[1].Merged())
}
