package bpe

import (
	"testing"

	"github.com/Interactions-AI/vecxx/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rules(pairs ...[2]string) *MergeTable {
	rules := make([]MergeRule, len(pairs))
	for i, p := range pairs {
		rules[i] = MergeRule{Left: p[0], Right: p[1], Rank: i}
	}
	return NewMergeTableFromRules(rules)
}

func TestSegmentSingleCharWord(t *testing.T) {
	s := NewSegmenter(rules(), NewMapCache())
	assert.Equal(t, []string{"x"}, s.Segment("x"))
}

func TestSegmentEmptyMerges(t *testing.T) {
	s := NewSegmenter(rules(), NewMapCache())
	// No merges apply: every symbol is emitted as its own piece.
	assert.Equal(t, []string{"a@@", "b@@", "c"}, s.Segment("abc"))
}

func TestSegmentCollapsesToOnePiece(t *testing.T) {
	s := NewSegmenter(rules([2]string{"a", "b</w>"}), NewMapCache())
	assert.Equal(t, []string{"ab"}, s.Segment("ab"))
}

func TestSegmentTwoPiecesWithContinuation(t *testing.T) {
	s := NewSegmenter(rules([2]string{"a", "b</w>"}), NewMapCache())
	assert.Equal(t, []string{"c@@", "ab"}, s.Segment("cab"))
}

func TestSegmentMergesEveryNonOverlappingOccurrence(t *testing.T) {
	s := NewSegmenter(rules([2]string{"a", "a"}), NewMapCache())
	assert.Equal(t, []string{"aa@@", "a@@", "a"}, s.Segment("aaaa"))
}

func TestSegmentLeftmostTieBreak(t *testing.T) {
	// Two pairs tie at rank 0 in the first round: ("a","a") at index 0-1
	// and ("a","b</w>") at index 1-2 in "aab". Leftmost wins.
	tied := NewMergeTableFromRules([]MergeRule{
		{Left: "a", Right: "a", Rank: 0},
		{Left: "a", Right: "b</w>", Rank: 0},
	})
	s := NewSegmenter(tied, NewMapCache())
	assert.Equal(t, []string{"aa@@", "b"}, s.Segment("aab"))
}

func TestSegmentIsCached(t *testing.T) {
	cache := NewMapCache()
	s := NewSegmenter(rules([2]string{"a", "b</w>"}), cache)
	first := s.Segment("cab")
	cached, ok := cache.Get("cab")
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second := s.Segment("cab")
	assert.Equal(t, first, second)
}

func TestSegmentDeterministic(t *testing.T) {
	s1 := NewSegmenter(rules([2]string{"a", "b</w>"}, [2]string{"c", "ab"}), NewMapCache())
	s2 := NewSegmenter(rules([2]string{"a", "b</w>"}, [2]string{"c", "ab"}), NewMapCache())
	assert.Equal(t, s1.Segment("cab"), s2.Segment("cab"))
}

func TestSegmentUnknownWordNeverFails(t *testing.T) {
	s := NewSegmenter(rules(), NewSyncCache())
	assert.NotPanics(t, func() {
		s.Segment("zzz-unseen-word-!!")
	})
}

func TestSegmentNoCacheDisablesMemoization(t *testing.T) {
	s := NewSegmenter(rules([2]string{"a", "b</w>"}), NoCache{})
	first := s.Segment("cab")
	second := s.Segment("cab")
	assert.Equal(t, first, second)
}

func TestSegmentInVocabFilterBacksOff(t *testing.T) {
	v := vocab.New([]string{"c@@", "a@@", "b"}) // "ab" (merged) is NOT known
	s := NewSegmenter(rules([2]string{"a", "b</w>"}), NewMapCache(), WithInVocabFilter(v))
	// Without the filter this would be ["c@@", "ab"]; since "ab" is
	// unknown, it is backed off to its rune components.
	assert.Equal(t, []string{"c@@", "a@@", "b"}, s.Segment("cab"))
}
