package bpe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCacheMissThenHit(t *testing.T) {
	c := NewMapCache()
	_, ok := c.Get("arbor")
	assert.False(t, ok)

	c.Put("arbor", []string{"ar@@", "bor"})
	got, ok := c.Get("arbor")
	require.True(t, ok)
	assert.Equal(t, []string{"ar@@", "bor"}, got)
}

func TestSyncCacheConcurrentAccess(t *testing.T) {
	c := NewSyncCache()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put("word", []string{"w@@", "ord"})
			c.Get("word")
		}(i)
	}
	wg.Wait()

	got, ok := c.Get("word")
	require.True(t, ok)
	assert.Equal(t, []string{"w@@", "ord"}, got)
}

func TestNoCacheNeverHits(t *testing.T) {
	var c NoCache
	c.Put("arbor", []string{"ar@@", "bor"})
	_, ok := c.Get("arbor")
	assert.False(t, ok)
}
