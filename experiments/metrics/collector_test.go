package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts from several goroutines", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 8)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddNode()
					c.AddLeaf()
				}
				c.AddCutoff()
			}()
		}
		wg.Wait()
		got := c.Complete()

		require.Equal(t, 4, got.Depth)
		require.Equal(t, 8, got.Goroutines)
		require.Equal(t, 800, got.Nodes)
		require.Equal(t, 800, got.Leaves)
		require.Equal(t, 8, got.Cutoffs)
		require.False(t, got.CacheHit)
		require.GreaterOrEqual(t, got.Duration.Nanoseconds(), int64(0))
	})

	t.Run("cache hit", func(t *testing.T) {
		c := NewCollector()
		c.Start(2, 1)
		c.SetCacheHit(true)

		require.True(t, c.Complete().CacheHit)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 1)
		c.AddNode()
		c.SetCacheHit(true)

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
