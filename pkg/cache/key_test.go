package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/orgtree/pkg/cache"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, cache.Compare(cache.Key{5}, cache.Key{6}))
	assert.Equal(t, 1, cache.Compare(cache.Key{6}, cache.Key{5}))
	assert.Equal(t, 0, cache.Compare(cache.Key{5}, cache.Key{5}))

	// The shorter key pads with zero levels.
	assert.Equal(t, 0, cache.Compare(cache.Key{5}, cache.Key{5, 0}))
	assert.Equal(t, -1, cache.Compare(cache.Key{5}, cache.Key{5, 1}))
	assert.Equal(t, 1, cache.Compare(cache.Key{5, 1}, cache.Key{5}))
}

func TestGenerateMidpoint(t *testing.T) {
	t.Parallel()

	k := cache.Generate(cache.Key{5}, cache.Key{9})
	assert.Equal(t, cache.Key{7}, k)
}

func TestGenerateAdjacent(t *testing.T) {
	t.Parallel()

	k := cache.Generate(cache.Key{5}, cache.Key{6})
	require.Len(t, k, 2)
	assert.Equal(t, int64(5), k[0])
	assert.Equal(t, -1, cache.Compare(cache.Key{5}, k))
	assert.Equal(t, -1, cache.Compare(k, cache.Key{6}))
}

func TestGenerateOpenEnds(t *testing.T) {
	t.Parallel()

	k := cache.Generate(nil, cache.Key{10})
	assert.Equal(t, -1, cache.Compare(k, cache.Key{10}))

	k = cache.Generate(cache.Key{10}, nil)
	assert.Equal(t, 1, cache.Compare(k, cache.Key{10}))
}

func TestGenerateBetweenGeneratedKeys(t *testing.T) {
	t.Parallel()

	// Repeated insertion between a pair keeps producing ordered keys.
	lower, upper := cache.Key{5}, cache.Key{6}
	prev := lower
	for i := 0; i < 64; i++ {
		k := cache.Generate(prev, upper)
		require.Equal(t, -1, cache.Compare(prev, k), "iteration %d", i)
		require.Equal(t, -1, cache.Compare(k, upper), "iteration %d", i)
		prev = k
	}
}

func TestGenerateDense(t *testing.T) {
	t.Parallel()

	// Narrowing from above as well.
	lower, upper := cache.Key{0}, cache.Key{1}
	for i := 0; i < 64; i++ {
		k := cache.Generate(lower, upper)
		require.Equal(t, -1, cache.Compare(lower, k))
		require.Equal(t, -1, cache.Compare(k, upper))
		upper = k
	}
}

func TestKeyOfAndClone(t *testing.T) {
	t.Parallel()

	k := cache.KeyOf(42)
	assert.Equal(t, cache.Key{42}, k)

	c := cache.Key{1, 2}.Clone()
	c[0] = 9
	assert.Equal(t, cache.Key{1, 2}, cache.Key{1, 2})
	assert.Equal(t, int64(9), c[0])
}
