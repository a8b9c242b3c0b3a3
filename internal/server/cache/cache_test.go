package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetch(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	compute := func() any {
		calls++
		return []int{1, 2}
	}

	v, hit := c.Fetch("businesses:", compute)
	assert.False(t, hit)
	assert.Equal(t, []int{1, 2}, v)

	v, hit = c.Fetch("businesses:", compute)
	assert.True(t, hit)
	assert.Equal(t, []int{1, 2}, v)
	assert.Equal(t, 1, calls)

	assert.Equal(t, Stats{Items: 1, Hits: 1, Misses: 1}, c.Stats())
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Fetch("stats", func() any { return 3 })
	c.Fetch("deals", func() any { return 4 })
	assert.Equal(t, 2, c.ItemCount())

	c.Invalidate()
	assert.Zero(t, c.ItemCount())
	assert.Equal(t, int64(1), c.Stats().Invalidations)

	_, hit := c.Fetch("stats", func() any { return 5 })
	assert.False(t, hit)
}

func TestFetchDoesNotStoreAcrossInvalidate(t *testing.T) {
	c := New(time.Minute)
	data := "old"

	v, hit := c.Fetch("businesses:", func() any {
		rendered := data
		data = "new"
		c.Invalidate()
		return rendered
	})
	assert.False(t, hit)
	assert.Equal(t, "old", v)
	assert.Zero(t, c.ItemCount())

	v, hit = c.Fetch("businesses:", func() any { return data })
	assert.False(t, hit)
	assert.Equal(t, "new", v)

	v, hit = c.Fetch("businesses:", func() any { return "unused" })
	assert.True(t, hit)
	assert.Equal(t, "new", v)
}

func TestEntriesExpire(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Fetch("k", func() any { return 1 })
	assert.Eventually(t, func() bool {
		_, hit := c.Fetch("k", func() any { return 2 })
		return !hit
	}, time.Second, 5*time.Millisecond)
}
