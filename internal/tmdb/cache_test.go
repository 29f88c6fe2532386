package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newCache(time.Hour)
	c.now = func() time.Time { return now }

	c.set("movie/1", &Movie{ID: 1})
	got, ok := c.get("movie/1")
	assert.True(t, ok)
	assert.Equal(t, int64(1), got.ID)

	now = now.Add(2 * time.Hour)
	_, ok = c.get("movie/1")
	assert.False(t, ok)
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := newCache(0)
	c.set("movie/1", &Movie{ID: 1})
	_, ok := c.get("movie/1")
	assert.False(t, ok)
}
