package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := New(true)
	etag := c.Set("teams:all", []byte(`[{"id":1}]`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("teams:all")
	require.True(t, ok)
	assert.Equal(t, []byte(`[{"id":1}]`), data)
	assert.Equal(t, etag, gotETag)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	c := New(true, WithClock(func() time.Time { return now }))

	c.Set("fixtures:upcoming", []byte(`[]`), 10*time.Minute)

	_, _, ok := c.Get("fixtures:upcoming")
	require.True(t, ok)

	now = now.Add(10*time.Minute + time.Second)
	_, _, ok = c.Get("fixtures:upcoming")
	assert.False(t, ok, "entry should expire once the TTL elapses")
}

func TestEvictRemovesExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	c := New(true, WithClock(func() time.Time { return now }))

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Hour)

	now = now.Add(30 * time.Minute)
	c.evict()

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Hour)
	// Set still yields an ETag so handlers can serve conditional requests.
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestComputeETagStable(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, a)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"deadbeefdeadbeef"`, etag))
}
