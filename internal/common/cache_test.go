package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	// Set up the test environment
	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")

	if _, ok := cache.Get("key"); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_SetWithExpiration(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to expire")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}

func TestCacheKeyPreview(t *testing.T) {
	key := CacheKeyPreview("text/plain", "", "hello")

	assert.True(t, strings.HasPrefix(key, "preview:"))
	assert.Equal(t, key, CacheKeyPreview("text/plain", "", "hello"))
	assert.NotEqual(t, key, CacheKeyPreview("application/xhtml+xml", "", "hello"))
	assert.NotEqual(t, key, CacheKeyPreview("text/plain", "http://example.org/", "hello"))
	assert.NotEqual(t, CacheKeyPreview("a", "b", "c"), CacheKeyPreview("a", "", "bc"))
}

func TestCacheKeyValidation(t *testing.T) {
	key := CacheKeyValidation("text/plain", "hello")

	assert.True(t, strings.HasPrefix(key, "validation:"))
	assert.NotEqual(t, key, CacheKeyValidation("text/markdown", "hello"))
}
