package common

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

// CacheKeyPreview identifies a rendered preview by its inputs. The content is
// hashed so large posts do not become large keys.
func CacheKeyPreview(contentType, baseURL, content string) string {
	h := sha256.New()
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write([]byte(baseURL))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return "preview:" + hex.EncodeToString(h.Sum(nil))
}

func CacheKeyValidation(contentType, content string) string {
	h := sha256.Sum256([]byte(contentType + "\x00" + content))
	return "validation:" + hex.EncodeToString(h[:])
}
