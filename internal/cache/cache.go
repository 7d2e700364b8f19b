package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/benchsplit/internal/model"
)

// Cache memoizes split results by input content
type Cache interface {
	Get(key string) (*model.SplitResult, bool)
	Set(key string, value *model.SplitResult, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from benchmark log content
func CacheKey(content string) string {
	hash := sha256.Sum256([]byte(content))
	return "benchsplit:v1:" + hex.EncodeToString(hash[:])
}
