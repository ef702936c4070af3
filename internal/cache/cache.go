package cache

import "time"

// Cache defines the interface for key-value persistence outside Firestore.
// The cart store is its only consumer today.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}
