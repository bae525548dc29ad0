package cache

import "time"

// Cache is the contract the fetch client depends on. Values are opaque
// payload bytes; interpretation belongs to the caller.
type Cache interface {
	// Get returns the unexpired value for key, or ok=false when absent.
	Get(key string) ([]byte, bool)
	// Set stores value under key for ttl. Non-positive ttl is a no-op.
	Set(key string, value []byte, ttl time.Duration)
	// Clear removes entries whose key starts with prefix; an empty prefix
	// clears everything. Returns the number of entries removed.
	Clear(prefix string) int
	// Stats reports current size and per-provider entry counts.
	Stats() Stats
}

// Stats summarizes cache occupancy for the introspection surface.
type Stats struct {
	Size        int            `json:"size"`
	PerProvider map[string]int `json:"perProvider"`
}
