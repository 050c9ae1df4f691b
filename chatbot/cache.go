package chatbot

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// briefingCacheDays is the number of daily briefings kept
const briefingCacheDays = 7

// BriefingCache keeps generated daily briefings keyed by calendar day
type BriefingCache struct {
	lru *expirable.LRU[string, string]
}

// NewBriefingCache creates a cache whose entries expire after ttl
func NewBriefingCache(ttl time.Duration) *BriefingCache {
	return &BriefingCache{lru: expirable.NewLRU[string, string](briefingCacheDays, nil, ttl)}
}

func briefingKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Get returns the briefing generated on the day of t
func (c *BriefingCache) Get(t time.Time) (string, bool) {
	return c.lru.Get(briefingKey(t))
}

// Add stores the briefing for the day of t
func (c *BriefingCache) Add(t time.Time, briefing string) {
	c.lru.Add(briefingKey(t), briefing)
}

// Len returns the number of cached briefings
func (c *BriefingCache) Len() int {
	return c.lru.Len()
}
