package db

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Monthly cache keys are tracked per user in a concurrent registry so the
// write path can invalidate every monthly entry for a user without knowing
// which filters have been cached.
var (
	Cache            *ristretto.Cache
	MonthlyCacheKeys = struct {
		sync.RWMutex
		m map[string]map[string]struct{}
	}{m: make(map[string]map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func RecentCacheKey(userID string) string {
	return "recent:" + userID
}

func MonthlyCacheKey(userID, filter string) string {
	return fmt.Sprintf("monthly:%s:%s", userID, filter)
}

// GetCached returns the JSON payload stored under cacheKey, if present and
// unexpired. Non-string values are treated as absent.
func GetCached(cacheKey string) (string, bool) {
	value, found := Cache.Get(cacheKey)
	if !found {
		return "", false
	}
	payload, ok := value.(string)
	if !ok {
		return "", false
	}
	return payload, true
}

func SetRecentCache(userID, payload string, ttl time.Duration) {
	Cache.SetWithTTL(RecentCacheKey(userID), payload, 1, ttl)
}

func SetMonthlyCache(userID, filter, payload string, ttl time.Duration) {
	cacheKey := MonthlyCacheKey(userID, filter)
	MonthlyCacheKeys.Lock()
	if MonthlyCacheKeys.m[userID] == nil {
		MonthlyCacheKeys.m[userID] = make(map[string]struct{})
	}
	MonthlyCacheKeys.m[userID][cacheKey] = struct{}{}
	MonthlyCacheKeys.Unlock()
	Cache.SetWithTTL(cacheKey, payload, 1, ttl)
}

// DelCache drops a single entry, e.g. after finding a corrupt payload.
func DelCache(cacheKey string) {
	Cache.Del(cacheKey)
}

// InvalidateUserCaches evicts the recent-transactions entry and every monthly
// entry for the user. The write path calls this after a successful persist.
func InvalidateUserCaches(userID string) {
	Cache.Del(RecentCacheKey(userID))

	MonthlyCacheKeys.Lock()
	for cacheKey := range MonthlyCacheKeys.m[userID] {
		Cache.Del(cacheKey)
	}
	delete(MonthlyCacheKeys.m, userID)
	MonthlyCacheKeys.Unlock()
}
