package memory

import (
	"time"

	"campus-assistant-be/pkg/lexical"
	"campus-assistant-be/pkg/rag"

	"github.com/patrickmn/go-cache"
)

// ResolutionCache memoizes resolved answers keyed by the normalized query.
// Entries expire on their TTL and the whole cache is flushed whenever the
// knowledge base changes, so a stale answer can never outlive an edit.
type ResolutionCache struct {
	cache *cache.Cache
}

func NewResolutionCache(ttl time.Duration) *ResolutionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := cache.New(ttl, 10*time.Minute)
	return &ResolutionCache{
		cache: c,
	}
}

func (r *ResolutionCache) Get(query string) (*rag.Result, bool) {
	if x, found := r.cache.Get(lexical.Normalize(query)); found {
		return x.(*rag.Result), true
	}
	return nil, false
}

func (r *ResolutionCache) Set(query string, result *rag.Result) {
	r.cache.Set(lexical.Normalize(query), result, cache.DefaultExpiration)
}

func (r *ResolutionCache) Flush() {
	r.cache.Flush()
}
