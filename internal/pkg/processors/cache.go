package processors

import (
	"hash/fnv"
	"nar-match/internal/pkg/ast/typed"
	"strconv"
	"sync"

	"github.com/golang/groupcache/lru"
)

// VerdictCache remembers analysis results by the content of a match: the
// scrutinee type, the arm patterns and which arms are guarded. Locations are
// not part of the key; cached verdicts are re-attached to the match at hand.
type VerdictCache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	hits   int
	misses int
}

func NewVerdictCache(size int) *VerdictCache {
	return &VerdictCache{lru: lru.New(size)}
}

func (c *VerdictCache) get(key uint64) (*verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.lru.Get(key); ok {
		c.hits++
		return v.(*verdict), true
	}
	c.misses++
	return nil, false
}

func (c *VerdictCache) put(key uint64, v *verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, v)
}

func (c *VerdictCache) Stats() (hits int, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *VerdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// contentKey hashes what the verdict of a match depends on.
func contentKey(match *typed.Match) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(typed.Signature(match.Scrutinee)))
	for _, arm := range match.Arms {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(arm.Pattern.String()))
		_, _ = h.Write([]byte(strconv.FormatBool(arm.HasGuard())))
	}
	return h.Sum64()
}
