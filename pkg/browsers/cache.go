package browsers

import (
	"strings"

	"github.com/arthur-debert/targetenv/pkg/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingResolver memoizes another Resolver. Errors are not cached.
type CachingResolver struct {
	inner Resolver
	cache *lru.Cache[string, []Match]
}

// NewCachingResolver wraps inner with an LRU cache holding up to size query sets.
func NewCachingResolver(inner Resolver, size int) (*CachingResolver, error) {
	cache, err := lru.New[string, []Match](size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create query cache")
	}
	return &CachingResolver{inner: inner, cache: cache}, nil
}

// Resolve implements Resolver.
func (c *CachingResolver) Resolve(queries []string) ([]Match, error) {
	key := strings.Join(queries, "\x00")
	if cached, ok := c.cache.Get(key); ok {
		return append([]Match(nil), cached...), nil
	}

	matches, err := c.inner.Resolve(queries)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append([]Match(nil), matches...))
	return matches, nil
}

// Len reports how many query sets are cached.
func (c *CachingResolver) Len() int {
	return c.cache.Len()
}
