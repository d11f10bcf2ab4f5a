package usecase

import (
	"context"
	"log"
	"time"
)

// LookupCache stores JSON snapshots of reference lists.
type LookupCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Notifier tells connected clients which lookup families changed.
type Notifier interface {
	LookupsChanged(families ...string)
}

type Lookups struct {
	cache    LookupCache
	notifier Notifier
	ttl      time.Duration
	logger   *log.Logger
}

func NewLookups(cache LookupCache, notifier Notifier, ttl time.Duration, logger *log.Logger) *Lookups {
	if logger == nil {
		logger = log.Default()
	}
	return &Lookups{cache: cache, notifier: notifier, ttl: ttl, logger: logger}
}

// cachedList serves key from the cache, loading and storing it on a miss.
// Cache failures fall through to the loader.
func cachedList[T any](ctx context.Context, l *Lookups, key string, load func(ctx context.Context) ([]T, error)) ([]T, error) {
	if l != nil && l.cache != nil {
		var cached []T
		hit, err := l.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			l.logger.Printf("[Lookup] Cache HIT: %s", key)
			return cached, nil
		}
		l.logger.Printf("[Lookup] Cache MISS: %s", key)
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if l != nil && l.cache != nil {
		if err := l.cache.SetJSON(ctx, key, items, l.ttl); err != nil {
			l.logger.Printf("[Lookup] Cache SET failed key=%s err=%v", key, err)
		}
	}
	return items, nil
}

// Invalidate drops cached entries for the families and notifies clients.
func (l *Lookups) Invalidate(ctx context.Context, families ...Family) {
	if l == nil || len(families) == 0 {
		return
	}

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, string(f))
	}

	if l.cache != nil {
		if err := l.cache.Delete(ctx, keysFor(families)...); err != nil {
			l.logger.Printf("[Lookup] invalidate failed families=%v err=%v", names, err)
		}
		if touchesRecommendations(families) {
			if err := l.cache.DeleteByPattern(ctx, RecommendationKeyPattern); err != nil {
				l.logger.Printf("[Lookup] invalidate failed pattern=%s err=%v", RecommendationKeyPattern, err)
			}
		}
	}

	if l.notifier != nil {
		l.notifier.LookupsChanged(names...)
	}
}
