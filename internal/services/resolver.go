package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"dancemeet/internal/domain"
)

type cacheEntry struct {
	coords   *domain.Coordinates
	failedAt time.Time
}

type cachingResolver struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	cooldown time.Duration

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachingResolver returns a Resolver that caches geocoder outcomes by
// the exact address string (no normalization). Successful resolutions are
// cached for the life of the process; failures are cached as an
// unresolved marker and retried only after the cooldown. Concurrent
// resolutions of the same address share a single underlying lookup.
func NewCachingResolver(geocoder domain.Geocoder, logger *slog.Logger, cooldown time.Duration) domain.Resolver {
	return &cachingResolver{
		geocoder: geocoder,
		logger:   logger,
		cooldown: cooldown,
		entries:  make(map[string]cacheEntry),
	}
}

func (r *cachingResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	if coords, err, ok := r.cached(address); ok {
		return coords, err
	}

	v, err, _ := r.group.Do(address, func() (any, error) {
		// A coalesced caller may land here right after the previous
		// flight finished; serve its freshly cached outcome.
		if coords, err, ok := r.cached(address); ok {
			if err != nil {
				return nil, err
			}
			return coords, nil
		}

		coords, err := r.geocoder.Geocode(ctx, address)
		r.mu.Lock()
		defer r.mu.Unlock()
		if err != nil {
			r.entries[address] = cacheEntry{failedAt: time.Now()}
			r.logger.Warn("geocode lookup failed", "address", address, "err", err)
			return nil, domain.ErrUnresolved
		}
		r.entries[address] = cacheEntry{coords: &coords}
		return coords, nil
	})
	if err != nil {
		return domain.Coordinates{}, domain.ErrUnresolved
	}
	return v.(domain.Coordinates), nil
}

// cached returns the cached outcome for the address, if any. A failure
// entry older than the cooldown is evicted so the next caller retries.
func (r *cachingResolver) cached(address string) (domain.Coordinates, error, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[address]
	if !ok {
		return domain.Coordinates{}, nil, false
	}
	if e.coords != nil {
		return *e.coords, nil, true
	}
	if time.Since(e.failedAt) < r.cooldown {
		return domain.Coordinates{}, domain.ErrUnresolved, true
	}
	delete(r.entries, address)
	return domain.Coordinates{}, nil, false
}
