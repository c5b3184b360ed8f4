package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"dancemeet/internal/domain"
)

// EnrichedSnapshot is the outcome of one enrichment pass. Seq is the
// monotonic sequence number of the pass; a snapshot whose Seq is below
// the newest issued one is stale and must be discarded, not committed
// over newer state.
type EnrichedSnapshot struct {
	Seq    uint64
	Events []*domain.Event
}

// Enricher fills missing event coordinates from the resolver. One pass
// scatters bounded-concurrency lookups over the events lacking
// coordinates and gathers results back by original index, so the output
// has the same length and order as the input regardless of completion
// order.
type Enricher struct {
	resolver    domain.Resolver
	logger      *slog.Logger
	maxInFlight int
	seq         atomic.Uint64
}

// NewEnricher returns an Enricher with at most maxInFlight concurrent
// resolver calls per pass.
func NewEnricher(resolver domain.Resolver, logger *slog.Logger, maxInFlight int) *Enricher {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Enricher{resolver: resolver, logger: logger, maxInFlight: maxInFlight}
}

// Enrich produces an order-preserving enriched snapshot. Events that
// already have coordinates pass through unchanged. A failing lookup
// leaves its event untouched and never delays the others; the pass
// returns once every outstanding lookup has settled.
func (p *Enricher) Enrich(ctx context.Context, events []*domain.Event) *EnrichedSnapshot {
	seq := p.seq.Add(1)

	out := make([]*domain.Event, len(events))
	copy(out, events)

	g := new(errgroup.Group)
	g.SetLimit(p.maxInFlight)
	for i, ev := range events {
		if ev.Location.HasCoordinates() {
			continue
		}
		g.Go(func() error {
			coords, err := p.resolver.Resolve(ctx, ev.Location.Address)
			if err != nil {
				// Degraded, not fatal: the event keeps its absent
				// coordinates.
				p.logger.Debug("enrichment skipped", "event_id", ev.ID, "address", ev.Location.Address, "err", err)
				return nil
			}
			enriched := ev.Clone()
			lat, lng := coords.Latitude, coords.Longitude
			enriched.Location.Latitude = &lat
			enriched.Location.Longitude = &lng
			out[i] = enriched
			return nil
		})
	}
	// Workers only write to distinct indices and never return errors.
	_ = g.Wait()

	return &EnrichedSnapshot{Seq: seq, Events: out}
}

// Latest reports whether the snapshot is still the newest pass issued.
// Stale snapshots are discarded at the presentation boundary.
func (p *Enricher) Latest(s *EnrichedSnapshot) bool {
	return s != nil && s.Seq == p.seq.Load()
}
