package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dancemeet/internal/domain"
)

// fakeResolver resolves from a fixed table, optionally with per-address
// delays to force out-of-order completion.
type fakeResolver struct {
	coords map[string]domain.Coordinates
	delays map[string]time.Duration

	mu       sync.Mutex
	inFlight int
	maxSeen  int
	calls    atomic.Int64
}

func (r *fakeResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.inFlight++
	if r.inFlight > r.maxSeen {
		r.maxSeen = r.inFlight
	}
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.inFlight--
		r.mu.Unlock()
	}()

	if d, ok := r.delays[address]; ok {
		time.Sleep(d)
	}
	c, ok := r.coords[address]
	if !ok {
		return domain.Coordinates{}, domain.ErrUnresolved
	}
	return c, nil
}

func unlocated(id, address string) *domain.Event {
	return &domain.Event{
		ID:       id,
		Title:    id,
		Category: domain.CategoryParty,
		Location: domain.Location{Address: address},
	}
}

func located(id string, lat, lng float64) *domain.Event {
	return &domain.Event{
		ID:       id,
		Title:    id,
		Category: domain.CategoryParty,
		Location: domain.Location{Address: id + " street", Latitude: &lat, Longitude: &lng},
	}
}

func eventIDs(events []*domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestEnricher_OrderPreservedAcrossCompletionOrder(t *testing.T) {
	r := &fakeResolver{
		coords: map[string]domain.Coordinates{
			"slow": {Latitude: 1, Longitude: 1},
			"fast": {Latitude: 2, Longitude: 2},
		},
		delays: map[string]time.Duration{"slow": 50 * time.Millisecond},
	}
	e := NewEnricher(r, testLogger(), 4)

	in := []*domain.Event{
		unlocated("a", "slow"),
		located("b", 9, 9),
		unlocated("c", "fast"),
	}
	snap := e.Enrich(context.Background(), in)

	require.Len(t, snap.Events, 3)
	assert.Equal(t, []string{"a", "b", "c"}, eventIDs(snap.Events))
	assert.Equal(t, 1.0, *snap.Events[0].Location.Latitude)
	assert.Equal(t, 9.0, *snap.Events[1].Location.Latitude)
	assert.Equal(t, 2.0, *snap.Events[2].Location.Latitude)
}

func TestEnricher_AlreadyLocatedPassThrough(t *testing.T) {
	r := &fakeResolver{coords: map[string]domain.Coordinates{}}
	e := NewEnricher(r, testLogger(), 2)

	in := []*domain.Event{located("a", 1, 2), located("b", 3, 4)}
	snap := e.Enrich(context.Background(), in)

	assert.Equal(t, int64(0), r.calls.Load(), "no lookups for located events")
	assert.Same(t, in[0], snap.Events[0], "pass through unchanged")
	assert.Same(t, in[1], snap.Events[1])
}

func TestEnricher_FailureIsIndependent(t *testing.T) {
	r := &fakeResolver{
		coords: map[string]domain.Coordinates{"good": {Latitude: 48.85, Longitude: 2.35}},
	}
	e := NewEnricher(r, testLogger(), 2)

	in := []*domain.Event{
		unlocated("a", "no-such-place"),
		unlocated("b", "good"),
	}
	snap := e.Enrich(context.Background(), in)

	require.Len(t, snap.Events, 2)
	assert.False(t, snap.Events[0].Location.HasCoordinates(), "failed lookup leaves coordinates absent")
	require.True(t, snap.Events[1].Location.HasCoordinates())
	assert.Equal(t, 48.85, *snap.Events[1].Location.Latitude)
}

func TestEnricher_OnlyCoordinatesChange(t *testing.T) {
	r := &fakeResolver{coords: map[string]domain.Coordinates{"123 Main St": {Latitude: 48.85, Longitude: 2.35}}}
	e := NewEnricher(r, testLogger(), 1)

	orig := unlocated("e", "123 Main St")
	orig.Description = "desc"
	orig.Participants = []string{"m1"}
	orig.DanceStyles = []string{"Bachata"}

	snap := e.Enrich(context.Background(), []*domain.Event{orig})

	got := snap.Events[0]
	assert.Equal(t, 48.85, *got.Location.Latitude)
	assert.Equal(t, 2.35, *got.Location.Longitude)
	assert.Equal(t, orig.Description, got.Description)
	assert.Equal(t, orig.Participants, got.Participants)
	assert.Equal(t, orig.DanceStyles, got.DanceStyles)
	assert.Equal(t, orig.Location.Address, got.Location.Address)
	assert.False(t, orig.Location.HasCoordinates(), "input event not mutated")
}

func TestEnricher_BoundedConcurrency(t *testing.T) {
	coords := make(map[string]domain.Coordinates)
	delays := make(map[string]time.Duration)
	var in []*domain.Event
	addresses := []string{"a1", "a2", "a3", "a4", "a5", "a6"}
	for _, a := range addresses {
		coords[a] = domain.Coordinates{Latitude: 1, Longitude: 1}
		delays[a] = 20 * time.Millisecond
		in = append(in, unlocated(a, a))
	}
	r := &fakeResolver{coords: coords, delays: delays}
	e := NewEnricher(r, testLogger(), 2)

	e.Enrich(context.Background(), in)

	assert.LessOrEqual(t, r.maxSeen, 2, "at most maxInFlight lookups at once")
	assert.Equal(t, int64(len(addresses)), r.calls.Load())
}

func TestEnricher_Staleness(t *testing.T) {
	r := &fakeResolver{coords: map[string]domain.Coordinates{}}
	e := NewEnricher(r, testLogger(), 1)

	first := e.Enrich(context.Background(), nil)
	second := e.Enrich(context.Background(), nil)

	assert.Greater(t, second.Seq, first.Seq)
	assert.False(t, e.Latest(first), "superseded pass is stale")
	assert.True(t, e.Latest(second))
}
