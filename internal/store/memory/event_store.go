package memory

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"dancemeet/internal/domain"
)

// EventStore is the canonical in-memory event collection. Mutations are
// copy-on-write: the changed event is cloned and a new backing slice is
// built, so snapshots handed out earlier are never touched. A single
// interactive writer is assumed; the lock only protects snapshot reads
// taken while the enrichment pipeline is in flight.
type EventStore struct {
	mu       sync.RWMutex
	events   []*domain.Event
	fallback domain.Coordinates
}

// NewEventStore returns an EventStore seeded with the given events.
// fallback is assigned to newly created events that have no coordinates.
func NewEventStore(fallback domain.Coordinates, seed ...*domain.Event) *EventStore {
	s := &EventStore{fallback: fallback}
	for _, ev := range seed {
		s.events = append(s.events, ev.Clone())
	}
	return s
}

// Upsert replaces an existing event wholesale (last-write-wins, same
// position) or appends a new one. Creation assigns a fresh id, resets
// participants to empty, defaults unset dance styles to empty, and fills
// missing coordinates with the configured fallback.
func (s *EventStore) Upsert(event *domain.Event) (*domain.Event, []*domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := event.Clone()
	if i := s.indexOf(stored.ID); i >= 0 {
		next := make([]*domain.Event, len(s.events))
		copy(next, s.events)
		next[i] = stored
		s.events = next
		return stored.Clone(), s.snapshotLocked()
	}

	stored.ID = s.freshID()
	stored.Participants = []string{}
	if stored.Invited == nil {
		stored.Invited = []string{}
	}
	if stored.DanceStyles == nil {
		stored.DanceStyles = []string{}
	}
	if !stored.Location.HasCoordinates() {
		lat, lng := s.fallback.Latitude, s.fallback.Longitude
		stored.Location.Latitude = &lat
		stored.Location.Longitude = &lng
	}

	next := make([]*domain.Event, len(s.events), len(s.events)+1)
	copy(next, s.events)
	s.events = append(next, stored)
	return stored.Clone(), s.snapshotLocked()
}

// ToggleRegistration adds the member to the event's participants if absent
// and removes it if present. Unknown event ids and empty member ids are
// silent no-ops.
func (s *EventStore) ToggleRegistration(eventID, memberID string) []*domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(eventID)
	if i < 0 || memberID == "" {
		return s.snapshotLocked()
	}

	updated := s.events[i].Clone()
	found := false
	for j, id := range updated.Participants {
		if id == memberID {
			updated.Participants = append(updated.Participants[:j], updated.Participants[j+1:]...)
			found = true
			break
		}
	}
	if !found {
		updated.Participants = append(updated.Participants, memberID)
	}

	next := make([]*domain.Event, len(s.events))
	copy(next, s.events)
	next[i] = updated
	s.events = next
	return s.snapshotLocked()
}

// MergeInvitations appends each id not already in the event's invited set,
// preserving first-invitation order. It returns the newly added ids.
// Invitations are append-only: ids stay even after the member registers.
func (s *EventStore) MergeInvitations(eventID string, memberIDs []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(eventID)
	if i < 0 {
		return nil
	}

	updated := s.events[i].Clone()
	present := make(map[string]struct{}, len(updated.Invited))
	for _, id := range updated.Invited {
		present[id] = struct{}{}
	}

	var added []string
	for _, id := range memberIDs {
		if id == "" {
			continue
		}
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		updated.Invited = append(updated.Invited, id)
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil
	}

	next := make([]*domain.Event, len(s.events))
	copy(next, s.events)
	next[i] = updated
	s.events = next
	return added
}

// Get returns a copy of the event with the given id.
func (s *EventStore) Get(eventID string) (*domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(eventID); i >= 0 {
		return s.events[i].Clone(), true
	}
	return nil, false
}

// Snapshot returns an immutable point-in-time copy of the collection.
func (s *EventStore) Snapshot() []*domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *EventStore) snapshotLocked() []*domain.Event {
	out := make([]*domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *EventStore) indexOf(eventID string) int {
	if eventID == "" {
		return -1
	}
	for i, ev := range s.events {
		if ev.ID == eventID {
			return i
		}
	}
	return -1
}

const eventIDBytes = 8

// freshID generates a random hex id that does not collide with any
// existing event id. Caller holds the lock.
func (s *EventStore) freshID() string {
	for {
		b := make([]byte, eventIDBytes)
		if _, err := rand.Read(b); err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		id := hex.EncodeToString(b)
		if s.indexOf(id) < 0 {
			return id
		}
	}
}
