package memory

import (
	"sync"

	"dancemeet/internal/domain"
)

// FriendStore is the acting member's friend set: insertion-ordered and
// deduplicated by member id.
type FriendStore struct {
	mu      sync.RWMutex
	friends []*domain.Member
}

// NewFriendStore returns an empty FriendStore.
func NewFriendStore() *FriendStore {
	return &FriendStore{}
}

// AddFriends appends members whose id is not already present, keeping
// insertion order. Membership is tested by id, not identity.
func (s *FriendStore) AddFriends(members []*domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]struct{}, len(s.friends))
	for _, f := range s.friends {
		present[f.ID] = struct{}{}
	}
	next := make([]*domain.Member, len(s.friends), len(s.friends)+len(members))
	copy(next, s.friends)
	for _, m := range members {
		if m == nil || m.ID == "" {
			continue
		}
		if _, ok := present[m.ID]; ok {
			continue
		}
		present[m.ID] = struct{}{}
		next = append(next, m.Clone())
	}
	s.friends = next
}

// RemoveFriend removes the member if present; no-op otherwise.
func (s *FriendStore) RemoveFriend(memberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.friends {
		if f.ID == memberID {
			next := make([]*domain.Member, 0, len(s.friends)-1)
			next = append(next, s.friends[:i]...)
			next = append(next, s.friends[i+1:]...)
			s.friends = next
			return
		}
	}
}

// Reset replaces the whole set. Used on login, logout, and session restore.
func (s *FriendStore) Reset(members []*domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*domain.Member, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m == nil || m.ID == "" {
			continue
		}
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		next = append(next, m.Clone())
	}
	s.friends = next
}

// Snapshot returns an immutable point-in-time copy of the friend list.
func (s *FriendStore) Snapshot() []*domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Member, len(s.friends))
	copy(out, s.friends)
	return out
}
