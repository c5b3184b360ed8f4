package domain

import "context"

// FriendStore owns the acting member's friend set. Ordering is insertion
// order, kept only for stable list rendering; ids are unique.
type FriendStore interface {
	// AddFriends appends members whose id is not already present.
	AddFriends(members []*Member)
	// RemoveFriend removes the member if present; no-op otherwise.
	RemoveFriend(memberID string)
	// Reset replaces the whole set (login/logout lifecycle).
	Reset(members []*Member)
	Snapshot() []*Member
}

// SocialService resolves friend intents against the member directory and
// applies them to the friend store.
type SocialService interface {
	// AddFriends resolves each id against the directory; ids that do not
	// resolve are silently dropped.
	AddFriends(ctx context.Context, memberIDs []string) error
	RemoveFriend(ctx context.Context, memberID string) error
	ListFriends(ctx context.Context) ([]*Member, error)
}
