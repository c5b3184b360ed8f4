package services

import (
	"context"
	"log/slog"

	"dancemeet/internal/domain"
)

type socialService struct {
	directory domain.MemberDirectory
	friends   domain.FriendStore
	logger    *slog.Logger
}

// NewSocialService returns the friend-graph mutation boundary.
func NewSocialService(directory domain.MemberDirectory, friends domain.FriendStore, logger *slog.Logger) domain.SocialService {
	return &socialService{directory: directory, friends: friends, logger: logger}
}

// AddFriends resolves each id against the directory and appends the
// resolved members that are not already friends. Ids that do not resolve
// are dropped silently, per the friend-add contract.
func (s *socialService) AddFriends(ctx context.Context, memberIDs []string) error {
	resolved := make([]*domain.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		m, err := s.directory.LookupByID(ctx, id)
		if err != nil {
			s.logger.Debug("friend id dropped", "member_id", id, "err", err)
			continue
		}
		resolved = append(resolved, m)
	}
	s.friends.AddFriends(resolved)
	return nil
}

func (s *socialService) RemoveFriend(ctx context.Context, memberID string) error {
	s.friends.RemoveFriend(memberID)
	return nil
}

func (s *socialService) ListFriends(ctx context.Context) ([]*domain.Member, error) {
	return s.friends.Snapshot(), nil
}
