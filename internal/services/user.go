package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dancemeet/internal/domain"
)

type userService struct {
	directory   domain.MemberDirectory
	sessionRepo domain.SessionRepository
	friends     domain.FriendStore
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	logger      *slog.Logger

	// Ids of the members seeded as friends for a dancer session.
	seedFriendIDs []string

	mu      sync.RWMutex
	current *domain.Member
	role    domain.Role
}

// NewUserService wires the login stub, session persistence, and profile
// updates. seedFriendIDs are the demo friends a dancer session starts
// with.
func NewUserService(directory domain.MemberDirectory, sessionRepo domain.SessionRepository, friends domain.FriendStore, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, seedFriendIDs []string, logger *slog.Logger) domain.UserService {
	return &userService{
		directory:     directory,
		sessionRepo:   sessionRepo,
		friends:       friends,
		tokenIssuer:   tokenIssuer,
		tokenExpiry:   tokenExpiry,
		seedFriendIDs: seedFriendIDs,
		logger:        logger,
	}
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.Member, domain.Role, error) {
	member, role, err := s.directory.LookupByCredentials(ctx, email, password)
	if err != nil {
		return "", nil, "", domain.ErrMemberNotFound
	}

	token, err := s.tokenIssuer.Issue(member.ID, member.Email, role, s.tokenExpiry)
	if err != nil {
		return "", nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.setCurrent(member, role)
	s.resetFriends(ctx, role)

	if err := s.sessionRepo.Save(ctx, member.ID, role); err != nil {
		// Persistence is best-effort: the session still works, it just
		// won't survive a restart.
		s.logger.Warn("save session failed", "member_id", member.ID, "err", err)
	}
	s.logger.Info("member logged in", "member_id", member.ID, "role", role)
	return token, member, role, nil
}

func (s *userService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.role = ""
	s.mu.Unlock()
	s.friends.Reset(nil)
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// RestoreSession loads the previously saved identity, if any, and
// re-seeds the friend set the way a fresh login would.
func (s *userService) RestoreSession(ctx context.Context) (*domain.Member, domain.Role, error) {
	saved, err := s.sessionRepo.LoadSaved(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("load saved session: %w", err)
	}

	member, err := s.directory.LookupByID(ctx, saved.MemberID)
	if err != nil {
		// Saved identity no longer resolves; treat as no session.
		s.logger.Warn("saved session member unknown", "member_id", saved.MemberID)
		return nil, "", nil
	}

	s.setCurrent(member, saved.Role)
	s.resetFriends(ctx, saved.Role)
	s.logger.Info("session restored", "member_id", member.ID, "role", saved.Role)
	return member, saved.Role, nil
}

func (s *userService) CurrentMember() (*domain.Member, domain.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, "", false
	}
	return s.current.Clone(), s.role, true
}

func (s *userService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Member, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, domain.ErrMemberNotFound
	}
	updated := s.current.Clone()
	if update.DisplayName != nil {
		updated.DisplayName = *update.DisplayName
	}
	if update.SkillLevel != nil {
		if !update.SkillLevel.Valid() {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: unknown skill level %q", domain.ErrInvalidInput, *update.SkillLevel)
		}
		updated.SkillLevel = *update.SkillLevel
	}
	if update.PreferredStyles != nil {
		updated.PreferredStyles = append([]string(nil), update.PreferredStyles...)
	}
	if update.Biography != nil {
		updated.Biography = *update.Biography
	}
	if update.Coordinates != nil {
		c := *update.Coordinates
		updated.Coordinates = &c
	}
	s.current = updated
	s.mu.Unlock()

	if err := s.directory.Update(ctx, updated); err != nil {
		s.logger.Warn("directory update failed", "member_id", updated.ID, "err", err)
	}
	// Notify the persistence collaborator with the full updated record.
	if err := s.sessionRepo.SaveProfile(ctx, updated); err != nil {
		s.logger.Warn("profile persistence failed", "member_id", updated.ID, "err", err)
	}
	return updated.Clone(), nil
}

func (s *userService) setCurrent(member *domain.Member, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = member.Clone()
	s.role = role
}

// resetFriends seeds the demo friends for a dancer session and clears
// the set otherwise, matching the demo login behavior.
func (s *userService) resetFriends(ctx context.Context, role domain.Role) {
	if role != domain.RoleDancer {
		s.friends.Reset(nil)
		return
	}
	members := make([]*domain.Member, 0, len(s.seedFriendIDs))
	for _, id := range s.seedFriendIDs {
		m, err := s.directory.LookupByID(ctx, id)
		if err != nil {
			continue
		}
		members = append(members, m)
	}
	s.friends.Reset(members)
}
