package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dancemeet/internal/domain"
	"dancemeet/internal/store/memory"
)

// fakeSessionRepo records persistence calls.
type fakeSessionRepo struct {
	saved        *domain.SavedSession
	savedProfile *domain.Member
	cleared      bool
	loadErr      error
}

func (f *fakeSessionRepo) LoadSaved(ctx context.Context) (*domain.SavedSession, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.saved == nil {
		return nil, domain.ErrNotFound
	}
	return f.saved, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, memberID string, role domain.Role) error {
	f.saved = &domain.SavedSession{MemberID: memberID, Role: role}
	return nil
}

func (f *fakeSessionRepo) SaveProfile(ctx context.Context, m *domain.Member) error {
	f.savedProfile = m.Clone()
	return nil
}

func (f *fakeSessionRepo) Clear(ctx context.Context) error {
	f.cleared = true
	f.saved = nil
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(memberID, email string, role domain.Role, expiry time.Duration) (string, error) {
	return "token-" + memberID, nil
}

func newTestUserService(dir domain.MemberDirectory, repo domain.SessionRepository, friends domain.FriendStore) domain.UserService {
	return NewUserService(dir, repo, friends, fakeTokenIssuer{}, time.Hour, []string{"2", "3"}, testLogger())
}

func dancerDirectory() *fakeDirectory {
	dir := newFakeDirectory(
		demoMember("dancer1", "dancer@demo.com", "Alex Danseur"),
		demoMember("pro1", "pro@demo.com", "Marie Professeur"),
		demoMember("2", "maria@example.com", "Maria"),
		demoMember("3", "carlos@example.com", "Carlos"),
	)
	dir.roles["pro1"] = domain.RoleProfessional
	return dir
}

func TestUserService_Login_Dancer(t *testing.T) {
	repo := &fakeSessionRepo{}
	friends := memory.NewFriendStore()
	svc := newTestUserService(dancerDirectory(), repo, friends)

	token, member, role, err := svc.Login(context.Background(), "dancer@demo.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "token-dancer1", token)
	assert.Equal(t, "dancer1", member.ID)
	assert.Equal(t, domain.RoleDancer, role)

	assert.Equal(t, []string{"2", "3"}, memberIDs(friends.Snapshot()), "dancer session starts with demo friends")
	require.NotNil(t, repo.saved)
	assert.Equal(t, "dancer1", repo.saved.MemberID)

	current, currentRole, ok := svc.CurrentMember()
	require.True(t, ok)
	assert.Equal(t, "dancer1", current.ID)
	assert.Equal(t, domain.RoleDancer, currentRole)
}

func TestUserService_Login_Professional_NoSeedFriends(t *testing.T) {
	friends := memory.NewFriendStore()
	svc := newTestUserService(dancerDirectory(), &fakeSessionRepo{}, friends)

	_, _, role, err := svc.Login(context.Background(), "pro@demo.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProfessional, role)
	assert.Empty(t, friends.Snapshot())
}

func TestUserService_Login_BadCredentials(t *testing.T) {
	svc := newTestUserService(dancerDirectory(), &fakeSessionRepo{}, memory.NewFriendStore())

	_, _, _, err := svc.Login(context.Background(), "dancer@demo.com", "wrong")
	require.ErrorIs(t, err, domain.ErrMemberNotFound)

	_, _, ok := svc.CurrentMember()
	assert.False(t, ok)
}

func TestUserService_RestoreSession(t *testing.T) {
	repo := &fakeSessionRepo{saved: &domain.SavedSession{MemberID: "dancer1", Role: domain.RoleDancer}}
	friends := memory.NewFriendStore()
	svc := newTestUserService(dancerDirectory(), repo, friends)

	member, role, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "dancer1", member.ID)
	assert.Equal(t, domain.RoleDancer, role)
	assert.Equal(t, []string{"2", "3"}, memberIDs(friends.Snapshot()))
}

func TestUserService_RestoreSession_NoneSaved(t *testing.T) {
	svc := newTestUserService(dancerDirectory(), &fakeSessionRepo{}, memory.NewFriendStore())

	member, role, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, member)
	assert.Empty(t, role)
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := &fakeSessionRepo{}
	dir := dancerDirectory()
	svc := newTestUserService(dir, repo, memory.NewFriendStore())

	_, _, _, err := svc.Login(context.Background(), "dancer@demo.com", "demo123")
	require.NoError(t, err)

	bio := "Nouvelle bio"
	level := domain.SkillAdvanced
	updated, err := svc.UpdateProfile(context.Background(), domain.ProfileUpdate{
		Biography:  &bio,
		SkillLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle bio", updated.Biography)
	assert.Equal(t, domain.SkillAdvanced, updated.SkillLevel)
	assert.Equal(t, "Alex Danseur", updated.DisplayName, "untouched fields survive")

	// Full updated record reaches the persistence collaborator and the
	// directory.
	require.NotNil(t, repo.savedProfile)
	assert.Equal(t, "Nouvelle bio", repo.savedProfile.Biography)
	stored, err := dir.LookupByID(context.Background(), "dancer1")
	require.NoError(t, err)
	assert.Equal(t, domain.SkillAdvanced, stored.SkillLevel)
}

func TestUserService_UpdateProfile_Rejections(t *testing.T) {
	svc := newTestUserService(dancerDirectory(), &fakeSessionRepo{}, memory.NewFriendStore())

	t.Run("no current member", func(t *testing.T) {
		_, err := svc.UpdateProfile(context.Background(), domain.ProfileUpdate{})
		require.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("unknown skill level", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "dancer@demo.com", "demo123")
		require.NoError(t, err)
		bad := domain.SkillLevel("expert")
		_, err = svc.UpdateProfile(context.Background(), domain.ProfileUpdate{SkillLevel: &bad})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_Logout(t *testing.T) {
	repo := &fakeSessionRepo{}
	friends := memory.NewFriendStore()
	svc := newTestUserService(dancerDirectory(), repo, friends)

	_, _, _, err := svc.Login(context.Background(), "dancer@demo.com", "demo123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background()))

	_, _, ok := svc.CurrentMember()
	assert.False(t, ok)
	assert.Empty(t, friends.Snapshot())
	assert.True(t, repo.cleared)
}
