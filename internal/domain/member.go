package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for member lookups.
var ErrMemberNotFound = errors.New("member not found")

// SkillLevel is an ordered dance skill level.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Rank returns the position of the level in the beginner < intermediate <
// advanced order. Unknown levels rank below beginner.
func (l SkillLevel) Rank() int {
	switch l {
	case SkillBeginner:
		return 1
	case SkillIntermediate:
		return 2
	case SkillAdvanced:
		return 3
	}
	return 0
}

// Valid reports whether l is one of the known skill levels.
func (l SkillLevel) Valid() bool {
	return l.Rank() > 0
}

// Role distinguishes ordinary members from event organizers. The engine
// applies mutations regardless of role; the presentation layer uses it to
// gate which intents it offers.
type Role string

const (
	RoleDancer       Role = "dancer"
	RoleProfessional Role = "professional"
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Member represents a registered member of the community.
// swagger:model Member
type Member struct {
	ID              string       `json:"id"`
	Email           string       `json:"email"`
	DisplayName     string       `json:"display_name"`
	SkillLevel      SkillLevel   `json:"skill_level"`
	PreferredStyles []string     `json:"preferred_styles"`
	Biography       string       `json:"biography"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
}

// Clone returns a deep copy of the member.
func (m *Member) Clone() *Member {
	out := *m
	out.PreferredStyles = append([]string(nil), m.PreferredStyles...)
	if m.Coordinates != nil {
		c := *m.Coordinates
		out.Coordinates = &c
	}
	return &out
}

// ProfileUpdate is a partial update to a member profile. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	DisplayName     *string      `json:"display_name"`
	SkillLevel      *SkillLevel  `json:"skill_level"`
	PreferredStyles []string     `json:"preferred_styles"`
	Biography       *string      `json:"biography"`
	Coordinates     *Coordinates `json:"coordinates"`
}

// MemberDirectory resolves members by credentials or id. Both lookups are
// synchronous and side-effect-free. Unknown members yield ErrMemberNotFound.
type MemberDirectory interface {
	LookupByCredentials(ctx context.Context, email, password string) (*Member, Role, error)
	LookupByID(ctx context.Context, id string) (*Member, error)
	// Update replaces the stored member record (profile updates).
	Update(ctx context.Context, member *Member) error
}

// PasswordHasher handles hashing and verification of member passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated member.
type TokenIssuer interface {
	Issue(memberID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated member ID.
type TokenVerifier interface {
	Verify(token string) (memberID string, err error)
}

// UserService defines login, session restore, and profile operations.
type UserService interface {
	Login(ctx context.Context, email, password string) (token string, member *Member, role Role, err error)
	Logout(ctx context.Context) error
	// RestoreSession pre-populates the current member and friend set from
	// the persistence collaborator, if it has a saved session.
	RestoreSession(ctx context.Context) (*Member, Role, error)
	CurrentMember() (*Member, Role, bool)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*Member, error)
}
