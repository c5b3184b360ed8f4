package domain

import "context"

// SavedSession is the identity and role a previous session left behind.
type SavedSession struct {
	MemberID string
	Role     Role
}

// SessionRepository is the session-scoped persistence collaborator. On
// engine init it may supply a previously saved member identity and role;
// on profile update the engine hands it the full updated member record.
type SessionRepository interface {
	// LoadSaved returns the saved session, or ErrNotFound when none exists.
	LoadSaved(ctx context.Context) (*SavedSession, error)
	Save(ctx context.Context, memberID string, role Role) error
	SaveProfile(ctx context.Context, member *Member) error
	Clear(ctx context.Context) error
}
