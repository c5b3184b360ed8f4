package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"dancemeet/internal/domain"
)

// profileRepository persists the session-scoped state: the saved member
// identity/role and updated member profiles. There is at most one saved
// session per installation.
type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a SessionRepository backed by postgres.
func NewProfileRepository(db *sql.DB) domain.SessionRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) LoadSaved(ctx context.Context) (*domain.SavedSession, error) {
	query := `
		SELECT member_id, role
		FROM saved_sessions
		WHERE id = 1
	`
	s := &domain.SavedSession{}
	var role string
	err := r.DB.QueryRowContext(ctx, query).Scan(&s.MemberID, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load saved session: %w", err)
	}
	s.Role = domain.Role(role)
	return s, nil
}

func (r *profileRepository) Save(ctx context.Context, memberID string, role domain.Role) error {
	query := `
		INSERT INTO saved_sessions (id, member_id, role, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET member_id = $1, role = $2, updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, memberID, string(role)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *profileRepository) SaveProfile(ctx context.Context, m *domain.Member) error {
	var lat, lng sql.NullFloat64
	if m.Coordinates != nil {
		lat = sql.NullFloat64{Float64: m.Coordinates.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: m.Coordinates.Longitude, Valid: true}
	}
	query := `
		INSERT INTO member_profiles (member_id, email, display_name, skill_level, preferred_styles, biography, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (member_id) DO UPDATE SET
			email = $2, display_name = $3, skill_level = $4,
			preferred_styles = $5, biography = $6, latitude = $7, longitude = $8,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.Email, m.DisplayName, string(m.SkillLevel),
		pq.Array(m.PreferredStyles), m.Biography, lat, lng,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM saved_sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
