package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dancemeet/internal/delivery/http/helpers"
	"dancemeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	loginToken   string
	loginMember  *domain.Member
	loginRole    domain.Role
	loginErr     error
	lastEmail    string
	lastPassword string
	logoutErr    error
	loggedOut    bool
	current      *domain.Member
	currentRole  domain.Role
	updateResult *domain.Member
	updateErr    error
	lastUpdate   *domain.ProfileUpdate
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.Member, domain.Role, error) {
	f.lastEmail = email
	f.lastPassword = password
	return f.loginToken, f.loginMember, f.loginRole, f.loginErr
}

func (f *fakeUserService) Logout(ctx context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}

func (f *fakeUserService) RestoreSession(ctx context.Context) (*domain.Member, domain.Role, error) {
	return f.current, f.currentRole, nil
}

func (f *fakeUserService) CurrentMember() (*domain.Member, domain.Role, bool) {
	if f.current == nil {
		return nil, "", false
	}
	return f.current, f.currentRole, true
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Member, error) {
	f.lastUpdate = &update
	return f.updateResult, f.updateErr
}

func TestAuthController_Login(t *testing.T) {
	svc := &fakeUserService{
		loginToken:  "signed-token",
		loginMember: &domain.Member{ID: "1", Email: "dancer@demo.com", DisplayName: "Alex Danseur"},
		loginRole:   domain.RoleDancer,
	}
	c := NewAuthController(testLogger, svc)

	body := `{"email": "Dancer@Demo.com", "password": "demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	c.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dancer@demo.com", svc.lastEmail)
	assert.Equal(t, "demo123", svc.lastPassword)

	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var payload LoginResponse
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "signed-token", payload.Token)
	assert.Equal(t, "Bearer", payload.TokenType)
	assert.Equal(t, domain.RoleDancer, payload.Role)
	require.NotNil(t, payload.Member)
	assert.Equal(t, "Alex Danseur", payload.Member.DisplayName)
}

func TestAuthController_Login_BadCredentials(t *testing.T) {
	svc := &fakeUserService{loginErr: domain.ErrMemberNotFound}
	c := NewAuthController(testLogger, svc)

	body := `{"email": "dancer@demo.com", "password": "wrong"}`
	rec := httptest.NewRecorder()
	c.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
}

func TestAuthController_Login_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password": "demo123"}`},
		{"bad email format", `{"email": "not-an-email", "password": "demo123"}`},
		{"missing password", `{"email": "dancer@demo.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{}
			c := NewAuthController(testLogger, svc)

			rec := httptest.NewRecorder()
			c.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.lastEmail)
		})
	}
}

func TestAuthController_Session(t *testing.T) {
	svc := &fakeUserService{
		current:     &domain.Member{ID: "pro1", DisplayName: "Marie Professeur"},
		currentRole: domain.RoleProfessional,
	}
	c := NewAuthController(testLogger, svc)

	rec := httptest.NewRecorder()
	c.Session(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
}

func TestAuthController_Session_NoneActive(t *testing.T) {
	c := NewAuthController(testLogger, &fakeUserService{})

	rec := httptest.NewRecorder()
	c.Session(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthController_UpdateProfile(t *testing.T) {
	svc := &fakeUserService{updateResult: &domain.Member{ID: "1", DisplayName: "Alex D."}}
	c := NewAuthController(testLogger, svc)

	body := `{"display_name": "Alex D.", "skill_level": "advanced"}`
	rec := httptest.NewRecorder()
	c.UpdateProfile(rec, httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUpdate)
	require.NotNil(t, svc.lastUpdate.DisplayName)
	assert.Equal(t, "Alex D.", *svc.lastUpdate.DisplayName)
	require.NotNil(t, svc.lastUpdate.SkillLevel)
	assert.Equal(t, domain.SkillAdvanced, *svc.lastUpdate.SkillLevel)
	assert.Nil(t, svc.lastUpdate.Biography)
}

func TestAuthController_UpdateProfile_NoSession(t *testing.T) {
	svc := &fakeUserService{updateErr: domain.ErrMemberNotFound}
	c := NewAuthController(testLogger, svc)

	rec := httptest.NewRecorder()
	c.UpdateProfile(rec, httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewBufferString(`{}`)))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthController_Logout(t *testing.T) {
	svc := &fakeUserService{}
	c := NewAuthController(testLogger, svc)

	rec := httptest.NewRecorder()
	c.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.loggedOut)
}
