package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "dancemeet/internal/delivery/http/helpers"
	"dancemeet/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(l.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
	Member    *domain.Member `json:"member"`
	Role      domain.Role    `json:"role"`
}

// SessionResponse is the response body for GET /auth/session
type SessionResponse struct {
	Member *domain.Member `json:"member"`
	Role   domain.Role    `json:"role"`
}

// UpdateProfileRequest is the request body for PATCH /profile. Absent fields
// leave the current values unchanged.
type UpdateProfileRequest struct {
	DisplayName     *string             `json:"display_name"`
	SkillLevel      *domain.SkillLevel  `json:"skill_level"`
	PreferredStyles []string            `json:"preferred_styles"`
	Biography       *string             `json:"biography"`
	Coordinates     *domain.Coordinates `json:"coordinates"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in a member
// @Description Authenticate with email and password. Returns a bearer token, the member profile, and the member's role.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains LoginResponse"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	token, member, role, err := c.Service.Login(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		Member:    member,
		Role:      role,
	})
}

// Logout godoc
// @Summary Log out the current member
// @Description Clear the current session and the friend list, and remove the saved session.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Logout(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Session godoc
// @Summary Get the current session
// @Description Return the currently logged-in member and role.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains SessionResponse"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/session [get]
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	member, role, ok := c.Service.CurrentMember()
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "no active session")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Member: member, Role: role})
}

// GetProfile godoc
// @Summary Get the current member's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the member"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /profile [get]
func (c *AuthController) GetProfile(w http.ResponseWriter, r *http.Request) {
	member, _, ok := c.Service.CurrentMember()
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "no active session")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, member)
}

// UpdateProfile godoc
// @Summary Update the current member's profile
// @Description Partial update. Only the fields present in the body are changed.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [patch]
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	member, err := c.Service.UpdateProfile(r.Context(), domain.ProfileUpdate{
		DisplayName:     req.DisplayName,
		SkillLevel:      req.SkillLevel,
		PreferredStyles: req.PreferredStyles,
		Biography:       req.Biography,
		Coordinates:     req.Coordinates,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrMemberNotFound):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "no active session")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, member)
}
