package controllers

import (
	"log/slog"
	"net/http"

	h "dancemeet/internal/delivery/http/helpers"
	"dancemeet/internal/domain"
)

// AddFriendsRequest is the request body for POST /friends
type AddFriendsRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// Validate implements Validator.
func (a AddFriendsRequest) Validate() []string {
	if len(a.MemberIDs) == 0 {
		return []string{"member_ids must not be empty"}
	}
	return nil
}

type SocialController struct {
	Logger  *slog.Logger
	Service domain.SocialService
}

func NewSocialController(logger *slog.Logger, svc domain.SocialService) *SocialController {
	return &SocialController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List friends
// @Description List the current member's friends in the order they were first added.
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the friend list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friends [get]
func (c *SocialController) List(w http.ResponseWriter, r *http.Request) {
	friends, err := c.Service.ListFriends(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, friends)
}

// Add godoc
// @Summary Add friends
// @Description Add the given members to the friend list. Ids that do not resolve in the directory are silently dropped; duplicates are skipped.
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddFriendsRequest true "Member ids to add"
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friends [post]
func (c *SocialController) Add(w http.ResponseWriter, r *http.Request) {
	var req AddFriendsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.AddFriends(r.Context(), req.MemberIDs); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "added"})
}

// Remove godoc
// @Summary Remove a friend
// @Description Remove the member from the friend list. Removing an id that is not in the list is a silent no-op.
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID"
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /friends/{memberID} [delete]
func (c *SocialController) Remove(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.RemoveFriend(r.Context(), r.PathValue("memberID")); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "removed"})
}
