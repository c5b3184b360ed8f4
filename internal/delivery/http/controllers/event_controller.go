package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "dancemeet/internal/delivery/http/helpers"
	"dancemeet/internal/delivery/http/middleware"
	"dancemeet/internal/domain"
)

// EventRequest is the request body for POST /events. An empty id creates a
// new event; a known id replaces the stored one.
type EventRequest struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	StartsAt       time.Time           `json:"starts_at"`
	EndsAt         time.Time           `json:"ends_at"`
	Address        string              `json:"address"`
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`
	Price          float64             `json:"price"`
	AcceptedLevels []domain.SkillLevel `json:"accepted_levels"`
	DanceStyles    []string            `json:"dance_styles"`
}

// Validate implements Validator.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if !domain.EventCategory(e.Category).Valid() {
		errs = append(errs, "category must be one of \"party\", \"class\", \"festival\", \"workshop\"")
	}
	if e.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	return errs
}

// InviteRequest is the request body for POST /events/{eventID}/invitations
type InviteRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	if len(i.MemberIDs) == 0 {
		return []string{"member_ids must not be empty"}
	}
	return nil
}

// InviteResponse is the data payload for POST /events/{eventID}/invitations
type InviteResponse struct {
	Invited      []string `json:"invited"`
	FailedEmails []string `json:"failed_emails"`
}

type EventController struct {
	Logger     *slog.Logger
	Service    domain.EventService
	DisplayLoc *time.Location
}

func NewEventController(logger *slog.Logger, svc domain.EventService, displayLoc *time.Location) *EventController {
	return &EventController{
		Logger:     logger,
		Service:    svc,
		DisplayLoc: displayLoc,
	}
}

// List godoc
// @Summary List events
// @Description List events in stable collection order, narrowed by the optional filters. All given filters must match.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category query string false "Event category (party, class, festival, workshop)"
// @Param style query string false "Dance style the event must include"
// @Param date query string false "Calendar day (YYYY-MM-DD) the event must start on"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	q := r.URL.Query()
	criteria.Category = domain.EventCategory(q.Get("category"))
	criteria.Style = q.Get("style")
	if s := q.Get("date"); s != "" {
		day, err := time.ParseInLocation("2006-01-02", s, c.DisplayLoc)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		criteria.Date = &day
	}

	events, err := c.Service.ListEvents(r.Context(), criteria)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get a single event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Upsert godoc
// @Summary Create or update an event
// @Description Submit an event. An empty id creates a new event; a known id replaces the stored one while keeping its position. The organizer is the authenticated member.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the stored event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Upsert(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	event := &domain.Event{
		ID:          req.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    domain.EventCategory(req.Category),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location: domain.Location{
			Address:   strings.TrimSpace(req.Address),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		Price:          req.Price,
		OrganizerID:    middleware.MemberIDFromContext(r.Context()),
		AcceptedLevels: req.AcceptedLevels,
		DanceStyles:    req.DanceStyles,
	}

	stored, err := c.Service.CreateOrUpdateEvent(r.Context(), event)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, stored)
}

// ToggleRegistration godoc
// @Summary Toggle registration for an event
// @Description Register the authenticated member for the event, or unregister them if already registered. An unknown event id is a silent no-op.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registration [post]
func (c *EventController) ToggleRegistration(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberIDFromContext(r.Context())
	if err := c.Service.ToggleRegistration(r.Context(), r.PathValue("eventID"), memberID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "toggled"})
}

// Invite godoc
// @Summary Invite members to an event
// @Description Merge the member ids into the event's invited set, skipping duplicates, and send an invitation email per newly invited member. An unknown event id is a silent no-op.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body InviteRequest true "Member ids to invite"
// @Success 200 {object} helpers.APIResponse "data contains InviteResponse"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *EventController) Invite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	inviterID := middleware.MemberIDFromContext(r.Context())
	invited, failed, err := c.Service.InviteMembers(r.Context(), r.PathValue("eventID"), inviterID, req.MemberIDs)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	if invited == nil {
		invited = []string{}
	}
	if failed == nil {
		failed = []string{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, InviteResponse{Invited: invited, FailedEmails: failed})
}
