package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared across stores and services.
var (
	// ErrNotFound is returned when a referenced event does not exist.
	// Store mutations treat it as a silent no-op instead.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a malformed event is rejected at
	// the mutation boundary.
	ErrInvalidInput = errors.New("invalid input")
)

// EventCategory classifies an event.
type EventCategory string

const (
	CategoryParty    EventCategory = "party"
	CategoryClass    EventCategory = "class"
	CategoryFestival EventCategory = "festival"
	CategoryWorkshop EventCategory = "workshop"
)

// Valid reports whether c is one of the known categories.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryParty, CategoryClass, CategoryFestival, CategoryWorkshop:
		return true
	}
	return false
}

// Location is a free-text address with optional resolved coordinates.
// Coordinates stay nil until enrichment resolves them.
type Location struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Event represents a dance event.
// swagger:model Event
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    EventCategory `json:"category"`
	StartsAt    time.Time     `json:"starts_at"`
	EndsAt      time.Time     `json:"ends_at"`
	Location    Location      `json:"location"`
	Price       float64       `json:"price"`
	OrganizerID string        `json:"organizer_id"`
	// AcceptedLevels empty means no skill restriction.
	AcceptedLevels []SkillLevel `json:"accepted_levels"`
	// Participants holds unique member ids in insertion order.
	Participants []string `json:"participants"`
	// Invited holds member ids in first-invitation order. Invitations are
	// a historical record: an id is never removed when the member becomes
	// a participant.
	Invited     []string `json:"invited"`
	DanceStyles []string `json:"dance_styles"`
}

// Clone returns a deep copy of the event. Snapshots hand out clones so a
// mutation never reaches a previously returned event.
func (e *Event) Clone() *Event {
	out := *e
	out.AcceptedLevels = append([]SkillLevel(nil), e.AcceptedLevels...)
	out.Participants = append([]string(nil), e.Participants...)
	out.Invited = append([]string(nil), e.Invited...)
	out.DanceStyles = append([]string(nil), e.DanceStyles...)
	if e.Location.Latitude != nil {
		lat := *e.Location.Latitude
		out.Location.Latitude = &lat
	}
	if e.Location.Longitude != nil {
		lng := *e.Location.Longitude
		out.Location.Longitude = &lng
	}
	return &out
}

// Validate checks the event submission against the creation/update rules.
// It returns ErrInvalidInput (wrapped) for malformed events.
func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, e.Category)
	}
	if e.EndsAt.Before(e.StartsAt) {
		return fmt.Errorf("%w: end before start", ErrInvalidInput)
	}
	if e.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidInput)
	}
	if e.OrganizerID == "" {
		return fmt.Errorf("%w: organizer is required", ErrInvalidInput)
	}
	for _, l := range e.AcceptedLevels {
		if !l.Valid() {
			return fmt.Errorf("%w: unknown skill level %q", ErrInvalidInput, l)
		}
	}
	return nil
}

// EventStore owns the canonical ordered event collection. All operations
// are synchronous, atomic, and copy-on-write: snapshots handed out earlier
// remain valid and are never mutated in place. Missing ids are silent
// no-ops per the store contract.
type EventStore interface {
	// Upsert replaces an existing event wholesale (same position,
	// last-write-wins) or appends a new one with a fresh id and the
	// creation defaults applied. It returns the stored event and the new
	// whole-collection snapshot.
	Upsert(event *Event) (*Event, []*Event)
	// ToggleRegistration adds memberID to the event's participants if
	// absent, removes it if present. Unknown event or empty member id is
	// a no-op.
	ToggleRegistration(eventID, memberID string) []*Event
	// MergeInvitations appends each id not already invited, preserving
	// first-invitation order, and returns the ids that were newly added.
	MergeInvitations(eventID string, memberIDs []string) []string
	Get(eventID string) (*Event, bool)
	Snapshot() []*Event
}

// FilterCriteria narrows an event snapshot. Zero-valued fields are absent
// and never exclude an event; provided criteria are combined with AND.
type FilterCriteria struct {
	Category EventCategory `json:"category"`
	// Style must be contained in the event's dance styles.
	Style string `json:"style"`
	// Date matches events whose start falls on the same calendar day,
	// compared in the engine's display time zone.
	Date *time.Time `json:"date"`
}

// EventService is the mutation and query boundary over the event store.
type EventService interface {
	// CreateOrUpdateEvent validates the submission and applies it via the
	// store. Malformed events are rejected with ErrInvalidInput and the
	// collection is left unchanged.
	CreateOrUpdateEvent(ctx context.Context, event *Event) (*Event, error)
	// ToggleRegistration registers or unregisters the member. Missing
	// event ids are silent no-ops.
	ToggleRegistration(ctx context.Context, eventID, memberID string) error
	// InviteMembers merges the ids into the event's invited set and sends
	// an invitation email per newly invited member. It returns the newly
	// invited ids and the emails that could not be sent.
	InviteMembers(ctx context.Context, eventID, inviterID string, memberIDs []string) (invited []string, failed []string, err error)
	// ListEvents returns the latest enriched snapshot narrowed by the
	// criteria, in stable collection order.
	ListEvents(ctx context.Context, criteria FilterCriteria) ([]*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
}
