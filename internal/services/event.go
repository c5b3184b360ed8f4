package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"dancemeet/internal/domain"
)

type eventService struct {
	store        domain.EventStore
	directory    domain.MemberDirectory
	emailService domain.EmailService
	enricher     *Enricher
	logger       *slog.Logger
	displayLoc   *time.Location

	// latest holds the newest committed enrichment pass. Stale passes
	// lose the commit race and are dropped.
	latest atomic.Pointer[EnrichedSnapshot]
}

// NewEventService wires the event store, member directory, enrichment
// pipeline, and invitation emails into the event mutation/query boundary.
func NewEventService(store domain.EventStore, directory domain.MemberDirectory, emailService domain.EmailService, enricher *Enricher, logger *slog.Logger, displayLoc *time.Location) domain.EventService {
	return &eventService{
		store:        store,
		directory:    directory,
		emailService: emailService,
		enricher:     enricher,
		logger:       logger,
		displayLoc:   displayLoc,
	}
}

func (s *eventService) CreateOrUpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: event is nil", domain.ErrInvalidInput)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	stored, _ := s.store.Upsert(event)
	s.logger.Info("event upserted", "event_id", stored.ID, "title", stored.Title)
	return stored, nil
}

func (s *eventService) ToggleRegistration(ctx context.Context, eventID, memberID string) error {
	// Missing event ids and empty member ids are silent no-ops inside
	// the store.
	s.store.ToggleRegistration(eventID, memberID)
	return nil
}

func (s *eventService) InviteMembers(ctx context.Context, eventID, inviterID string, memberIDs []string) ([]string, []string, error) {
	event, ok := s.store.Get(eventID)
	if !ok {
		return nil, nil, nil
	}

	invited := s.store.MergeInvitations(eventID, memberIDs)
	if len(invited) == 0 {
		return nil, nil, nil
	}

	inviterName := "Un membre"
	if inviter, err := s.directory.LookupByID(ctx, inviterID); err == nil {
		inviterName = inviter.DisplayName
	}

	var failed []string
	for _, id := range invited {
		m, err := s.directory.LookupByID(ctx, id)
		if err != nil {
			continue
		}
		data := &domain.EventInvitationEmailData{
			Email:       m.Email,
			InviterName: inviterName,
			EventTitle:  event.Title,
			EventDate:   event.StartsAt.In(s.displayLoc).Format("02/01/2006 15:04"),
			Address:     event.Location.Address,
		}
		if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
			s.logger.Warn("invitation email failed", "event_id", eventID, "to", m.Email, "err", err)
			failed = append(failed, m.Email)
		}
	}
	return invited, failed, nil
}

func (s *eventService) ListEvents(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Event, error) {
	snap := s.enricher.Enrich(ctx, s.store.Snapshot())
	s.commit(snap)

	current := s.latest.Load()
	if current == nil {
		current = snap
	}
	return FilterEvents(current.Events, criteria, s.displayLoc), nil
}

// commit installs the snapshot unless a newer pass already landed
// (last-snapshot-wins, keyed by the pass sequence number).
func (s *eventService) commit(snap *EnrichedSnapshot) {
	for {
		cur := s.latest.Load()
		if cur != nil && cur.Seq >= snap.Seq {
			s.logger.Debug("stale enrichment discarded", "seq", snap.Seq, "current", cur.Seq)
			return
		}
		if s.latest.CompareAndSwap(cur, snap) {
			return
		}
	}
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, ok := s.store.Get(eventID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return event, nil
}
