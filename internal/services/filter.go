package services

import (
	"time"

	"dancemeet/internal/domain"
)

// FilterEvents returns the ordered subsequence of events matching every
// provided criterion. Zero-valued criteria are absent and never exclude
// an event. Date matching compares calendar days in loc, so two
// timestamps on the same day in that zone match regardless of
// time-of-day.
func FilterEvents(events []*domain.Event, criteria domain.FilterCriteria, loc *time.Location) []*domain.Event {
	if loc == nil {
		loc = time.Local
	}
	out := make([]*domain.Event, 0, len(events))
	for _, ev := range events {
		if criteria.Category != "" && ev.Category != criteria.Category {
			continue
		}
		if criteria.Style != "" && !containsStyle(ev.DanceStyles, criteria.Style) {
			continue
		}
		if criteria.Date != nil && !sameDay(ev.StartsAt, *criteria.Date, loc) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func containsStyle(styles []string, style string) bool {
	for _, s := range styles {
		if s == style {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
