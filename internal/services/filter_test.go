package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dancemeet/internal/domain"
)

func styledEvent(id string, cat domain.EventCategory, start time.Time, styles ...string) *domain.Event {
	return &domain.Event{
		ID:          id,
		Title:       id,
		Category:    cat,
		StartsAt:    start,
		EndsAt:      start.Add(2 * time.Hour),
		DanceStyles: styles,
	}
}

func TestFilterEvents(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	day := time.Date(2026, 9, 4, 0, 0, 0, 0, paris)
	events := []*domain.Event{
		styledEvent("1", domain.CategoryParty, day.Add(20*time.Hour), "Salsa Cubaine", "Bachata"),
		styledEvent("2", domain.CategoryFestival, day.AddDate(0, 0, 3), "Kizomba"),
		styledEvent("3", domain.CategoryClass, day.Add(10*time.Hour), "Bachata"),
		styledEvent("4", domain.CategoryParty, day.AddDate(0, 0, 1), "Bachata"),
	}

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{
			name:     "no criteria keeps everything in order",
			criteria: domain.FilterCriteria{},
			want:     []string{"1", "2", "3", "4"},
		},
		{
			name:     "style membership",
			criteria: domain.FilterCriteria{Style: "Bachata"},
			want:     []string{"1", "3", "4"},
		},
		{
			name:     "category equality",
			criteria: domain.FilterCriteria{Category: domain.CategoryParty},
			want:     []string{"1", "4"},
		},
		{
			name:     "same calendar day regardless of time of day",
			criteria: domain.FilterCriteria{Date: &day},
			want:     []string{"1", "3"},
		},
		{
			name: "criteria combine with AND",
			criteria: domain.FilterCriteria{
				Category: domain.CategoryParty,
				Style:    "Bachata",
				Date:     &day,
			},
			want: []string{"1"},
		},
		{
			name:     "unknown style matches nothing",
			criteria: domain.FilterCriteria{Style: "Tango"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.criteria, paris)
			assert.Equal(t, tt.want, eventIDs(got))
		})
	}
}

func TestFilterEvents_DayComparedInReferenceZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC on Sep 4 is already Sep 5 in Paris.
	lateUTC := time.Date(2026, 9, 4, 23, 30, 0, 0, time.UTC)
	ev := styledEvent("1", domain.CategoryParty, lateUTC, "Bachata")

	sep4 := time.Date(2026, 9, 4, 12, 0, 0, 0, paris)
	sep5 := time.Date(2026, 9, 5, 12, 0, 0, 0, paris)

	assert.Empty(t, FilterEvents([]*domain.Event{ev}, domain.FilterCriteria{Date: &sep4}, paris))
	assert.Len(t, FilterEvents([]*domain.Event{ev}, domain.FilterCriteria{Date: &sep5}, paris), 1)
}
