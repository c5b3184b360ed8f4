package memory

import (
	"fmt"
	"time"

	"dancemeet/internal/domain"
)

// Demo account credentials. The demo login is a stub lookup, not a
// security boundary.
const (
	DemoDancerEmail       = "dancer@demo.com"
	DemoProfessionalEmail = "pro@demo.com"
	DemoPassword          = "demo123"
)

// DemoFriendIDs are the members a freshly logged-in dancer starts with.
var DemoFriendIDs = []string{"2", "3", "4"}

func coords(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Latitude: lat, Longitude: lng}
}

// SeedDirectory fills the directory with the demo accounts and demo
// friends.
func SeedDirectory(d *Directory) error {
	dancer := &domain.Member{
		ID:              "dancer1",
		Email:           DemoDancerEmail,
		DisplayName:     "Alex Danseur",
		SkillLevel:      domain.SkillIntermediate,
		PreferredStyles: []string{"Salsa Cubaine", "Bachata"},
		Biography:       "Passionné de danses latines depuis 3 ans",
		Coordinates:     coords(48.8566, 2.3522),
	}
	if err := d.AddAccount(dancer, domain.RoleDancer, DemoPassword); err != nil {
		return fmt.Errorf("seed dancer account: %w", err)
	}

	pro := &domain.Member{
		ID:              "pro1",
		Email:           DemoProfessionalEmail,
		DisplayName:     "Marie Professeur",
		SkillLevel:      domain.SkillAdvanced,
		PreferredStyles: []string{"Salsa Cubaine", "Salsa Porto", "Bachata", "Kizomba"},
		Biography:       "Professeur de danse et organisatrice d'événements",
		Coordinates:     coords(48.8566, 2.3522),
	}
	if err := d.AddAccount(pro, domain.RoleProfessional, DemoPassword); err != nil {
		return fmt.Errorf("seed professional account: %w", err)
	}

	d.AddMember(&domain.Member{
		ID:              "2",
		Email:           "maria@example.com",
		DisplayName:     "Maria Rodriguez",
		SkillLevel:      domain.SkillIntermediate,
		PreferredStyles: []string{"Salsa Cubaine", "Bachata"},
		Biography:       "Passionnée de danses latines depuis 5 ans",
	})
	d.AddMember(&domain.Member{
		ID:              "3",
		Email:           "carlos@example.com",
		DisplayName:     "Carlos Mendoza",
		SkillLevel:      domain.SkillAdvanced,
		PreferredStyles: []string{"Salsa Porto", "Bachata"},
		Biography:       "Professeur de danse et amateur de musique latine",
	})
	d.AddMember(&domain.Member{
		ID:              "4",
		Email:           "sophie@example.com",
		DisplayName:     "Sophie Martin",
		SkillLevel:      domain.SkillBeginner,
		PreferredStyles: []string{"Kizomba", "Bachata"},
		Biography:       "Débutante enthousiaste en danses latines",
	})
	return nil
}

// SeedEvents returns the demo event collection. Start/end dates are
// derived from now so the demo data is always current.
func SeedEvents(now time.Time) []*domain.Event {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	lat1, lng1 := 48.8566, 2.3522
	lat2, lng2 := 48.8584, 2.2945
	lat3, lng3 := 48.8738, 2.2950

	return []*domain.Event{
		{
			ID:          "1",
			Title:       "Soirée Salsa au Club Tropicana",
			Description: "Rejoignez-nous pour une soirée de musique et de danse salsa !",
			Category:    domain.CategoryParty,
			StartsAt:    today.Add(20 * time.Hour),
			EndsAt:      today.Add(23*time.Hour + 30*time.Minute),
			Location: domain.Location{
				Address:   "123 Rue de la Danse, Paris",
				Latitude:  &lat1,
				Longitude: &lng1,
			},
			Price:          10,
			OrganizerID:    "org1",
			AcceptedLevels: []domain.SkillLevel{},
			Participants:   []string{},
			Invited:        []string{},
			DanceStyles:    []string{"Salsa Cubaine", "Salsa Porto", "Bachata"},
		},
		{
			ID:          "2",
			Title:       "Festival Latino",
			Description: "Le plus grand festival de danses latines de l'année !",
			Category:    domain.CategoryFestival,
			StartsAt:    today.AddDate(0, 0, 7),
			EndsAt:      today.AddDate(0, 0, 9),
			Location: domain.Location{
				Address:   "456 Avenue des Arts, Paris",
				Latitude:  &lat2,
				Longitude: &lng2,
			},
			Price:          45,
			OrganizerID:    "org2",
			AcceptedLevels: []domain.SkillLevel{},
			Participants:   []string{},
			Invited:        []string{},
			DanceStyles:    []string{"Salsa Cubaine", "Bachata", "Kizomba"},
		},
		{
			ID:          "3",
			Title:       "Cours de Bachata",
			Description: "Apprenez la bachata avec nos meilleurs professeurs",
			Category:    domain.CategoryClass,
			StartsAt:    today.AddDate(0, 0, 2).Add(19 * time.Hour),
			EndsAt:      today.AddDate(0, 0, 2).Add(21 * time.Hour),
			Location: domain.Location{
				Address:   "789 Boulevard du Rythme, Paris",
				Latitude:  &lat3,
				Longitude: &lng3,
			},
			Price:          20,
			OrganizerID:    "org1",
			AcceptedLevels: []domain.SkillLevel{domain.SkillBeginner, domain.SkillIntermediate},
			Participants:   []string{},
			Invited:        []string{},
			DanceStyles:    []string{"Bachata"},
		},
	}
}
