package memory

import (
	"context"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

const MatchdayIDFridayNight = "md-friday-night"

func SeedMatchdays() []matchday.Matchday {
	created := time.Date(2026, 8, 21, 17, 30, 0, 0, time.UTC)
	return []matchday.Matchday{
		{
			ID:        MatchdayIDFridayNight,
			Name:      "Friday Night Fives",
			Date:      time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
			Rules:     rules.Default(),
			CreatedAt: created,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "tm-red", MatchdayID: MatchdayIDFridayNight, Name: "Red Bibs"},
		{ID: "tm-blue", MatchdayID: MatchdayIDFridayNight, Name: "Blue Bibs"},
		{ID: "tm-green", MatchdayID: MatchdayIDFridayNight, Name: "Green Bibs"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-red-01", TeamID: "tm-red", Name: "Andre Silitonga"},
		{ID: "pl-red-02", TeamID: "tm-red", Name: "Bima Pratama"},
		{ID: "pl-red-03", TeamID: "tm-red", Name: "Calvin Wibowo"},
		{ID: "pl-red-04", TeamID: "tm-red", Name: "Dimas Hartono"},
		{ID: "pl-red-05", TeamID: "tm-red", Name: "Eko Saputra"},
		{ID: "pl-blue-01", TeamID: "tm-blue", Name: "Fajar Nugroho"},
		{ID: "pl-blue-02", TeamID: "tm-blue", Name: "Gilang Ramadhan"},
		{ID: "pl-blue-03", TeamID: "tm-blue", Name: "Hendra Kusuma"},
		{ID: "pl-blue-04", TeamID: "tm-blue", Name: "Irfan Maulana"},
		{ID: "pl-blue-05", TeamID: "tm-blue", Name: "Joko Susilo"},
		{ID: "pl-green-01", TeamID: "tm-green", Name: "Kurnia Adi"},
		{ID: "pl-green-02", TeamID: "tm-green", Name: "Lukman Hakim"},
		{ID: "pl-green-03", TeamID: "tm-green", Name: "Miko Ardianto"},
		{ID: "pl-green-04", TeamID: "tm-green", Name: "Naufal Rizki"},
		{ID: "pl-green-05", TeamID: "tm-green", Name: "Oscar Tampubolon"},
	}
}

// Seed loads the demo matchday into the store. Used when the service runs
// without a database.
func Seed(store *Store) error {
	ctx := context.Background()
	matchdays := NewMatchdayRepository(store)
	teams := NewTeamRepository(store)
	players := NewPlayerRepository(store)

	for _, m := range SeedMatchdays() {
		if err := matchdays.Create(ctx, m); err != nil {
			return err
		}
	}
	for _, t := range SeedTeams() {
		if err := teams.Create(ctx, t); err != nil {
			return err
		}
	}
	for _, p := range SeedPlayers() {
		if err := players.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
