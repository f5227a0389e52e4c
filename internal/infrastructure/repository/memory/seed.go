package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
)

// SeedPlayers returns the 8 demo players used by local runs.
func SeedPlayers() []player.Player {
	return []player.Player{
		{FirstName: "Magnus", LastName: "Carlsen", BirthDate: date(1990, 11, 30), Gender: player.GenderMale, Elo: 2830},
		{FirstName: "Hou", LastName: "Yifan", BirthDate: date(1994, 2, 27), Gender: player.GenderFemale, Elo: 2650},
		{FirstName: "Fabiano", LastName: "Caruana", BirthDate: date(1992, 7, 30), Gender: player.GenderMale, Elo: 2795},
		{FirstName: "Ju", LastName: "Wenjun", BirthDate: date(1991, 1, 31), Gender: player.GenderFemale, Elo: 2560},
		{FirstName: "Alireza", LastName: "Firouzja", BirthDate: date(2003, 6, 18), Gender: player.GenderMale, Elo: 2760},
		{FirstName: "Aleksandra", LastName: "Goryachkina", BirthDate: date(1998, 9, 28), Gender: player.GenderFemale, Elo: 2550},
		{FirstName: "Ding", LastName: "Liren", BirthDate: date(1992, 10, 24), Gender: player.GenderMale, Elo: 2740},
		{FirstName: "Koneru", LastName: "Humpy", BirthDate: date(1987, 3, 31), Gender: player.GenderFemale, Elo: 2540},
	}
}

// Seed registers the demo players into an empty store.
func Seed(ctx context.Context, store *Store) error {
	repo := NewPlayerRepository(store)
	for _, p := range SeedPlayers() {
		if _, err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.DisplayName(), err)
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
