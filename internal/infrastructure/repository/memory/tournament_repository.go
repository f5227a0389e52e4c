package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	return r.store.tournaments.InsertWithID(func(id int64) tournament.Tournament {
		t.ID = id
		return t
	})
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	t, ok := r.store.tournaments.Get(byTournamentID(tournamentID))
	return t, ok, nil
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	return r.store.tournaments.All(), nil
}

func (r *TournamentRepository) Update(_ context.Context, t tournament.Tournament) error {
	next := t.Clone()
	updated := r.store.tournaments.Update(func(stored *tournament.Tournament) {
		*stored = next
	}, byTournamentID(t.ID))
	if updated == 0 {
		return fmt.Errorf("tournament %d not found", t.ID)
	}
	return nil
}

func byTournamentID(tournamentID int64) func(tournament.Tournament) bool {
	return func(t tournament.Tournament) bool { return t.ID == tournamentID }
}
