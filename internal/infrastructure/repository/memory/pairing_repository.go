package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
)

type PairingHistoryRepository struct {
	store *Store
}

func NewPairingHistoryRepository(store *Store) *PairingHistoryRepository {
	return &PairingHistoryRepository{store: store}
}

func (r *PairingHistoryRepository) Seed(_ context.Context, tournamentID int64, pairings []pairing.Pairing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.pairings.Get(byTournament(tournamentID)); exists {
		return fmt.Errorf("%w: tournament=%d", pairing.ErrAlreadySeeded, tournamentID)
	}
	for _, p := range pairings {
		item := pairingRecord{TournamentID: tournamentID, Pairing: pairing.NewPairing(p.Low, p.High)}
		if err := r.store.pairings.Insert(item); err != nil {
			return fmt.Errorf("seed pairing %d-%d: %w", p.Low, p.High, err)
		}
	}
	return nil
}

func (r *PairingHistoryRepository) Contains(_ context.Context, tournamentID, playerA, playerB int64) (bool, error) {
	_, ok := r.store.pairings.Get(byPairing(tournamentID, playerA, playerB))
	return ok, nil
}

func (r *PairingHistoryRepository) Consume(_ context.Context, tournamentID, playerA, playerB int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if deleted := r.store.pairings.Delete(byPairing(tournamentID, playerA, playerB)); deleted == 0 {
		return fmt.Errorf("%w: tournament=%d players=%d-%d", pairing.ErrPairingNotFound, tournamentID, playerA, playerB)
	}
	return nil
}

func (r *PairingHistoryRepository) ListRemaining(_ context.Context, tournamentID int64) ([]pairing.Pairing, error) {
	records := r.store.pairings.Search(byTournament(tournamentID))
	set := make(pairing.Set, len(records))
	for _, rec := range records {
		set[rec.Pairing] = struct{}{}
	}
	return set.Sorted(), nil
}

func byTournament(tournamentID int64) func(pairingRecord) bool {
	return func(rec pairingRecord) bool { return rec.TournamentID == tournamentID }
}

func byPairing(tournamentID, playerA, playerB int64) func(pairingRecord) bool {
	key := pairing.NewPairing(playerA, playerB)
	return func(rec pairingRecord) bool {
		return rec.TournamentID == tournamentID && rec.Pairing == key
	}
}
