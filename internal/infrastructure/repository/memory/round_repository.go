package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

type RoundRepository struct {
	store *Store
}

func NewRoundRepository(store *Store) *RoundRepository {
	return &RoundRepository{store: store}
}

// Create checks every precondition before touching a table, so a rejected
// round leaves the store as it was.
func (r *RoundRepository) Create(_ context.Context, item round.Round, matches []round.Match) (round.Round, []round.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if open, exists := r.store.rounds.Get(func(rd round.Round) bool {
		return rd.TournamentID == item.TournamentID && rd.IsOpen()
	}); exists {
		return round.Round{}, nil, fmt.Errorf("%w: tournament=%d round=%d", round.ErrRoundStillOpen, item.TournamentID, open.ID)
	}
	if _, exists := r.store.tournaments.Get(byTournamentID(item.TournamentID)); !exists {
		return round.Round{}, nil, fmt.Errorf("tournament %d not found", item.TournamentID)
	}
	for _, m := range matches {
		if _, exists := r.store.pairings.Get(byPairing(item.TournamentID, m.PlayerOneID, m.PlayerTwoID)); !exists {
			return round.Round{}, nil, fmt.Errorf("%w: tournament=%d players=%d-%d", pairing.ErrPairingNotFound, item.TournamentID, m.PlayerOneID, m.PlayerTwoID)
		}
	}

	item.ID = r.store.rounds.NextID()
	item.MatchIDs = make([]int64, 0, len(matches))

	created := make([]round.Match, 0, len(matches))
	for _, m := range matches {
		m.RoundID = item.ID
		stored, err := r.store.matches.InsertWithID(func(id int64) round.Match {
			m.ID = id
			return m
		})
		if err != nil {
			return round.Round{}, nil, fmt.Errorf("insert match: %w", err)
		}
		item.MatchIDs = append(item.MatchIDs, stored.ID)
		created = append(created, stored)
	}

	if err := r.store.rounds.Insert(item); err != nil {
		return round.Round{}, nil, fmt.Errorf("insert round: %w", err)
	}

	r.store.tournaments.Update(func(t *tournament.Tournament) {
		t.PlayedRounds = item.Ordinal
		t.RoundIDs = append(t.RoundIDs, item.ID)
	}, byTournamentID(item.TournamentID))

	for _, m := range matches {
		r.store.pairings.Delete(byPairing(item.TournamentID, m.PlayerOneID, m.PlayerTwoID))
	}
	return item.Clone(), created, nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID int64) (round.Round, bool, error) {
	item, ok := r.store.rounds.Get(func(item round.Round) bool { return item.ID == roundID })
	return item, ok, nil
}

func (r *RoundRepository) ListByTournament(_ context.Context, tournamentID int64) ([]round.Round, error) {
	items := r.store.rounds.Search(func(item round.Round) bool { return item.TournamentID == tournamentID })
	sort.Slice(items, func(i, j int) bool { return items[i].Ordinal < items[j].Ordinal })
	return items, nil
}

func (r *RoundRepository) Close(_ context.Context, roundID int64, endedAt time.Time) error {
	updated := r.store.rounds.Update(func(item *round.Round) {
		item.EndedAt = &endedAt
	}, func(item round.Round) bool { return item.ID == roundID })
	if updated == 0 {
		return fmt.Errorf("round %d not found", roundID)
	}
	return nil
}

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (round.Match, bool, error) {
	m, ok := r.store.matches.Get(func(m round.Match) bool { return m.ID == matchID })
	return m, ok, nil
}

func (r *MatchRepository) ListByRound(_ context.Context, roundID int64) ([]round.Match, error) {
	items := r.store.matches.Search(func(m round.Match) bool { return m.RoundID == roundID })
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MatchRepository) UpdateResult(_ context.Context, matchID int64, scoreOne, scoreTwo float64, resultAt time.Time) error {
	updated := r.store.matches.Update(func(m *round.Match) {
		m.ScoreOne = scoreOne
		m.ScoreTwo = scoreTwo
		m.ResultAt = &resultAt
	}, func(m round.Match) bool { return m.ID == matchID })
	if updated == 0 {
		return fmt.Errorf("match %d not found", matchID)
	}
	return nil
}
