package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/score"
)

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) Get(_ context.Context, tournamentID, playerID int64) (score.Score, bool, error) {
	s, ok := r.store.scores.Get(scoreKey(tournamentID, playerID))
	return s, ok, nil
}

func (r *ScoreRepository) ListByTournament(_ context.Context, tournamentID int64) ([]score.Score, error) {
	return r.store.scores.Search(func(s score.Score) bool { return s.TournamentID == tournamentID }), nil
}

func (r *ScoreRepository) Add(_ context.Context, tournamentID, playerID int64, delta float64) (score.Score, error) {
	now := time.Now().UTC()
	return r.store.scores.Upsert(
		scoreKey(tournamentID, playerID),
		func() score.Score { return score.Score{TournamentID: tournamentID, PlayerID: playerID} },
		func(s *score.Score) {
			s.Value += delta
			s.UpdatedAt = now
		},
	)
}

func scoreKey(tournamentID, playerID int64) func(score.Score) bool {
	return func(s score.Score) bool {
		return s.TournamentID == tournamentID && s.PlayerID == playerID
	}
}
