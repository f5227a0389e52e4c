package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/chess-tournament/internal/domain/score"
	qb "github.com/riskibarqy/chess-tournament/internal/platform/querybuilder"
)

type scoreTableModel struct {
	TournamentID int64     `db:"tournament_id"`
	PlayerID     int64     `db:"player_id"`
	Score        float64   `db:"score"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var scoreSelectColumns = []string{"tournament_id", "player_id", "score", "updated_at"}

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Get(ctx context.Context, tournamentID, playerID int64) (score.Score, bool, error) {
	query, args, err := qb.Select(scoreSelectColumns...).From("scores").
		Where(qb.Eq("tournament_id", tournamentID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return score.Score{}, false, fmt.Errorf("build get score query: %w", err)
	}

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return score.Score{}, false, nil
		}
		return score.Score{}, false, fmt.Errorf("get score: %w", err)
	}
	return scoreFromRow(row), true, nil
}

func (r *ScoreRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]score.Score, error) {
	query, args, err := qb.Select(scoreSelectColumns...).From("scores").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]score.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreFromRow(row))
	}
	return out, nil
}

// Add upserts the score row, adding delta to an existing total.
func (r *ScoreRepository) Add(ctx context.Context, tournamentID, playerID int64, delta float64) (score.Score, error) {
	query, args, err := qb.InsertInto("scores").
		Columns("tournament_id", "player_id", "score", "updated_at").
		Values(tournamentID, playerID, delta, time.Now().UTC()).
		Suffix("ON CONFLICT (tournament_id, player_id) DO UPDATE SET " +
			"score = scores.score + EXCLUDED.score, updated_at = EXCLUDED.updated_at " +
			"RETURNING " + joinColumns(scoreSelectColumns)).
		ToSQL()
	if err != nil {
		return score.Score{}, fmt.Errorf("build add score query: %w", err)
	}

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return score.Score{}, fmt.Errorf("add score: %w", err)
	}
	return scoreFromRow(row), nil
}

func scoreFromRow(row scoreTableModel) score.Score {
	return score.Score{
		TournamentID: row.TournamentID,
		PlayerID:     row.PlayerID,
		Value:        row.Score,
		UpdatedAt:    row.UpdatedAt,
	}
}
