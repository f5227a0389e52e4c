package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/chess-tournament/internal/domain/round"
)

type roundTableModel struct {
	ID           int64         `db:"id"`
	TournamentID int64         `db:"tournament_id"`
	Ordinal      int           `db:"ordinal"`
	Name         string        `db:"name"`
	StartedAt    time.Time     `db:"started_at"`
	EndedAt      sql.NullTime  `db:"ended_at"`
	MatchIDs     pq.Int64Array `db:"match_ids"`
}

type roundInsertModel struct {
	TournamentID int64         `db:"tournament_id"`
	Ordinal      int           `db:"ordinal"`
	Name         string        `db:"name"`
	StartedAt    time.Time     `db:"started_at"`
	MatchIDs     pq.Int64Array `db:"match_ids"`
}

type matchTableModel struct {
	ID            int64        `db:"id"`
	RoundID       int64        `db:"round_id"`
	PlayerOneID   int64        `db:"player_one_id"`
	PlayerTwoID   int64        `db:"player_two_id"`
	PlayerOneName string       `db:"player_one_name"`
	PlayerTwoName string       `db:"player_two_name"`
	ScoreOne      float64      `db:"score_one"`
	ScoreTwo      float64      `db:"score_two"`
	ResultAt      sql.NullTime `db:"result_at"`
}

type matchInsertModel struct {
	RoundID       int64   `db:"round_id"`
	PlayerOneID   int64   `db:"player_one_id"`
	PlayerTwoID   int64   `db:"player_two_id"`
	PlayerOneName string  `db:"player_one_name"`
	PlayerTwoName string  `db:"player_two_name"`
	ScoreOne      float64 `db:"score_one"`
	ScoreTwo      float64 `db:"score_two"`
}

func roundFromRow(row roundTableModel) round.Round {
	return round.Round{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Ordinal:      row.Ordinal,
		Name:         row.Name,
		StartedAt:    row.StartedAt,
		EndedAt:      nullTimePtr(row.EndedAt),
		MatchIDs:     append([]int64(nil), row.MatchIDs...),
	}
}

func matchFromRow(row matchTableModel) round.Match {
	return round.Match{
		ID:            row.ID,
		RoundID:       row.RoundID,
		PlayerOneID:   row.PlayerOneID,
		PlayerTwoID:   row.PlayerTwoID,
		PlayerOneName: row.PlayerOneName,
		PlayerTwoName: row.PlayerTwoName,
		ScoreOne:      row.ScoreOne,
		ScoreTwo:      row.ScoreTwo,
		ResultAt:      nullTimePtr(row.ResultAt),
	}
}
