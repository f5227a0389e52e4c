package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	Location     string        `db:"location"`
	Description  string        `db:"description"`
	Ruleset      string        `db:"ruleset"`
	NbRounds     int           `db:"nb_rounds"`
	PlayerIDs    pq.Int64Array `db:"player_ids"`
	PlayedRounds int           `db:"played_rounds"`
	RoundIDs     pq.Int64Array `db:"round_ids"`
	StartedAt    time.Time     `db:"started_at"`
	EndedAt      sql.NullTime  `db:"ended_at"`
}

type tournamentInsertModel struct {
	Name         string        `db:"name"`
	Location     string        `db:"location"`
	Description  string        `db:"description"`
	Ruleset      string        `db:"ruleset"`
	NbRounds     int           `db:"nb_rounds"`
	PlayerIDs    pq.Int64Array `db:"player_ids"`
	PlayedRounds int           `db:"played_rounds"`
	RoundIDs     pq.Int64Array `db:"round_ids"`
	StartedAt    time.Time     `db:"started_at"`
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:           row.ID,
		Name:         row.Name,
		Location:     row.Location,
		Description:  row.Description,
		Ruleset:      tournament.Ruleset(row.Ruleset),
		NbRounds:     row.NbRounds,
		PlayerIDs:    append([]int64(nil), row.PlayerIDs...),
		PlayedRounds: row.PlayedRounds,
		RoundIDs:     append([]int64(nil), row.RoundIDs...),
		StartedAt:    row.StartedAt,
		EndedAt:      nullTimePtr(row.EndedAt),
	}
}
