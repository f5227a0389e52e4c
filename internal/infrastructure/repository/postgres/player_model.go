package postgres

import (
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	BirthDate time.Time `db:"birth_date"`
	Gender    string    `db:"gender"`
	Elo       int       `db:"elo"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	BirthDate time.Time `db:"birth_date"`
	Gender    string    `db:"gender"`
	Elo       int       `db:"elo"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		BirthDate: row.BirthDate,
		Gender:    player.Gender(row.Gender),
		Elo:       row.Elo,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
