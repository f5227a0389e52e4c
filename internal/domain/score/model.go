package score

import "time"

// Score is the running total of one player inside one tournament.
type Score struct {
	TournamentID int64
	PlayerID     int64
	Value        float64
	UpdatedAt    time.Time
}
