package score

import "context"

// Repository describes score ledger persistence needs from use cases.
// Add creates the row on first use and returns the new total.
type Repository interface {
	Get(ctx context.Context, tournamentID, playerID int64) (Score, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Score, error)
	Add(ctx context.Context, tournamentID, playerID int64, delta float64) (Score, error)
}
