package pairing

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	ErrAlreadySeeded   = errors.New("pairing history already seeded")
	ErrPairingNotFound = errors.New("pairing not found in history")
)

// HistoryRepository stores the unplayed pairings of each tournament.
type HistoryRepository interface {
	Seed(ctx context.Context, tournamentID int64, pairings []Pairing) error
	Contains(ctx context.Context, tournamentID, playerA, playerB int64) (bool, error)
	Consume(ctx context.Context, tournamentID, playerA, playerB int64) error
	ListRemaining(ctx context.Context, tournamentID int64) ([]Pairing, error)
}
