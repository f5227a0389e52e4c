package round

import (
	"context"
	"time"
)

// Repository persists rounds. Create opens a round in one step: it stores the
// round with its matches, records it on the tournament (played rounds and
// round ids) and consumes the pairing of every match. It fails with
// ErrRoundStillOpen while another round of the tournament is open, and on any
// error nothing is written.
type Repository interface {
	Create(ctx context.Context, r Round, matches []Match) (Round, []Match, error)
	GetByID(ctx context.Context, roundID int64) (Round, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Round, error)
	Close(ctx context.Context, roundID int64, endedAt time.Time) error
}

type MatchRepository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	ListByRound(ctx context.Context, roundID int64) ([]Match, error)
	UpdateResult(ctx context.Context, matchID int64, scoreOne, scoreTwo float64, resultAt time.Time) error
}
