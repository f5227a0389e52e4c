package round

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidScore       = errors.New("invalid match score")
	ErrRoundStillOpen     = errors.New("previous round is still open")
	ErrTournamentComplete = errors.New("tournament already played all its rounds")
	ErrAlreadyClosed      = errors.New("round already closed")
	ErrRoundClosed        = errors.New("round is closed")
	ErrRoundIncomplete    = errors.New("round has matches without result")
)

// Allowed per-player results of a single game.
const (
	ScoreLoss = 0.0
	ScoreDraw = 0.5
	ScoreWin  = 1.0
)

// Round groups the 4 matches played at the same time in a tournament.
type Round struct {
	ID           int64
	TournamentID int64
	Ordinal      int
	Name         string
	StartedAt    time.Time
	EndedAt      *time.Time
	MatchIDs     []int64
}

func NameFor(ordinal int) string {
	return fmt.Sprintf("Round %d", ordinal)
}

func (r Round) IsOpen() bool {
	return r.EndedAt == nil
}

func (r Round) HasMatch(matchID int64) bool {
	for _, id := range r.MatchIDs {
		if id == matchID {
			return true
		}
	}
	return false
}

func (r Round) Clone() Round {
	out := r
	out.MatchIDs = append([]int64(nil), r.MatchIDs...)
	if r.EndedAt != nil {
		endedAt := *r.EndedAt
		out.EndedAt = &endedAt
	}
	return out
}

// Match is one game of a round. Player names are snapshots taken at generation.
type Match struct {
	ID            int64
	RoundID       int64
	PlayerOneID   int64
	PlayerTwoID   int64
	PlayerOneName string
	PlayerTwoName string
	ScoreOne      float64
	ScoreTwo      float64
	ResultAt      *time.Time
}

func (m Match) HasResult() bool {
	return m.ResultAt != nil
}

func (m Match) ScoreOf(playerID int64) (float64, bool) {
	switch playerID {
	case m.PlayerOneID:
		return m.ScoreOne, true
	case m.PlayerTwoID:
		return m.ScoreTwo, true
	default:
		return 0, false
	}
}

func (m Match) Clone() Match {
	out := m
	if m.ResultAt != nil {
		resultAt := *m.ResultAt
		out.ResultAt = &resultAt
	}
	return out
}

// ValidateScores accepts only win/draw/loss values that sum to one point.
func ValidateScores(scoreOne, scoreTwo float64) error {
	if !isAllowedScore(scoreOne) {
		return fmt.Errorf("%w: score_one=%v must be 0, 0.5 or 1", ErrInvalidScore, scoreOne)
	}
	if !isAllowedScore(scoreTwo) {
		return fmt.Errorf("%w: score_two=%v must be 0, 0.5 or 1", ErrInvalidScore, scoreTwo)
	}
	if scoreOne+scoreTwo != ScoreWin {
		return fmt.Errorf("%w: scores must sum to 1, got %v", ErrInvalidScore, scoreOne+scoreTwo)
	}
	return nil
}

func isAllowedScore(v float64) bool {
	return v == ScoreLoss || v == ScoreDraw || v == ScoreWin
}
