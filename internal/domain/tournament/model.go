package tournament

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ruleset is the time control a tournament is played with.
type Ruleset string

const (
	RulesetBullet Ruleset = "bullet"
	RulesetBlitz  Ruleset = "blitz"
	RulesetRapid  Ruleset = "rapid"
)

const (
	RequiredPlayers = 8
	DefaultNbRounds = 4
	MaxNbRounds     = RequiredPlayers - 1
	MatchesPerRound = RequiredPlayers / 2
	TotalPairings   = RequiredPlayers * (RequiredPlayers - 1) / 2
)

var (
	ErrInvalidPlayerCount = errors.New("tournament requires exactly 8 distinct players")
	ErrInvalidRoundCount  = errors.New("invalid tournament round count")
)

// Tournament is an 8-player event made of NbRounds rounds.
type Tournament struct {
	ID           int64
	Name         string
	Location     string
	Description  string
	Ruleset      Ruleset
	NbRounds     int
	PlayerIDs    []int64
	PlayedRounds int
	RoundIDs     []int64
	StartedAt    time.Time
	EndedAt      *time.Time
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if strings.TrimSpace(t.Location) == "" {
		return fmt.Errorf("tournament location is required")
	}
	switch t.Ruleset {
	case RulesetBullet, RulesetBlitz, RulesetRapid:
	default:
		return fmt.Errorf("invalid tournament ruleset: %s", t.Ruleset)
	}
	if t.NbRounds < 1 || t.NbRounds > MaxNbRounds {
		return fmt.Errorf("%w: nb_rounds=%d must be between 1 and %d", ErrInvalidRoundCount, t.NbRounds, MaxNbRounds)
	}
	if len(t.PlayerIDs) != RequiredPlayers {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(t.PlayerIDs))
	}

	seen := make(map[int64]struct{}, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid player id %d", ErrInvalidPlayerCount, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate player id %d", ErrInvalidPlayerCount, id)
		}
		seen[id] = struct{}{}
	}
	if t.PlayedRounds < 0 || t.PlayedRounds > t.NbRounds {
		return fmt.Errorf("%w: played_rounds=%d nb_rounds=%d", ErrInvalidRoundCount, t.PlayedRounds, t.NbRounds)
	}

	return nil
}

// IsComplete reports whether every configured round has been generated.
func (t Tournament) IsComplete() bool {
	return t.PlayedRounds >= t.NbRounds
}

func (t Tournament) IsEnded() bool {
	return t.EndedAt != nil
}

func (t Tournament) HasPlayer(playerID int64) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

func (t Tournament) LatestRoundID() (int64, bool) {
	if len(t.RoundIDs) == 0 {
		return 0, false
	}
	return t.RoundIDs[len(t.RoundIDs)-1], true
}

// Clone returns a copy that does not share slices with t.
func (t Tournament) Clone() Tournament {
	out := t
	out.PlayerIDs = append([]int64(nil), t.PlayerIDs...)
	out.RoundIDs = append([]int64(nil), t.RoundIDs...)
	if t.EndedAt != nil {
		endedAt := *t.EndedAt
		out.EndedAt = &endedAt
	}
	return out
}
