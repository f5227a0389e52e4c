package standing

import (
	"sort"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
)

// Standing is one row of a tournament ranking.
type Standing struct {
	Position int
	Player   player.Player
	Score    float64
}

// Rank orders players by (score desc, elo desc). Players tied on both keep
// their position in order, which is the tournament registration order.
// Players missing from the players map are skipped, a missing score counts as 0.
func Rank(order []int64, players map[int64]player.Player, scores map[int64]float64) []Standing {
	out := make([]Standing, 0, len(order))
	for _, id := range order {
		p, ok := players[id]
		if !ok {
			continue
		}
		out = append(out, Standing{Player: p, Score: scores[id]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Player.Elo > out[j].Player.Elo
	})

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// PlayerIDs returns the ranked player ids.
func PlayerIDs(standings []Standing) []int64 {
	out := make([]int64, 0, len(standings))
	for _, s := range standings {
		out = append(out, s.Player.ID)
	}
	return out
}
