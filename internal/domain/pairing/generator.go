package pairing

import (
	"github.com/cockroachdb/errors"
)

const (
	PlayersPerRound = 8
	MatchesPerRound = PlayersPerRound / 2
)

var (
	ErrInvalidRoster   = errors.New("invalid pairing roster")
	ErrExhaustedSearch = errors.New("no complete round of unplayed pairings exists")
)

// Strategy names the pass that produced a round.
type Strategy string

const (
	StrategyFirstRound Strategy = "first_round"
	StrategyGreedy     Strategy = "greedy"
	StrategyPerturbed  Strategy = "perturbed"
	StrategyExhaustive Strategy = "exhaustive"
)

// Result is a complete round of matchups. Attempts counts greedy passes,
// the exhaustive pass is not included.
type Result struct {
	Matchups []Matchup
	Strategy Strategy
	Attempts int
}

func (r Result) Pairings() []Pairing {
	out := make([]Pairing, 0, len(r.Matchups))
	for _, m := range r.Matchups {
		out = append(out, m.Pairing())
	}
	return out
}

type outcomeKind int

const (
	outcomePaired outcomeKind = iota
	outcomeNeedsRetry
)

type outcome struct {
	kind     outcomeKind
	matchups []Matchup
}

// FirstRound splits the ranked list at its midpoint and pairs top[i] with bottom[i].
func FirstRound(ranked []int64) (Result, error) {
	if err := validateRoster(ranked); err != nil {
		return Result{}, err
	}

	half := len(ranked) / 2
	matchups := make([]Matchup, 0, half)
	for i := 0; i < half; i++ {
		matchups = append(matchups, Matchup{
			PlayerOneID: ranked[i],
			PlayerTwoID: ranked[half+i],
		})
	}

	return Result{Matchups: matchups, Strategy: StrategyFirstRound, Attempts: 1}, nil
}

// NextRound pairs each player with the best ranked opponent it has not met yet.
// A failed pass restarts from the ranked order with the last player swapped
// k places towards the top, for k = 1..n-1. When every pass fails a
// backtracking search over the ranked order is used before giving up.
func NextRound(ranked []int64, history History) (Result, error) {
	if err := validateRoster(ranked); err != nil {
		return Result{}, err
	}
	if history == nil {
		return Result{}, errors.Wrap(ErrInvalidRoster, "pairing history is required")
	}

	n := len(ranked)
	for attempt := 0; attempt < n; attempt++ {
		order := perturb(ranked, attempt)
		out := greedyPass(order, history)
		if out.kind != outcomePaired {
			continue
		}

		strategy := StrategyGreedy
		if attempt > 0 {
			strategy = StrategyPerturbed
		}
		return Result{Matchups: out.matchups, Strategy: strategy, Attempts: attempt + 1}, nil
	}

	matchups, ok := searchPerfectMatching(ranked, history)
	if !ok {
		return Result{}, errors.Wrapf(ErrExhaustedSearch, "players=%v attempts=%d", ranked, n)
	}

	return Result{Matchups: matchups, Strategy: StrategyExhaustive, Attempts: n}, nil
}

// perturb returns a copy of ranked with the last element swapped with the
// element k places before it. k == 0 keeps the order.
func perturb(ranked []int64, k int) []int64 {
	order := append([]int64(nil), ranked...)
	if k <= 0 || k >= len(order) {
		return order
	}
	last := len(order) - 1
	order[last], order[last-k] = order[last-k], order[last]
	return order
}

func greedyPass(order []int64, history History) outcome {
	working := append([]int64(nil), order...)
	matchups := make([]Matchup, 0, len(order)/2)

	for len(working) > 0 {
		head := working[0]
		opponent := -1
		for j := 1; j < len(working); j++ {
			if history.Contains(head, working[j]) {
				opponent = j
				break
			}
		}
		if opponent < 0 {
			return outcome{kind: outcomeNeedsRetry}
		}

		matchups = append(matchups, Matchup{PlayerOneID: head, PlayerTwoID: working[opponent]})
		working = removeAt(working, opponent)
		working = working[1:]
	}

	return outcome{kind: outcomePaired, matchups: matchups}
}

func removeAt(items []int64, idx int) []int64 {
	out := make([]int64, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

func validateRoster(ranked []int64) error {
	if len(ranked) != PlayersPerRound {
		return errors.Wrapf(ErrInvalidRoster, "expected %d players, got %d", PlayersPerRound, len(ranked))
	}

	seen := make(map[int64]struct{}, len(ranked))
	for _, id := range ranked {
		if id <= 0 {
			return errors.Wrapf(ErrInvalidRoster, "invalid player id %d", id)
		}
		if _, ok := seen[id]; ok {
			return errors.Wrapf(ErrInvalidRoster, "duplicate player id %d", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
