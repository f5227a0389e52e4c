package pairing

import (
	"errors"
	"reflect"
	"testing"
)

func rankedOneToEight() []int64 {
	return []int64{1, 2, 3, 4, 5, 6, 7, 8}
}

func historyWithout(ids []int64, played ...Pairing) Set {
	set := NewSet(AllPairings(ids))
	for _, p := range played {
		set.Remove(p.Low, p.High)
	}
	return set
}

func historyOnly(pairings ...Pairing) Set {
	return NewSet(pairings)
}

func TestFirstRound_PairsTopHalfWithBottomHalf(t *testing.T) {
	result, err := FirstRound(rankedOneToEight())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Matchup{
		{PlayerOneID: 1, PlayerTwoID: 5},
		{PlayerOneID: 2, PlayerTwoID: 6},
		{PlayerOneID: 3, PlayerTwoID: 7},
		{PlayerOneID: 4, PlayerTwoID: 8},
	}
	if !reflect.DeepEqual(result.Matchups, want) {
		t.Fatalf("unexpected matchups: got=%v want=%v", result.Matchups, want)
	}
	if result.Strategy != StrategyFirstRound {
		t.Fatalf("unexpected strategy: %s", result.Strategy)
	}
}

func TestFirstRound_RejectsInvalidRoster(t *testing.T) {
	cases := map[string][]int64{
		"too few":   {1, 2, 3, 4, 5, 6, 7},
		"duplicate": {1, 2, 3, 4, 5, 6, 7, 7},
		"zero id":   {0, 2, 3, 4, 5, 6, 7, 8},
	}
	for name, ranked := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FirstRound(ranked); !errors.Is(err, ErrInvalidRoster) {
				t.Fatalf("expected ErrInvalidRoster, got %v", err)
			}
		})
	}
}

func TestNextRound_GreedyPairsAdjacentRanks(t *testing.T) {
	ids := rankedOneToEight()
	result, err := NextRound(ids, historyWithout(ids))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Matchup{
		{PlayerOneID: 1, PlayerTwoID: 2},
		{PlayerOneID: 3, PlayerTwoID: 4},
		{PlayerOneID: 5, PlayerTwoID: 6},
		{PlayerOneID: 7, PlayerTwoID: 8},
	}
	if !reflect.DeepEqual(result.Matchups, want) {
		t.Fatalf("unexpected matchups: got=%v want=%v", result.Matchups, want)
	}
	if result.Strategy != StrategyGreedy || result.Attempts != 1 {
		t.Fatalf("unexpected strategy=%s attempts=%d", result.Strategy, result.Attempts)
	}
}

func TestNextRound_SkipsPlayedOpponent(t *testing.T) {
	ids := rankedOneToEight()
	result, err := NextRound(ids, historyWithout(ids, NewPairing(1, 2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Matchup{
		{PlayerOneID: 1, PlayerTwoID: 3},
		{PlayerOneID: 2, PlayerTwoID: 4},
		{PlayerOneID: 5, PlayerTwoID: 6},
		{PlayerOneID: 7, PlayerTwoID: 8},
	}
	if !reflect.DeepEqual(result.Matchups, want) {
		t.Fatalf("unexpected matchups: got=%v want=%v", result.Matchups, want)
	}
}

func TestNextRound_PerturbsWhenLastPairAlreadyPlayed(t *testing.T) {
	ids := rankedOneToEight()
	result, err := NextRound(ids, historyWithout(ids, NewPairing(7, 8)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Matchup{
		{PlayerOneID: 1, PlayerTwoID: 2},
		{PlayerOneID: 3, PlayerTwoID: 4},
		{PlayerOneID: 5, PlayerTwoID: 8},
		{PlayerOneID: 7, PlayerTwoID: 6},
	}
	if !reflect.DeepEqual(result.Matchups, want) {
		t.Fatalf("unexpected matchups: got=%v want=%v", result.Matchups, want)
	}
	if result.Strategy != StrategyPerturbed || result.Attempts != 3 {
		t.Fatalf("unexpected strategy=%s attempts=%d", result.Strategy, result.Attempts)
	}
}

func TestNextRound_FallsBackToExhaustiveSearch(t *testing.T) {
	history := historyOnly(
		NewPairing(1, 2),
		NewPairing(1, 3),
		NewPairing(1, 8),
		NewPairing(2, 4),
		NewPairing(2, 8),
		NewPairing(5, 6),
		NewPairing(7, 8),
	)

	result, err := NextRound(rankedOneToEight(), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Matchup{
		{PlayerOneID: 1, PlayerTwoID: 3},
		{PlayerOneID: 2, PlayerTwoID: 4},
		{PlayerOneID: 5, PlayerTwoID: 6},
		{PlayerOneID: 7, PlayerTwoID: 8},
	}
	if !reflect.DeepEqual(result.Matchups, want) {
		t.Fatalf("unexpected matchups: got=%v want=%v", result.Matchups, want)
	}
	if result.Strategy != StrategyExhaustive || result.Attempts != PlayersPerRound {
		t.Fatalf("unexpected strategy=%s attempts=%d", result.Strategy, result.Attempts)
	}
}

func TestNextRound_ReturnsExhaustedSearch(t *testing.T) {
	history := historyOnly(NewPairing(2, 3), NewPairing(4, 5), NewPairing(6, 7))

	_, err := NextRound(rankedOneToEight(), history)
	if !errors.Is(err, ErrExhaustedSearch) {
		t.Fatalf("expected ErrExhaustedSearch, got %v", err)
	}
}

func TestNextRound_FourRoundsNeverRepeatPairing(t *testing.T) {
	ids := rankedOneToEight()
	history := NewSet(AllPairings(ids))
	if len(history) != 28 {
		t.Fatalf("expected 28 seeded pairings, got %d", len(history))
	}

	first, err := FirstRound(ids)
	if err != nil {
		t.Fatalf("first round: %v", err)
	}
	consume(t, history, first)

	// rotate the ranking every round so the greedy pass sees new neighbours
	orders := [][]int64{
		{8, 7, 6, 5, 4, 3, 2, 1},
		{1, 3, 5, 7, 2, 4, 6, 8},
		{2, 1, 4, 3, 6, 5, 8, 7},
	}
	for i, order := range orders {
		result, err := NextRound(order, history)
		if err != nil {
			t.Fatalf("round %d: %v", i+2, err)
		}
		consume(t, history, result)
	}

	if len(history) != 12 {
		t.Fatalf("expected 12 unplayed pairings, got %d", len(history))
	}
}

func consume(t *testing.T, history Set, result Result) {
	t.Helper()

	if len(result.Matchups) != MatchesPerRound {
		t.Fatalf("expected %d matchups, got %d", MatchesPerRound, len(result.Matchups))
	}
	seen := make(map[int64]struct{}, PlayersPerRound)
	for _, m := range result.Matchups {
		for _, id := range []int64{m.PlayerOneID, m.PlayerTwoID} {
			if _, ok := seen[id]; ok {
				t.Fatalf("player %d paired twice in one round", id)
			}
			seen[id] = struct{}{}
		}
		if !history.Remove(m.PlayerOneID, m.PlayerTwoID) {
			t.Fatalf("pairing %v was already played", m.Pairing())
		}
	}
}

func TestPerturb_SwapsLastWithDistanceK(t *testing.T) {
	ids := rankedOneToEight()
	got := perturb(ids, 2)
	want := []int64{1, 2, 3, 4, 5, 8, 7, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
	if !reflect.DeepEqual(ids, rankedOneToEight()) {
		t.Fatalf("perturb mutated input: %v", ids)
	}
}
