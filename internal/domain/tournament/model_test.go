package tournament

import (
	"errors"
	"testing"
	"time"
)

func validTournament() Tournament {
	return Tournament{
		Name:      "Spring Open",
		Location:  "Lyon",
		Ruleset:   RulesetBlitz,
		NbRounds:  DefaultNbRounds,
		PlayerIDs: []int64{1, 2, 3, 4, 5, 6, 7, 8},
		StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestTournamentValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Tournament)
		wantErr   bool
		targetErr error
	}{
		{
			name:   "valid tournament",
			mutate: func(_ *Tournament) {},
		},
		{
			name:    "missing name",
			mutate:  func(t *Tournament) { t.Name = " " },
			wantErr: true,
		},
		{
			name:    "unknown ruleset",
			mutate:  func(t *Tournament) { t.Ruleset = "classical" },
			wantErr: true,
		},
		{
			name:      "seven players",
			mutate:    func(t *Tournament) { t.PlayerIDs = t.PlayerIDs[:7] },
			wantErr:   true,
			targetErr: ErrInvalidPlayerCount,
		},
		{
			name:      "duplicate player",
			mutate:    func(t *Tournament) { t.PlayerIDs[7] = 1 },
			wantErr:   true,
			targetErr: ErrInvalidPlayerCount,
		},
		{
			name:      "too many rounds",
			mutate:    func(t *Tournament) { t.NbRounds = 8 },
			wantErr:   true,
			targetErr: ErrInvalidRoundCount,
		},
		{
			name:      "played beyond configured rounds",
			mutate:    func(t *Tournament) { t.PlayedRounds = 5 },
			wantErr:   true,
			targetErr: ErrInvalidRoundCount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := validTournament()
			tc.mutate(&item)

			err := item.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestTournamentClone_DoesNotShareSlices(t *testing.T) {
	item := validTournament()
	item.RoundIDs = []int64{10}

	cloned := item.Clone()
	cloned.PlayerIDs[0] = 99
	cloned.RoundIDs[0] = 99

	if item.PlayerIDs[0] != 1 || item.RoundIDs[0] != 10 {
		t.Fatalf("clone shares slices with source: %+v", item)
	}
}

func TestTournamentRoundState(t *testing.T) {
	item := validTournament()
	if item.IsComplete() {
		t.Fatalf("fresh tournament must not be complete")
	}
	if _, ok := item.LatestRoundID(); ok {
		t.Fatalf("fresh tournament must not have rounds")
	}

	item.PlayedRounds = item.NbRounds
	item.RoundIDs = []int64{1, 2, 3, 4}
	if !item.IsComplete() {
		t.Fatalf("expected complete tournament")
	}
	if latest, ok := item.LatestRoundID(); !ok || latest != 4 {
		t.Fatalf("unexpected latest round: %d %v", latest, ok)
	}
}
