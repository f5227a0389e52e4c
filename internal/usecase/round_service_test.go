package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/standing"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/memory"
)

type tournamentFixture struct {
	store       *memory.Store
	players     *PlayerService
	tournaments *TournamentService
	rounds      *RoundService
	ranking     *RankingService
	reports     *ReportService
	tournament  tournament.Tournament
}

// newTournamentFixture registers 8 players with strictly decreasing elo, so
// the initial ranking is the registration order.
func newTournamentFixture(t *testing.T, nbRounds int) *tournamentFixture {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	playerRepo := memory.NewPlayerRepository(store)
	tournamentRepo := memory.NewTournamentRepository(store)
	historyRepo := memory.NewPairingHistoryRepository(store)
	roundRepo := memory.NewRoundRepository(store)
	matchRepo := memory.NewMatchRepository(store)
	scoreRepo := memory.NewScoreRepository(store)

	f := &tournamentFixture{
		store:       store,
		players:     NewPlayerService(playerRepo, nil),
		tournaments: NewTournamentService(tournamentRepo, playerRepo, historyRepo, tournament.DefaultNbRounds, nil),
		rounds:      NewRoundService(tournamentRepo, playerRepo, historyRepo, roundRepo, matchRepo, scoreRepo, nil),
		ranking:     NewRankingService(tournamentRepo, playerRepo, scoreRepo),
	}
	f.reports = NewReportService(playerRepo, tournamentRepo, roundRepo, matchRepo, f.ranking, 2, nil)

	ids := make([]int64, 0, tournament.RequiredPlayers)
	for i := 0; i < tournament.RequiredPlayers; i++ {
		p, err := f.players.Register(ctx, RegisterPlayerInput{
			FirstName: "Player",
			LastName:  string(rune('A' + i)),
			BirthDate: time.Date(1990, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Gender:    player.GenderOther,
			Elo:       2800 - i*100,
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	created, err := f.tournaments.Create(ctx, CreateTournamentInput{
		Name:      "Club Championship",
		Location:  "Paris",
		Ruleset:   tournament.RulesetRapid,
		NbRounds:  nbRounds,
		PlayerIDs: ids,
	})
	require.NoError(t, err)
	f.tournament = created

	return f
}

func (f *tournamentFixture) playRound(t *testing.T, scoreOne, scoreTwo float64) (round.Round, []round.Match) {
	t.Helper()

	ctx := context.Background()
	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	for _, m := range matches {
		_, err := f.rounds.EnterResult(ctx, EnterResultInput{
			TournamentID: f.tournament.ID,
			RoundID:      rd.ID,
			MatchID:      m.ID,
			ScoreOne:     scoreOne,
			ScoreTwo:     scoreTwo,
		})
		require.NoError(t, err)
	}

	closed, err := f.rounds.CloseRoundIfComplete(ctx, rd.ID)
	require.NoError(t, err)
	require.False(t, closed.IsOpen())

	return closed, matches
}

func matchPairs(matches []round.Match) [][2]int64 {
	out := make([][2]int64, 0, len(matches))
	for _, m := range matches {
		out = append(out, [2]int64{m.PlayerOneID, m.PlayerTwoID})
	}
	return out
}

func TestRoundService_FirstRoundPairsTopHalfWithBottomHalf(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	ids := f.tournament.PlayerIDs
	assert.Equal(t, [][2]int64{
		{ids[0], ids[4]},
		{ids[1], ids[5]},
		{ids[2], ids[6]},
		{ids[3], ids[7]},
	}, matchPairs(matches))
	assert.Equal(t, 1, rd.Ordinal)
	assert.Equal(t, "Round 1", rd.Name)
	assert.Len(t, rd.MatchIDs, 4)
	assert.Equal(t, "Player A", matches[0].PlayerOneName)

	remaining, err := f.tournaments.RemainingPairings(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, tournament.TotalPairings-tournament.MatchesPerRound)
}

func TestRoundService_FourRoundsEndTournamentWithoutRepeats(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	remaining, err := f.tournaments.RemainingPairings(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	seen := make(map[pairing.Pairing]int)
	for i := 1; i <= 4; i++ {
		rd, matches := f.playRound(t, round.ScoreWin, round.ScoreLoss)
		require.Equal(t, i, rd.Ordinal)
		require.Len(t, matches, tournament.MatchesPerRound)

		slots := make(map[int64]struct{}, tournament.RequiredPlayers)
		for _, m := range matches {
			slots[m.PlayerOneID] = struct{}{}
			slots[m.PlayerTwoID] = struct{}{}
			p := pairing.NewPairing(m.PlayerOneID, m.PlayerTwoID)
			seen[p]++
			require.Equalf(t, 1, seen[p], "pairing %v played twice", p)
		}
		require.Len(t, slots, tournament.RequiredPlayers)

		remaining, err := f.tournaments.RemainingPairings(ctx, f.tournament.ID)
		require.NoError(t, err)
		require.Len(t, remaining, tournament.TotalPairings-i*tournament.MatchesPerRound)
	}

	got, err := f.tournaments.Get(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.PlayedRounds)
	assert.Len(t, got.RoundIDs, 4)
	require.NotNil(t, got.EndedAt)

	remaining, err = f.tournaments.RemainingPairings(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 12)

	_, _, err = f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, round.ErrTournamentComplete))
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestRoundService_GenerateRejectsWhileRoundOpen(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	_, _, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	_, _, err = f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, round.ErrRoundStillOpen))
	assert.True(t, errors.Is(err, ErrConflict))

	got, err := f.tournaments.Get(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PlayedRounds)
}

func TestRoundService_EnterResultReentryAppliesNetDelta(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)
	m := matches[0]
	input := EnterResultInput{TournamentID: f.tournament.ID, RoundID: rd.ID, MatchID: m.ID}

	input.ScoreOne, input.ScoreTwo = 1, 0
	stored, err := f.rounds.EnterResult(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, stored.ResultAt)

	input.ScoreOne, input.ScoreTwo = 0, 1
	_, err = f.rounds.EnterResult(ctx, input)
	require.NoError(t, err)

	detail, err := f.rounds.GetRound(ctx, f.tournament.ID, rd.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, detail.Matches[0].ScoreOne)
	assert.Equal(t, 1.0, detail.Matches[0].ScoreTwo)

	assertScore(t, f, m.PlayerOneID, 0)
	assertScore(t, f, m.PlayerTwoID, 1)

	input.ScoreOne, input.ScoreTwo = 0.5, 0.5
	_, err = f.rounds.EnterResult(ctx, input)
	require.NoError(t, err)

	assertScore(t, f, m.PlayerOneID, 0.5)
	assertScore(t, f, m.PlayerTwoID, 0.5)
}

func TestRoundService_EnterResultRejectsInvalidScoresWithoutSideEffect(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	_, err = f.rounds.EnterResult(ctx, EnterResultInput{
		TournamentID: f.tournament.ID,
		RoundID:      rd.ID,
		MatchID:      matches[0].ID,
		ScoreOne:     1,
		ScoreTwo:     1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, round.ErrInvalidScore))

	detail, err := f.rounds.GetRound(ctx, f.tournament.ID, rd.ID)
	require.NoError(t, err)
	assert.False(t, detail.Matches[0].HasResult())

	scores, err := memory.NewScoreRepository(f.store).ListByTournament(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRoundService_EnterResultChecksOwnership(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	_, err = f.rounds.EnterResult(ctx, EnterResultInput{
		TournamentID: f.tournament.ID,
		RoundID:      rd.ID,
		MatchID:      matches[len(matches)-1].ID + 100,
		ScoreOne:     1,
	})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.rounds.EnterResult(ctx, EnterResultInput{
		TournamentID: f.tournament.ID + 1,
		RoundID:      rd.ID,
		MatchID:      matches[0].ID,
		ScoreOne:     1,
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRoundService_CloseRoundLifecycle(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	rd, matches, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	_, err = f.rounds.CloseRoundIfComplete(ctx, rd.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, round.ErrRoundIncomplete))

	for _, m := range matches {
		_, err := f.rounds.EnterResult(ctx, EnterResultInput{
			TournamentID: f.tournament.ID,
			RoundID:      rd.ID,
			MatchID:      m.ID,
			ScoreOne:     round.ScoreDraw,
			ScoreTwo:     round.ScoreDraw,
		})
		require.NoError(t, err)
	}

	closed, err := f.rounds.CloseRoundIfComplete(ctx, rd.ID)
	require.NoError(t, err)
	assert.NotNil(t, closed.EndedAt)

	_, err = f.rounds.CloseRoundIfComplete(ctx, rd.ID)
	assert.True(t, errors.Is(err, round.ErrAlreadyClosed))

	_, err = f.rounds.EnterResult(ctx, EnterResultInput{
		TournamentID: f.tournament.ID,
		RoundID:      rd.ID,
		MatchID:      matches[0].ID,
		ScoreOne:     1,
	})
	assert.True(t, errors.Is(err, round.ErrRoundClosed))

	got, err := f.tournaments.Get(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndedAt)
}

func TestRoundService_SingleRoundTournamentEndsOnFirstClose(t *testing.T) {
	f := newTournamentFixture(t, 1)
	f.playRound(t, round.ScoreLoss, round.ScoreWin)

	got, err := f.tournaments.Get(context.Background(), f.tournament.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.EndedAt)
	assert.Equal(t, 1, got.PlayedRounds)
}

func TestRoundService_CurrentAndListRounds(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	_, err := f.rounds.CurrentRound(ctx, f.tournament.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	first, _ := f.playRound(t, round.ScoreWin, round.ScoreLoss)
	second, _, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	current, err := f.rounds.CurrentRound(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.Round.ID)
	assert.Len(t, current.Matches, 4)

	all, err := f.rounds.ListRounds(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].Round.ID)
	assert.Equal(t, second.ID, all[1].Round.ID)
}

func TestRankingService_IdempotentAndScoreOrdered(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	_, matches := f.playRound(t, round.ScoreLoss, round.ScoreWin)

	first, err := f.ranking.Ranking(ctx, f.tournament.ID)
	require.NoError(t, err)
	second, err := f.ranking.Ranking(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	winners := make(map[int64]struct{}, len(matches))
	for _, m := range matches {
		winners[m.PlayerTwoID] = struct{}{}
	}
	for _, st := range first[:4] {
		_, ok := winners[st.Player.ID]
		assert.Truef(t, ok, "player %d should rank in the top half", st.Player.ID)
		assert.Equal(t, 1.0, st.Score)
	}
	assertPositions(t, first)
}

func assertScore(t *testing.T, f *tournamentFixture, playerID int64, want float64) {
	t.Helper()

	got, ok, err := memory.NewScoreRepository(f.store).Get(context.Background(), f.tournament.ID, playerID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got.Value)
}

func assertPositions(t *testing.T, standings []standing.Standing) {
	t.Helper()

	for i, st := range standings {
		assert.Equal(t, i+1, st.Position)
	}
}

type failingTournamentRepo struct {
	*memory.TournamentRepository
}

func (failingTournamentRepo) Update(context.Context, tournament.Tournament) error {
	return errors.New("tournament update unavailable")
}

func TestRoundService_GenerateOpensRoundInOneWrite(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	service := NewRoundService(
		failingTournamentRepo{memory.NewTournamentRepository(f.store)},
		memory.NewPlayerRepository(f.store),
		memory.NewPairingHistoryRepository(f.store),
		memory.NewRoundRepository(f.store),
		memory.NewMatchRepository(f.store),
		memory.NewScoreRepository(f.store),
		nil,
	)

	rd, _, err := service.GenerateRound(ctx, f.tournament.ID)
	require.NoError(t, err)

	got, err := f.tournaments.Get(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PlayedRounds)
	assert.Equal(t, []int64{rd.ID}, got.RoundIDs)

	remaining, err := memory.NewPairingHistoryRepository(f.store).ListRemaining(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 24)
}

func TestRoundService_GenerateLeavesNoRoundWhenOpeningFails(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()
	history := memory.NewPairingHistoryRepository(f.store)
	ids := f.tournament.PlayerIDs

	require.NoError(t, history.Seed(ctx, f.tournament.ID, pairing.AllPairings(ids)))
	// the first round pairs ids[0] with ids[4]; drop it behind the generator's back
	require.NoError(t, history.Consume(ctx, f.tournament.ID, ids[0], ids[4]))

	_, _, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pairing.ErrPairingNotFound))

	rounds, err := f.rounds.ListRounds(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, rounds)

	got, err := f.tournaments.Get(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PlayedRounds)
	assert.Empty(t, got.RoundIDs)

	remaining, err := history.ListRemaining(ctx, f.tournament.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 27)
}

func TestRoundService_GenerateMissingLatestRound(t *testing.T) {
	f := newTournamentFixture(t, 4)
	ctx := context.Background()

	item := f.tournament
	item.PlayedRounds = 1
	item.RoundIDs = []int64{999}
	require.NoError(t, memory.NewTournamentRepository(f.store).Update(ctx, item))

	_, _, err := f.rounds.GenerateRound(ctx, f.tournament.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "latest round=999")
}
