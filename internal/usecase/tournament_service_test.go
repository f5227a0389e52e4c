package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/memory"
)

func newSeededTournamentService(t *testing.T) (*TournamentService, []int64) {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))

	players, err := memory.NewPlayerRepository(store).List(context.Background())
	require.NoError(t, err)
	ids := make([]int64, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}

	service := NewTournamentService(
		memory.NewTournamentRepository(store),
		memory.NewPlayerRepository(store),
		memory.NewPairingHistoryRepository(store),
		0,
		nil,
	)
	return service, ids
}

func TestTournamentService_CreateAppliesDefaultRounds(t *testing.T) {
	service, ids := newSeededTournamentService(t)

	created, err := service.Create(context.Background(), CreateTournamentInput{
		Name:      " Winter Blitz ",
		Location:  "Oslo",
		Ruleset:   tournament.RulesetBlitz,
		PlayerIDs: ids,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Winter Blitz", created.Name)
	assert.Equal(t, tournament.DefaultNbRounds, created.NbRounds)
	assert.Zero(t, created.PlayedRounds)
	assert.Nil(t, created.EndedAt)
	assert.False(t, created.StartedAt.IsZero())

	listed, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestTournamentService_CreateValidation(t *testing.T) {
	service, ids := newSeededTournamentService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, CreateTournamentInput{
		Name: "Short", Location: "Oslo", Ruleset: tournament.RulesetBlitz, PlayerIDs: ids[:7],
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, tournament.ErrInvalidPlayerCount))

	unknown := append(append([]int64(nil), ids[:7]...), 99)
	_, err = service.Create(ctx, CreateTournamentInput{
		Name: "Ghost", Location: "Oslo", Ruleset: tournament.RulesetBlitz, PlayerIDs: unknown,
	})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = service.Get(ctx, 42)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = service.RemainingPairings(ctx, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
