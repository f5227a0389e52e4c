package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	playermock "github.com/riskibarqy/chess-tournament/internal/mocks/domain/player"
)

func TestPlayerService_Register_TrimsAndCreatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil)

	birth := time.Date(1985, 4, 13, 0, 0, 0, 0, time.UTC)
	repo.
		On("Create", ctx, mock.MatchedBy(func(p player.Player) bool {
			return p.FirstName == "Garry" && p.LastName == "Kasparov" && p.Elo == 2851
		})).
		Return(player.Player{ID: 9, FirstName: "Garry", LastName: "Kasparov", BirthDate: birth, Gender: player.GenderMale, Elo: 2851}, nil).
		Once()

	got, err := service.Register(ctx, RegisterPlayerInput{
		FirstName: "  Garry ",
		LastName:  "Kasparov",
		BirthDate: birth,
		Gender:    player.GenderMale,
		Elo:       2851,
	})
	if err != nil {
		t.Fatalf("register player: %v", err)
	}
	if got.ID != 9 {
		t.Fatalf("unexpected player id: %d", got.ID)
	}
}

func TestPlayerService_Register_InvalidInputSkipsRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil)

	_, err := service.Register(context.Background(), RegisterPlayerInput{FirstName: "Anna", LastName: "Muzychuk", Gender: player.GenderFemale})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_UpdateEloUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil)

	repo.On("GetByID", ctx, int64(4)).Return(player.Player{ID: 4, Elo: 2400}, true, nil).Once()
	repo.On("UpdateElo", ctx, int64(4), 2455).Return(nil).Once()

	got, err := service.UpdateElo(ctx, 4, 2455)
	if err != nil {
		t.Fatalf("update elo: %v", err)
	}
	if got.Elo != 2455 {
		t.Fatalf("unexpected elo: %d", got.Elo)
	}
}

func TestPlayerService_UpdateElo_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil)

	repo.On("GetByID", ctx, int64(77)).Return(player.Player{}, false, nil).Once()

	_, err := service.UpdateElo(ctx, 77, 2000)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := service.UpdateElo(ctx, 77, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
