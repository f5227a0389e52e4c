package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

type RegisterPlayerInput struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Gender    player.Gender
	Elo       int
}

type PlayerService struct {
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *PlayerService) Register(ctx context.Context, input RegisterPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Register")
	defer span.End()

	item := player.Player{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		Elo:       input.Elo,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered", "player_id", created.ID, "elo", created.Elo)
	return created, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

// UpdateElo changes a player's rating. Rankings of running tournaments pick
// up the new value on their next read.
func (s *PlayerService) UpdateElo(ctx context.Context, playerID int64, elo int) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateElo")
	defer span.End()

	if elo <= 0 {
		return player.Player{}, fmt.Errorf("%w: elo must be greater than zero", ErrInvalidInput)
	}

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	if err := s.playerRepo.UpdateElo(ctx, playerID, elo); err != nil {
		return player.Player{}, fmt.Errorf("update player elo: %w", err)
	}

	s.logger.InfoContext(ctx, "player elo updated", "player_id", playerID, "previous_elo", item.Elo, "elo", elo)
	item.Elo = elo
	return item, nil
}
