package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/score"
	"github.com/riskibarqy/chess-tournament/internal/domain/standing"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
)

type RankingService struct {
	tournamentRepo tournament.Repository
	playerRepo     player.Repository
	scoreRepo      score.Repository
}

func NewRankingService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	scoreRepo score.Repository,
) *RankingService {
	return &RankingService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		scoreRepo:      scoreRepo,
	}
}

// Ranking orders the tournament players by (score desc, elo desc).
func (s *RankingService) Ranking(ctx context.Context, tournamentID int64) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Ranking", tournamentAttr(tournamentID))
	defer span.End()

	item, err := loadTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, item)
}

func (s *RankingService) rank(ctx context.Context, item tournament.Tournament) ([]standing.Standing, error) {
	var (
		players []player.Player
		scores  []score.Score
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs)
		if err != nil {
			return fmt.Errorf("get tournament players: %w", err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.scoreRepo.ListByTournament(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list tournament scores: %w", err)
		}
		scores = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	if len(players) != len(item.PlayerIDs) {
		return nil, fmt.Errorf("%w: tournament=%d missing players %v", ErrNotFound, item.ID, missingPlayerIDs(item.PlayerIDs, players))
	}

	playersByID := make(map[int64]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}
	scoresByPlayer := make(map[int64]float64, len(scores))
	for _, sc := range scores {
		scoresByPlayer[sc.PlayerID] = sc.Value
	}

	return standing.Rank(item.PlayerIDs, playersByID, scoresByPlayer), nil
}
