package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/standing"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

type PlayerSort string

const (
	PlayerSortDefault PlayerSort = ""
	PlayerSortAlpha   PlayerSort = "alpha"
	PlayerSortElo     PlayerSort = "elo"
)

func ParsePlayerSort(raw string) (PlayerSort, error) {
	switch v := PlayerSort(strings.ToLower(strings.TrimSpace(raw))); v {
	case PlayerSortDefault, PlayerSortAlpha, PlayerSortElo:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unsupported sort %q, expected alpha or elo", ErrInvalidInput, raw)
	}
}

// TournamentSummary is one row of the tournaments overview report.
type TournamentSummary struct {
	Tournament        tournament.Tournament
	Leader            *standing.Standing
	ClosedRounds      int
	MatchesWithResult int
}

type ReportService struct {
	playerRepo     player.Repository
	tournamentRepo tournament.Repository
	roundRepo      round.Repository
	matchRepo      round.MatchRepository
	ranking        *RankingService
	workers        int
	logger         *logging.Logger
}

func NewReportService(
	playerRepo player.Repository,
	tournamentRepo tournament.Repository,
	roundRepo round.Repository,
	matchRepo round.MatchRepository,
	ranking *RankingService,
	workers int,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 1
	}

	return &ReportService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		roundRepo:      roundRepo,
		matchRepo:      matchRepo,
		ranking:        ranking,
		workers:        workers,
		logger:         logger,
	}
}

func (s *ReportService) Players(ctx context.Context, order PlayerSort) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Players")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	sortPlayers(items, order)
	return items, nil
}

func (s *ReportService) Tournaments(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Tournaments")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *ReportService) TournamentPlayers(ctx context.Context, tournamentID int64, order PlayerSort) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.TournamentPlayers", tournamentAttr(tournamentID))
	defer span.End()

	item, err := loadTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	items, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("get tournament players: %w", err)
	}
	sortPlayers(items, order)
	return items, nil
}

// TournamentOverview summarizes every tournament. Tournaments are loaded in
// parallel on a bounded worker pool.
func (s *ReportService) TournamentOverview(ctx context.Context) ([]TournamentSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.TournamentOverview")
	defer span.End()

	items, err := s.Tournaments(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []TournamentSummary{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]TournamentSummary, len(items))
	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, item := range items {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, err := s.summarize(ctx, item)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			out[i] = row
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		s.logger.WarnContext(ctx, "tournament overview failed", "error", firstErr)
		return nil, firstErr
	}
	return out, nil
}

func (s *ReportService) summarize(ctx context.Context, item tournament.Tournament) (TournamentSummary, error) {
	row := TournamentSummary{Tournament: item}

	standings, err := s.ranking.rank(ctx, item)
	if err != nil {
		return TournamentSummary{}, fmt.Errorf("rank tournament=%d: %w", item.ID, err)
	}
	if len(standings) > 0 {
		leader := standings[0]
		row.Leader = &leader
	}

	rounds, err := s.roundRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return TournamentSummary{}, fmt.Errorf("list rounds tournament=%d: %w", item.ID, err)
	}
	for _, rd := range rounds {
		if !rd.IsOpen() {
			row.ClosedRounds++
		}
		matches, err := s.matchRepo.ListByRound(ctx, rd.ID)
		if err != nil {
			return TournamentSummary{}, fmt.Errorf("list matches round=%d: %w", rd.ID, err)
		}
		for _, m := range matches {
			if m.HasResult() {
				row.MatchesWithResult++
			}
		}
	}

	return row, nil
}

func sortPlayers(items []player.Player, order PlayerSort) {
	switch order {
	case PlayerSortAlpha:
		sort.SliceStable(items, func(i, j int) bool {
			li, lj := strings.ToLower(items[i].LastName), strings.ToLower(items[j].LastName)
			if li != lj {
				return li < lj
			}
			return strings.ToLower(items[i].FirstName) < strings.ToLower(items[j].FirstName)
		})
	case PlayerSortElo:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Elo > items[j].Elo })
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}
}
