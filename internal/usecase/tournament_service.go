package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

type CreateTournamentInput struct {
	Name        string
	Location    string
	Description string
	Ruleset     tournament.Ruleset
	NbRounds    int
	PlayerIDs   []int64
}

type TournamentService struct {
	tournamentRepo  tournament.Repository
	playerRepo      player.Repository
	historyRepo     pairing.HistoryRepository
	defaultNbRounds int
	logger          *logging.Logger
	now             func() time.Time
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	historyRepo pairing.HistoryRepository,
	defaultNbRounds int,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultNbRounds <= 0 {
		defaultNbRounds = tournament.DefaultNbRounds
	}

	return &TournamentService{
		tournamentRepo:  tournamentRepo,
		playerRepo:      playerRepo,
		historyRepo:     historyRepo,
		defaultNbRounds: defaultNbRounds,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	nbRounds := input.NbRounds
	if nbRounds == 0 {
		nbRounds = s.defaultNbRounds
	}

	item := tournament.Tournament{
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		Ruleset:     input.Ruleset,
		NbRounds:    nbRounds,
		PlayerIDs:   append([]int64(nil), input.PlayerIDs...),
		StartedAt:   s.now(),
	}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	players, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament players: %w", err)
	}
	if len(players) != len(item.PlayerIDs) {
		return tournament.Tournament{}, fmt.Errorf("%w: missing players %v", ErrNotFound, missingPlayerIDs(item.PlayerIDs, players))
	}

	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		"tournament_id", created.ID,
		"ruleset", created.Ruleset,
		"nb_rounds", created.NbRounds,
	)
	return created, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get", tournamentAttr(tournamentID))
	defer span.End()

	return loadTournament(ctx, s.tournamentRepo, tournamentID)
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// RemainingPairings lists the pairs that have not been played yet. It is empty
// before the first round is generated.
func (s *TournamentService) RemainingPairings(ctx context.Context, tournamentID int64) ([]pairing.Pairing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RemainingPairings", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := loadTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}

	items, err := s.historyRepo.ListRemaining(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list remaining pairings: %w", err)
	}
	return items, nil
}

func loadTournament(ctx context.Context, repo tournament.Repository, tournamentID int64) (tournament.Tournament, error) {
	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}
	return item, nil
}

func missingPlayerIDs(wanted []int64, found []player.Player) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, p := range found {
		present[p.ID] = struct{}{}
	}

	out := make([]int64, 0)
	for _, id := range wanted {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
