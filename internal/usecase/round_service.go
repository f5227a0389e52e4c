package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/score"
	"github.com/riskibarqy/chess-tournament/internal/domain/standing"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/platform/logging"
)

type EnterResultInput struct {
	TournamentID int64
	RoundID      int64
	MatchID      int64
	ScoreOne     float64
	ScoreTwo     float64
}

// RoundDetail is a round with its matches in generation order.
type RoundDetail struct {
	Round   round.Round
	Matches []round.Match
}

type RoundService struct {
	tournamentRepo tournament.Repository
	historyRepo    pairing.HistoryRepository
	roundRepo      round.Repository
	matchRepo      round.MatchRepository
	scoreRepo      score.Repository
	ranking        *RankingService
	locks          *tournamentLocks
	logger         *logging.Logger
	now            func() time.Time
}

func NewRoundService(
	tournamentRepo tournament.Repository,
	playerRepo player.Repository,
	historyRepo pairing.HistoryRepository,
	roundRepo round.Repository,
	matchRepo round.MatchRepository,
	scoreRepo score.Repository,
	logger *logging.Logger,
) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RoundService{
		tournamentRepo: tournamentRepo,
		historyRepo:    historyRepo,
		roundRepo:      roundRepo,
		matchRepo:      matchRepo,
		scoreRepo:      scoreRepo,
		ranking:        NewRankingService(tournamentRepo, playerRepo, scoreRepo),
		locks:          newTournamentLocks(),
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// GenerateRound ranks the players, pairs them and opens the new round. The
// round repository records the round on the tournament and consumes its
// pairings in the same write.
func (s *RoundService) GenerateRound(ctx context.Context, tournamentID int64) (round.Round, []round.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.GenerateRound", tournamentAttr(tournamentID))
	defer span.End()

	unlock := s.locks.lock(tournamentID)
	defer unlock()

	item, err := loadTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return round.Round{}, nil, err
	}
	if item.IsComplete() {
		return round.Round{}, nil, fmt.Errorf("%w: %w: tournament=%d played=%d", ErrConflict, round.ErrTournamentComplete, item.ID, item.PlayedRounds)
	}
	if latestID, ok := item.LatestRoundID(); ok {
		latest, exists, err := s.roundRepo.GetByID(ctx, latestID)
		if err != nil {
			return round.Round{}, nil, fmt.Errorf("get latest round: %w", err)
		}
		if !exists {
			return round.Round{}, nil, fmt.Errorf("%w: latest round=%d tournament=%d", ErrNotFound, latestID, item.ID)
		}
		if latest.IsOpen() {
			return round.Round{}, nil, fmt.Errorf("%w: %w: round=%d", ErrConflict, round.ErrRoundStillOpen, latest.ID)
		}
	}

	standings, err := s.ranking.rank(ctx, item)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("rank players: %w", err)
	}
	ranked := standing.PlayerIDs(standings)

	result, err := s.pairRound(ctx, item, ranked)
	if err != nil {
		return round.Round{}, nil, err
	}

	names := make(map[int64]string, len(standings))
	for _, st := range standings {
		names[st.Player.ID] = st.Player.DisplayName()
	}

	ordinal := item.PlayedRounds + 1
	matches := make([]round.Match, 0, len(result.Matchups))
	for _, m := range result.Matchups {
		matches = append(matches, round.Match{
			PlayerOneID:   m.PlayerOneID,
			PlayerTwoID:   m.PlayerTwoID,
			PlayerOneName: names[m.PlayerOneID],
			PlayerTwoName: names[m.PlayerTwoID],
		})
	}

	created, createdMatches, err := s.roundRepo.Create(ctx, round.Round{
		TournamentID: item.ID,
		Ordinal:      ordinal,
		Name:         round.NameFor(ordinal),
		StartedAt:    s.now(),
	}, matches)
	if err != nil {
		if errors.Is(err, round.ErrRoundStillOpen) {
			return round.Round{}, nil, fmt.Errorf("%w: create round: %w", ErrConflict, err)
		}
		return round.Round{}, nil, fmt.Errorf("create round: %w", err)
	}

	s.logger.InfoContext(ctx, "round generated",
		"tournament_id", item.ID,
		"round_id", created.ID,
		"ordinal", created.Ordinal,
		"strategy", string(result.Strategy),
		"attempts", result.Attempts,
	)
	return created, createdMatches, nil
}

func (s *RoundService) pairRound(ctx context.Context, item tournament.Tournament, ranked []int64) (pairing.Result, error) {
	remaining, err := s.historyRepo.ListRemaining(ctx, item.ID)
	if err != nil {
		return pairing.Result{}, fmt.Errorf("list remaining pairings: %w", err)
	}

	if item.PlayedRounds == 0 {
		if len(remaining) == 0 {
			if err := s.historyRepo.Seed(ctx, item.ID, pairing.AllPairings(ranked)); err != nil {
				return pairing.Result{}, fmt.Errorf("seed pairing history: %w", err)
			}
		}
		result, err := pairing.FirstRound(ranked)
		if err != nil {
			return pairing.Result{}, fmt.Errorf("pair first round: %w", err)
		}
		return result, nil
	}

	result, err := pairing.NextRound(ranked, pairing.NewSet(remaining))
	if err != nil {
		if errors.Is(err, pairing.ErrExhaustedSearch) {
			s.logger.WarnContext(ctx, "no pairing left for next round",
				"tournament_id", item.ID,
				"remaining_pairings", len(remaining),
			)
		}
		return pairing.Result{}, fmt.Errorf("pair round %d: %w", item.PlayedRounds+1, err)
	}
	return result, nil
}

// EnterResult stores a match result and applies the score difference to the
// ledger. Entering a result again replaces the previous one.
func (s *RoundService) EnterResult(ctx context.Context, input EnterResultInput) (round.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.EnterResult", tournamentAttr(input.TournamentID), roundAttr(input.RoundID))
	defer span.End()

	if err := round.ValidateScores(input.ScoreOne, input.ScoreTwo); err != nil {
		return round.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	unlock := s.locks.lock(input.TournamentID)
	defer unlock()

	if _, err := loadTournament(ctx, s.tournamentRepo, input.TournamentID); err != nil {
		return round.Match{}, err
	}
	rd, err := s.loadRound(ctx, input.TournamentID, input.RoundID)
	if err != nil {
		return round.Match{}, err
	}
	if !rd.IsOpen() {
		return round.Match{}, fmt.Errorf("%w: %w: round=%d", ErrConflict, round.ErrRoundClosed, rd.ID)
	}

	match, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return round.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists || match.RoundID != rd.ID {
		return round.Match{}, fmt.Errorf("%w: match=%d round=%d", ErrNotFound, input.MatchID, rd.ID)
	}

	deltaOne := input.ScoreOne - match.ScoreOne
	deltaTwo := input.ScoreTwo - match.ScoreTwo
	resultAt := s.now()

	if err := s.matchRepo.UpdateResult(ctx, match.ID, input.ScoreOne, input.ScoreTwo, resultAt); err != nil {
		return round.Match{}, fmt.Errorf("update match result: %w", err)
	}
	if _, err := s.scoreRepo.Add(ctx, input.TournamentID, match.PlayerOneID, deltaOne); err != nil {
		return round.Match{}, fmt.Errorf("add score player=%d: %w", match.PlayerOneID, err)
	}
	if _, err := s.scoreRepo.Add(ctx, input.TournamentID, match.PlayerTwoID, deltaTwo); err != nil {
		return round.Match{}, fmt.Errorf("add score player=%d: %w", match.PlayerTwoID, err)
	}

	// generation already consumed the pair, this only repairs older histories
	stillUnplayed, err := s.historyRepo.Contains(ctx, input.TournamentID, match.PlayerOneID, match.PlayerTwoID)
	if err != nil {
		return round.Match{}, fmt.Errorf("check pairing history: %w", err)
	}
	if stillUnplayed {
		if err := s.historyRepo.Consume(ctx, input.TournamentID, match.PlayerOneID, match.PlayerTwoID); err != nil {
			return round.Match{}, fmt.Errorf("consume pairing: %w", err)
		}
	}

	match.ScoreOne = input.ScoreOne
	match.ScoreTwo = input.ScoreTwo
	match.ResultAt = &resultAt

	s.logger.InfoContext(ctx, "match result entered",
		"tournament_id", input.TournamentID,
		"round_id", rd.ID,
		"match_id", match.ID,
		"score_one", input.ScoreOne,
		"score_two", input.ScoreTwo,
	)
	return match, nil
}

// CloseRoundIfComplete closes the round once every match has a result.
func (s *RoundService) CloseRoundIfComplete(ctx context.Context, roundID int64) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CloseRoundIfComplete", roundAttr(roundID))
	defer span.End()

	if roundID <= 0 {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	rd, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, roundID)
	}

	unlock := s.locks.lock(rd.TournamentID)
	defer unlock()

	// reload under the tournament lock
	rd, _, err = s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !rd.IsOpen() {
		return round.Round{}, fmt.Errorf("%w: %w: round=%d", ErrConflict, round.ErrAlreadyClosed, rd.ID)
	}

	matches, err := s.matchRepo.ListByRound(ctx, rd.ID)
	if err != nil {
		return round.Round{}, fmt.Errorf("list round matches: %w", err)
	}
	pending := 0
	for _, m := range matches {
		if !m.HasResult() {
			pending++
		}
	}
	if pending > 0 {
		return round.Round{}, fmt.Errorf("%w: %w: round=%d pending=%d", ErrConflict, round.ErrRoundIncomplete, rd.ID, pending)
	}

	return s.closeRound(ctx, rd)
}

// closeRound must run under the tournament lock.
func (s *RoundService) closeRound(ctx context.Context, rd round.Round) (round.Round, error) {
	if !rd.IsOpen() {
		return round.Round{}, fmt.Errorf("%w: %w: round=%d", ErrConflict, round.ErrAlreadyClosed, rd.ID)
	}

	item, err := loadTournament(ctx, s.tournamentRepo, rd.TournamentID)
	if err != nil {
		return round.Round{}, err
	}

	endedAt := s.now()
	if err := s.roundRepo.Close(ctx, rd.ID, endedAt); err != nil {
		return round.Round{}, fmt.Errorf("close round: %w", err)
	}
	rd.EndedAt = &endedAt

	latestID, _ := item.LatestRoundID()
	if item.PlayedRounds == item.NbRounds && latestID == rd.ID {
		item.EndedAt = &endedAt
		if err := s.tournamentRepo.Update(ctx, item); err != nil {
			return round.Round{}, fmt.Errorf("end tournament: %w", err)
		}
		s.logger.InfoContext(ctx, "tournament ended", "tournament_id", item.ID, "nb_rounds", item.NbRounds)
	}

	s.logger.InfoContext(ctx, "round closed", "tournament_id", rd.TournamentID, "round_id", rd.ID, "ordinal", rd.Ordinal)
	return rd, nil
}

func (s *RoundService) CurrentRound(ctx context.Context, tournamentID int64) (RoundDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CurrentRound", tournamentAttr(tournamentID))
	defer span.End()

	item, err := loadTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return RoundDetail{}, err
	}
	latestID, ok := item.LatestRoundID()
	if !ok {
		return RoundDetail{}, fmt.Errorf("%w: tournament=%d has no round yet", ErrNotFound, tournamentID)
	}
	return s.GetRound(ctx, tournamentID, latestID)
}

func (s *RoundService) GetRound(ctx context.Context, tournamentID, roundID int64) (RoundDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.GetRound", tournamentAttr(tournamentID), roundAttr(roundID))
	defer span.End()

	rd, err := s.loadRound(ctx, tournamentID, roundID)
	if err != nil {
		return RoundDetail{}, err
	}
	matches, err := s.matchRepo.ListByRound(ctx, rd.ID)
	if err != nil {
		return RoundDetail{}, fmt.Errorf("list round matches: %w", err)
	}
	return RoundDetail{Round: rd, Matches: matches}, nil
}

func (s *RoundService) ListRounds(ctx context.Context, tournamentID int64) ([]RoundDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.ListRounds", tournamentAttr(tournamentID))
	defer span.End()

	if _, err := loadTournament(ctx, s.tournamentRepo, tournamentID); err != nil {
		return nil, err
	}
	rounds, err := s.roundRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]RoundDetail, 0, len(rounds))
	for _, rd := range rounds {
		matches, err := s.matchRepo.ListByRound(ctx, rd.ID)
		if err != nil {
			return nil, fmt.Errorf("list matches round=%d: %w", rd.ID, err)
		}
		out = append(out, RoundDetail{Round: rd, Matches: matches})
	}
	return out, nil
}

func (s *RoundService) loadRound(ctx context.Context, tournamentID, roundID int64) (round.Round, error) {
	if roundID <= 0 {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}
	rd, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists || rd.TournamentID != tournamentID {
		return round.Round{}, fmt.Errorf("%w: round=%d tournament=%d", ErrNotFound, roundID, tournamentID)
	}
	return rd, nil
}
