package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	qb "github.com/riskibarqy/chess-tournament/internal/platform/querybuilder"
)

var roundSelectColumns = []string{
	"id",
	"tournament_id",
	"ordinal",
	"name",
	"started_at",
	"ended_at",
	"match_ids",
}

var matchSelectColumns = []string{
	"id",
	"round_id",
	"player_one_id",
	"player_two_id",
	"player_one_name",
	"player_two_name",
	"score_one",
	"score_two",
	"result_at",
}

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

// Create opens the round in one transaction: the round and its matches, the
// tournament progress and the consumed pairings commit together.
func (r *RoundRepository) Create(ctx context.Context, item round.Round, matches []round.Match) (round.Round, []round.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("begin tx create round: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	openQuery, openArgs, err := qb.Select("id").From("rounds").
		Where(qb.Eq("tournament_id", item.TournamentID), qb.IsNull("ended_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("build open round query: %w", err)
	}
	var openID int64
	switch err := tx.GetContext(ctx, &openID, openQuery, openArgs...); {
	case err == nil:
		return round.Round{}, nil, fmt.Errorf("%w: tournament=%d round=%d", round.ErrRoundStillOpen, item.TournamentID, openID)
	case !isNotFound(err):
		return round.Round{}, nil, fmt.Errorf("check open round: %w", err)
	}

	roundQuery, roundArgs, err := qb.InsertModel("rounds", roundInsertModel{
		TournamentID: item.TournamentID,
		Ordinal:      item.Ordinal,
		Name:         item.Name,
		StartedAt:    item.StartedAt,
		MatchIDs:     pq.Int64Array{},
	}, "RETURNING id")
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("build insert round query: %w", err)
	}

	var roundID int64
	if err := tx.GetContext(ctx, &roundID, roundQuery, roundArgs...); err != nil {
		if isUniqueViolation(err) {
			return round.Round{}, nil, fmt.Errorf("%w: tournament=%d ordinal=%d", round.ErrRoundStillOpen, item.TournamentID, item.Ordinal)
		}
		return round.Round{}, nil, fmt.Errorf("insert round: %w", err)
	}

	created := make([]round.Match, 0, len(matches))
	matchIDs := make(pq.Int64Array, 0, len(matches))
	for _, m := range matches {
		query, args, err := qb.InsertModel("matches", matchInsertModel{
			RoundID:       roundID,
			PlayerOneID:   m.PlayerOneID,
			PlayerTwoID:   m.PlayerTwoID,
			PlayerOneName: m.PlayerOneName,
			PlayerTwoName: m.PlayerTwoName,
			ScoreOne:      m.ScoreOne,
			ScoreTwo:      m.ScoreTwo,
		}, "RETURNING "+joinColumns(matchSelectColumns))
		if err != nil {
			return round.Round{}, nil, fmt.Errorf("build insert match query: %w", err)
		}

		var row matchTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return round.Round{}, nil, fmt.Errorf("insert match: %w", err)
		}
		created = append(created, matchFromRow(row))
		matchIDs = append(matchIDs, row.ID)
	}

	updateQuery, updateArgs, err := qb.Update("rounds").
		Set("match_ids", matchIDs).
		Where(qb.Eq("id", roundID)).
		Suffix("RETURNING " + joinColumns(roundSelectColumns)).
		ToSQL()
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("build update round matches query: %w", err)
	}

	var row roundTableModel
	if err := tx.GetContext(ctx, &row, updateQuery, updateArgs...); err != nil {
		return round.Round{}, nil, fmt.Errorf("update round matches: %w", err)
	}

	// played_rounds guards against a concurrent opening of the same ordinal
	progressQuery, progressArgs, err := qb.Update("tournaments").
		Set("played_rounds", item.Ordinal).
		SetExpr("round_ids", "array_append(round_ids, ?)", roundID).
		Where(qb.Eq("id", item.TournamentID), qb.Eq("played_rounds", item.Ordinal-1)).
		ToSQL()
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("build update tournament rounds query: %w", err)
	}
	result, err := tx.ExecContext(ctx, progressQuery, progressArgs...)
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("update tournament rounds: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return round.Round{}, nil, fmt.Errorf("update tournament rounds rows affected: %w", err)
	}
	if affected == 0 {
		return round.Round{}, nil, fmt.Errorf("%w: tournament=%d ordinal=%d", round.ErrRoundStillOpen, item.TournamentID, item.Ordinal)
	}

	for _, m := range created {
		if err := consumePairing(ctx, tx, item.TournamentID, m.PlayerOneID, m.PlayerTwoID); err != nil {
			return round.Round{}, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return round.Round{}, nil, fmt.Errorf("commit create round: %w", err)
	}
	return roundFromRow(row), created, nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID int64) (round.Round, bool, error) {
	query, args, err := qb.Select(roundSelectColumns...).From("rounds").
		Where(qb.Eq("id", roundID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round: %w", err)
	}
	return roundFromRow(row), true, nil
}

func (r *RoundRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]round.Round, error) {
	query, args, err := qb.Select(roundSelectColumns...).From("rounds").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("ordinal").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) Close(ctx context.Context, roundID int64, endedAt time.Time) error {
	query, args, err := qb.Update("rounds").
		Set("ended_at", endedAt).
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close round query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("close round: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close round rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("round %d not found", roundID)
	}
	return nil
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (round.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return round.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Match{}, false, nil
		}
		return round.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundID int64) ([]round.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]round.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID int64, scoreOne, scoreTwo float64, resultAt time.Time) error {
	query, args, err := qb.Update("matches").
		Set("score_one", scoreOne).
		Set("score_two", scoreTwo).
		Set("result_at", resultAt).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match result query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match result rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %d not found", matchID)
	}
	return nil
}
