package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	qb "github.com/riskibarqy/chess-tournament/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

var tournamentSelectColumns = []string{
	"id",
	"name",
	"location",
	"description",
	"ruleset",
	"nb_rounds",
	"player_ids",
	"played_rounds",
	"round_ids",
	"started_at",
	"ended_at",
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	roundIDs := pq.Int64Array(t.RoundIDs)
	if roundIDs == nil {
		roundIDs = pq.Int64Array{}
	}
	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{
		Name:         t.Name,
		Location:     t.Location,
		Description:  t.Description,
		Ruleset:      string(t.Ruleset),
		NbRounds:     t.NbRounds,
		PlayerIDs:    pq.Int64Array(t.PlayerIDs),
		PlayedRounds: t.PlayedRounds,
		RoundIDs:     roundIDs,
		StartedAt:    t.StartedAt,
	}, "RETURNING "+joinColumns(tournamentSelectColumns))
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}
	return tournamentFromRow(row), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentSelectColumns...).From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentSelectColumns...).From("tournaments").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

// Update writes the mutable round state. Identity and roster never change.
func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) error {
	roundIDs := pq.Int64Array(t.RoundIDs)
	if roundIDs == nil {
		roundIDs = pq.Int64Array{}
	}
	query, args, err := qb.Update("tournaments").
		Set("played_rounds", t.PlayedRounds).
		Set("round_ids", roundIDs).
		Set("ended_at", timePtrToNull(t.EndedAt)).
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tournament rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tournament %d not found", t.ID)
	}
	return nil
}
