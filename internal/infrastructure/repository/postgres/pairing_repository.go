package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	qb "github.com/riskibarqy/chess-tournament/internal/platform/querybuilder"
)

type pairingTableModel struct {
	TournamentID int64 `db:"tournament_id"`
	PlayerLowID  int64 `db:"player_low_id"`
	PlayerHighID int64 `db:"player_high_id"`
}

type PairingHistoryRepository struct {
	db *sqlx.DB
}

func NewPairingHistoryRepository(db *sqlx.DB) *PairingHistoryRepository {
	return &PairingHistoryRepository{db: db}
}

// Seed inserts every pairing in one statement. The seeded marker row on the
// tournament makes a second seed fail even after all pairings are consumed.
func (r *PairingHistoryRepository) Seed(ctx context.Context, tournamentID int64, pairings []pairing.Pairing) error {
	if len(pairings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx seed pairings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	markQuery, markArgs, err := qb.Update("tournaments").
		SetExpr("pairings_seeded_at", "NOW()").
		Where(qb.Eq("id", tournamentID), qb.IsNull("pairings_seeded_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark seeded query: %w", err)
	}
	result, err := tx.ExecContext(ctx, markQuery, markArgs...)
	if err != nil {
		return fmt.Errorf("mark pairings seeded: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark pairings seeded rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tournament=%d", pairing.ErrAlreadySeeded, tournamentID)
	}

	builder := qb.InsertInto("tournament_pairings").
		Columns("tournament_id", "player_low_id", "player_high_id")
	for _, p := range pairings {
		p = pairing.NewPairing(p.Low, p.High)
		builder.Values(tournamentID, p.Low, p.High)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build seed pairings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tournament=%d", pairing.ErrAlreadySeeded, tournamentID)
		}
		return fmt.Errorf("seed pairings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed pairings: %w", err)
	}
	return nil
}

func (r *PairingHistoryRepository) Contains(ctx context.Context, tournamentID, playerA, playerB int64) (bool, error) {
	p := pairing.NewPairing(playerA, playerB)
	query, args, err := qb.Select("COUNT(1)").From("tournament_pairings").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("player_low_id", p.Low),
			qb.Eq("player_high_id", p.High),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build contains pairing query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("contains pairing: %w", err)
	}
	return count > 0, nil
}

func (r *PairingHistoryRepository) Consume(ctx context.Context, tournamentID, playerA, playerB int64) error {
	return consumePairing(ctx, r.db, tournamentID, playerA, playerB)
}

// consumePairing deletes one unplayed pairing. It runs on the pool or inside
// a round transaction.
func consumePairing(ctx context.Context, exec sqlx.ExecerContext, tournamentID, playerA, playerB int64) error {
	p := pairing.NewPairing(playerA, playerB)
	query, args, err := qb.DeleteFrom("tournament_pairings").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("player_low_id", p.Low),
			qb.Eq("player_high_id", p.High),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build consume pairing query: %w", err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("consume pairing: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume pairing rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tournament=%d players=%d-%d", pairing.ErrPairingNotFound, tournamentID, p.Low, p.High)
	}
	return nil
}

func (r *PairingHistoryRepository) ListRemaining(ctx context.Context, tournamentID int64) ([]pairing.Pairing, error) {
	query, args, err := qb.Select("tournament_id", "player_low_id", "player_high_id").From("tournament_pairings").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("player_low_id", "player_high_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list remaining pairings query: %w", err)
	}

	var rows []pairingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list remaining pairings: %w", err)
	}

	out := make([]pairing.Pairing, 0, len(rows))
	for _, row := range rows {
		out = append(out, pairing.Pairing{Low: row.PlayerLowID, High: row.PlayerHighID})
	}
	return out, nil
}
