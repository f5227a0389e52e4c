package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/chess-tournament/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/chess-tournament/internal/platform/querybuilder"
)

// BootstrapSeed registers the demo players when the players table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerInsertModel{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			BirthDate: p.BirthDate,
			Gender:    string(p.Gender),
			Elo:       p.Elo,
		}, "")
		if err != nil {
			return fmt.Errorf("build seed player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.DisplayName(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
