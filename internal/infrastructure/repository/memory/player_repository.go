package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	now := time.Now().UTC()
	return r.store.players.InsertWithID(func(id int64) player.Player {
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now
		return p
	})
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	p, ok := r.store.players.Get(func(p player.Player) bool { return p.ID == playerID })
	return p, ok, nil
}

// GetByIDs keeps the requested order and skips unknown ids.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	wanted := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	found := r.store.players.Search(func(p player.Player) bool {
		_, ok := wanted[p.ID]
		return ok
	})
	byID := make(map[int64]player.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return r.store.players.All(), nil
}

func (r *PlayerRepository) UpdateElo(_ context.Context, playerID int64, elo int) error {
	now := time.Now().UTC()
	updated := r.store.players.Update(func(p *player.Player) {
		p.Elo = elo
		p.UpdatedAt = now
	}, func(p player.Player) bool { return p.ID == playerID })
	if updated == 0 {
		return fmt.Errorf("player %d not found", playerID)
	}
	return nil
}
