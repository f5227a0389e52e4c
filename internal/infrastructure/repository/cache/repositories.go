package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/chess-tournament/internal/domain/player"
	basecache "github.com/riskibarqy/chess-tournament/internal/platform/cache"
)

const playerKeyPrefix = "player:"

// PlayerRepository caches player reads in front of another repository.
// Writes go straight through and drop every cached player entry.
type PlayerRepository struct {
	next  player.Repository
	byID  *basecache.Store[cachedPlayerByID]
	lists *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:  next,
		byID:  basecache.NewStore[cachedPlayerByID](ttl),
		lists: basecache.NewStore[[]player.Player](ttl),
	}
}

// Stats sums hits and misses over both backing stores.
func (r *PlayerRepository) Stats() basecache.Stats {
	a, b := r.byID.Stats(), r.lists.Stats()
	return basecache.Stats{Hits: a.Hits + b.Hits, Misses: a.Misses + b.Misses}
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, p)
	if err != nil {
		return player.Player{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	key := playerKeyPrefix + "id:" + strconv.FormatInt(playerID, 10)
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	key := playerKeyPrefix + "ids:" + joinIDs(playerIDs)
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.lists.GetOrLoad(ctx, playerKeyPrefix+"list", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) UpdateElo(ctx context.Context, playerID int64, elo int) error {
	if err := r.next.UpdateElo(ctx, playerID, elo); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.byID.DeletePrefix(ctx, playerKeyPrefix)
	r.lists.DeletePrefix(ctx, playerKeyPrefix)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
