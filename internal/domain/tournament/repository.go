package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, t Tournament) (Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	List(ctx context.Context) ([]Tournament, error)
	Update(ctx context.Context, t Tournament) error
}
