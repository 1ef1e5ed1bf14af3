package matchday

import "context"

type Repository interface {
	Create(ctx context.Context, m Matchday) error
	GetByID(ctx context.Context, id string) (Matchday, bool, error)
	List(ctx context.Context) ([]Matchday, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}
