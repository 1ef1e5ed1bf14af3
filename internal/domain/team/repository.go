package team

import "context"

type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListByMatchday(ctx context.Context, matchdayID string) ([]Team, error)
	Delete(ctx context.Context, id string) error
}
