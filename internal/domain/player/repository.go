package player

import "context"

type Repository interface {
	Create(ctx context.Context, p Player) error
	GetByID(ctx context.Context, id string) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	ListByMatchday(ctx context.Context, matchdayID string) ([]Player, error)
	Delete(ctx context.Context, id string) error
}
