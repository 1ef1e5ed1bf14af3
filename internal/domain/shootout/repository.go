package shootout

import "context"

// Repository persists shootouts and their kicks. A shootout id is never
// reused after deletion; kicks are returned in order.
type Repository interface {
	Create(ctx context.Context, s Shootout) error
	GetByGame(ctx context.Context, gameID string) (Shootout, bool, error)
	Update(ctx context.Context, s Shootout) error

	AppendKick(ctx context.Context, k Kick) error
	ListKicks(ctx context.Context, shootoutID string) ([]Kick, error)
	ListKicksByGames(ctx context.Context, gameIDs []string) (map[string][]Kick, error)
}
