package game

import "context"

// Repository persists games and their event ledgers. Implementations must
// append a goal and its assist in one transaction, mark events inactive
// without deleting them, and return events in creation order.
type Repository interface {
	Create(ctx context.Context, g Game) error
	GetByID(ctx context.Context, id string) (Game, bool, error)
	ListByMatchday(ctx context.Context, matchdayID string) ([]Game, error)
	Update(ctx context.Context, g Game) error
	Delete(ctx context.Context, id string) error

	AppendEvents(ctx context.Context, events []GoalEvent) error
	ListEvents(ctx context.Context, gameID string) ([]GoalEvent, error)
	DeactivateEvents(ctx context.Context, gameID string, eventIDs []string) error
	UpdateEvent(ctx context.Context, ev GoalEvent) error
}
