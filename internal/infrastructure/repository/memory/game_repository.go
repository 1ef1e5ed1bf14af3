package memory

import (
	"context"

	"github.com/kickoffhq/matchday/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.games[g.ID]; !ok {
		r.store.gameOrder = append(r.store.gameOrder, g.ID)
	}
	r.store.games[g.ID] = g
	return nil
}

func (r *GameRepository) GetByID(_ context.Context, id string) (game.Game, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.games[id]
	return g, ok, nil
}

func (r *GameRepository) ListByMatchday(_ context.Context, matchdayID string) ([]game.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, id := range r.store.gameOrder {
		if g := r.store.games[id]; g.MatchdayID == matchdayID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.games[g.ID]; !ok {
		r.store.gameOrder = append(r.store.gameOrder, g.ID)
	}
	r.store.games[g.ID] = g
	return nil
}

func (r *GameRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteGameLocked(id)
	return nil
}

// AppendEvents adds the events under one lock so a goal and its assist land
// together or not at all.
func (r *GameRepository) AppendEvents(_ context.Context, events []game.GoalEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, ev := range events {
		r.store.eventsByGame[ev.GameID] = append(r.store.eventsByGame[ev.GameID], ev)
	}
	return nil
}

func (r *GameRepository) ListEvents(_ context.Context, gameID string) ([]game.GoalEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := r.store.eventsByGame[gameID]
	out := make([]game.GoalEvent, len(events))
	copy(out, events)
	return out, nil
}

func (r *GameRepository) DeactivateEvents(_ context.Context, gameID string, eventIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	events := r.store.eventsByGame[gameID]
	for i := range events {
		if _, ok := wanted[events[i].ID]; ok {
			events[i].Active = false
		}
	}
	return nil
}

func (r *GameRepository) UpdateEvent(_ context.Context, ev game.GoalEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events := r.store.eventsByGame[ev.GameID]
	for i := range events {
		if events[i].ID == ev.ID {
			events[i] = ev
			return nil
		}
	}
	return nil
}
