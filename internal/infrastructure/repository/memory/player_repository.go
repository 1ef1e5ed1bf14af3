package memory

import (
	"context"

	"github.com/kickoffhq/matchday/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[p.ID]; !ok {
		r.store.playerOrder = append(r.store.playerOrder, p.ID)
	}
	r.store.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[id]
	return p, ok, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.store.playerOrder {
		if p := r.store.players[id]; p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListByMatchday(_ context.Context, matchdayID string) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.store.playerOrder {
		p := r.store.players[id]
		t, ok := r.store.teams[p.TeamID]
		if ok && t.MatchdayID == matchdayID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.players, id)
	r.store.playerOrder = removeID(r.store.playerOrder, id)
	return nil
}
