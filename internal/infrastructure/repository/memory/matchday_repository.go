package memory

import (
	"context"

	"github.com/kickoffhq/matchday/internal/domain/matchday"
)

// MatchdayRepository keeps matchdays in the shared store. Delete cascades to
// the teams, players, games and shootouts of the matchday.
type MatchdayRepository struct {
	store *Store
}

func NewMatchdayRepository(store *Store) *MatchdayRepository {
	return &MatchdayRepository{store: store}
}

func (r *MatchdayRepository) Create(_ context.Context, m matchday.Matchday) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matchdays[m.ID]; !ok {
		r.store.matchdayOrder = append(r.store.matchdayOrder, m.ID)
	}
	r.store.matchdays[m.ID] = m
	return nil
}

func (r *MatchdayRepository) GetByID(_ context.Context, id string) (matchday.Matchday, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matchdays[id]
	return m, ok, nil
}

func (r *MatchdayRepository) List(_ context.Context) ([]matchday.Matchday, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]matchday.Matchday, 0, len(r.store.matchdayOrder))
	for _, id := range r.store.matchdayOrder {
		out = append(out, r.store.matchdays[id])
	}
	return out, nil
}

func (r *MatchdayRepository) ListIDs(_ context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]string, len(r.store.matchdayOrder))
	copy(out, r.store.matchdayOrder)
	return out, nil
}

func (r *MatchdayRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteMatchdayLocked(id)
	return nil
}
