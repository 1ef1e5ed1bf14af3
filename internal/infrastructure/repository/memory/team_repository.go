package memory

import (
	"context"

	"github.com/kickoffhq/matchday/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.teams[t.ID]; !ok {
		r.store.teamOrder = append(r.store.teamOrder, t.ID)
	}
	r.store.teams[t.ID] = t
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[id]
	return t, ok, nil
}

func (r *TeamRepository) ListByMatchday(_ context.Context, matchdayID string) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.store.teamOrder {
		if t := r.store.teams[id]; t.MatchdayID == matchdayID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Delete removes the team and its players.
func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteTeamLocked(id)
	return nil
}
