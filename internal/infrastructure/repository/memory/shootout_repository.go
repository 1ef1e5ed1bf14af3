package memory

import (
	"context"

	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

type ShootoutRepository struct {
	store *Store
}

func NewShootoutRepository(store *Store) *ShootoutRepository {
	return &ShootoutRepository{store: store}
}

func (r *ShootoutRepository) Create(_ context.Context, s shootout.Shootout) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.shootoutsByGame[s.GameID] = s
	return nil
}

func (r *ShootoutRepository) GetByGame(_ context.Context, gameID string) (shootout.Shootout, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.shootoutsByGame[gameID]
	return s, ok, nil
}

func (r *ShootoutRepository) Update(_ context.Context, s shootout.Shootout) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.shootoutsByGame[s.GameID] = s
	return nil
}

func (r *ShootoutRepository) AppendKick(_ context.Context, k shootout.Kick) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.kicksByShootout[k.ShootoutID] = append(r.store.kicksByShootout[k.ShootoutID], k)
	return nil
}

func (r *ShootoutRepository) ListKicks(_ context.Context, shootoutID string) ([]shootout.Kick, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	kicks := r.store.kicksByShootout[shootoutID]
	out := make([]shootout.Kick, len(kicks))
	copy(out, kicks)
	return out, nil
}

// ListKicksByGames returns kicks keyed by game id for the games that have a
// shootout; games without one are absent from the map.
func (r *ShootoutRepository) ListKicksByGames(_ context.Context, gameIDs []string) (map[string][]shootout.Kick, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string][]shootout.Kick, len(gameIDs))
	for _, gameID := range gameIDs {
		s, ok := r.store.shootoutsByGame[gameID]
		if !ok {
			continue
		}
		kicks := r.store.kicksByShootout[s.ID]
		if len(kicks) == 0 {
			continue
		}
		copied := make([]shootout.Kick, len(kicks))
		copy(copied, kicks)
		out[gameID] = copied
	}
	return out, nil
}
