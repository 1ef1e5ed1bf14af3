package memory

import (
	"sync"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	"github.com/kickoffhq/matchday/internal/domain/team"
)

// Store is the shared state behind every in-memory repository. One mutex
// guards all entity maps so a matchday delete can cascade atomically, the
// way the SQL schema does with ON DELETE CASCADE.
type Store struct {
	mu sync.RWMutex

	matchdays     map[string]matchday.Matchday
	matchdayOrder []string

	teams     map[string]team.Team
	teamOrder []string

	players     map[string]player.Player
	playerOrder []string

	games     map[string]game.Game
	gameOrder []string

	// eventsByGame holds each ledger in append order.
	eventsByGame map[string][]game.GoalEvent

	shootoutsByGame map[string]shootout.Shootout
	kicksByShootout map[string][]shootout.Kick
}

func NewStore() *Store {
	return &Store{
		matchdays:       make(map[string]matchday.Matchday),
		teams:           make(map[string]team.Team),
		players:         make(map[string]player.Player),
		games:           make(map[string]game.Game),
		eventsByGame:    make(map[string][]game.GoalEvent),
		shootoutsByGame: make(map[string]shootout.Shootout),
		kicksByShootout: make(map[string][]shootout.Kick),
	}
}

// deleteMatchdayLocked removes a matchday and everything under it. Caller
// holds the write lock.
func (s *Store) deleteMatchdayLocked(matchdayID string) {
	delete(s.matchdays, matchdayID)
	s.matchdayOrder = removeID(s.matchdayOrder, matchdayID)

	for id, t := range s.teams {
		if t.MatchdayID == matchdayID {
			s.deleteTeamLocked(id)
		}
	}
	for id, g := range s.games {
		if g.MatchdayID == matchdayID {
			s.deleteGameLocked(id)
		}
	}
}

func (s *Store) deleteTeamLocked(teamID string) {
	delete(s.teams, teamID)
	s.teamOrder = removeID(s.teamOrder, teamID)

	for id, p := range s.players {
		if p.TeamID == teamID {
			delete(s.players, id)
			s.playerOrder = removeID(s.playerOrder, id)
		}
	}
}

func (s *Store) deleteGameLocked(gameID string) {
	delete(s.games, gameID)
	s.gameOrder = removeID(s.gameOrder, gameID)
	delete(s.eventsByGame, gameID)

	if so, ok := s.shootoutsByGame[gameID]; ok {
		delete(s.kicksByShootout, so.ID)
		delete(s.shootoutsByGame, gameID)
	}
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
