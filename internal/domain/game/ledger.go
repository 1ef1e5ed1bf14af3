package game

import (
	crerr "github.com/cockroachdb/errors"
)

const (
	EventGoal   = "goal"
	EventAssist = "assist"
)

// GoalEvent is one row of the append-only scoring ledger. Events are never
// deleted or reordered; an undone event stays in the ledger with Active=false.
// An assist carries the id of its goal in LinkID.
type GoalEvent struct {
	ID       string
	GameID   string
	PlayerID string
	TeamID   string
	Type     string
	Minute   int
	Active   bool
	LinkID   string
}

// Score folds the active goal events into the pair of team scores. This is
// the only legitimate derivation of a game's score; the cached fields on Game
// exist for readers and are overwritten from this fold.
func Score(g Game, events []GoalEvent) (home, away int) {
	for _, ev := range events {
		if !ev.Active || ev.Type != EventGoal {
			continue
		}
		switch ev.TeamID {
		case g.HomeTeamID:
			home++
		case g.AwayTeamID:
			away++
		}
	}
	return home, away
}

// CheckLedger verifies the collaborator contract on a loaded event set. A
// violation is not caller-correctable, so it is reported with full ids for
// operator diagnosis instead of a sentinel.
func CheckLedger(g Game, events []GoalEvent) error {
	goalIDs := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev.Active && ev.Type == EventGoal {
			goalIDs[ev.ID] = struct{}{}
		}
	}
	for _, ev := range events {
		if !ev.Active {
			continue
		}
		if !g.HasTeam(ev.TeamID) {
			return crerr.Newf("ledger event %s references team %s outside game %s", ev.ID, ev.TeamID, g.ID)
		}
		if ev.Type == EventAssist {
			if _, ok := goalIDs[ev.LinkID]; !ok {
				return crerr.Newf("assist %s in game %s has no matching active goal %q", ev.ID, g.ID, ev.LinkID)
			}
		}
	}
	return nil
}

// GoalInput captures one scoring attribution before it becomes ledger events.
type GoalInput struct {
	TeamID         string
	ScorerID       string
	AssistPlayerID string
	Minute         int
}

// ValidateGoal rejects caller-correctable problems before any event is built.
func ValidateGoal(g Game, in GoalInput) error {
	if g.Status != StatusActive {
		return ErrGameNotActive
	}
	if in.ScorerID == "" {
		return ErrScorerRequired
	}
	if !g.HasTeam(in.TeamID) {
		return ErrTeamNotInGame
	}
	if in.AssistPlayerID != "" && in.AssistPlayerID == in.ScorerID {
		return ErrAssistIsScorer
	}
	return nil
}

// BuildGoal materializes a validated input into ledger events. The goal and
// its optional assist must be appended atomically by the caller.
func BuildGoal(g Game, in GoalInput, goalID, assistID string) []GoalEvent {
	events := []GoalEvent{{
		ID:       goalID,
		GameID:   g.ID,
		PlayerID: in.ScorerID,
		TeamID:   in.TeamID,
		Type:     EventGoal,
		Minute:   in.Minute,
		Active:   true,
	}}
	if in.AssistPlayerID != "" {
		events = append(events, GoalEvent{
			ID:       assistID,
			GameID:   g.ID,
			PlayerID: in.AssistPlayerID,
			TeamID:   in.TeamID,
			Type:     EventAssist,
			Minute:   in.Minute,
			Active:   true,
			LinkID:   goalID,
		})
	}
	return events
}

// UndoLastGoal picks the latest active goal by insertion order and returns the
// ids to mark inactive: the goal and, when present, its linked assist.
func UndoLastGoal(events []GoalEvent) ([]string, error) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Active && events[i].Type == EventGoal {
			return deactivationSet(events, events[i].ID), nil
		}
	}
	return nil, ErrNoGoalsToUndo
}

// DeactivateGoal targets a specific active goal, not necessarily the latest.
func DeactivateGoal(events []GoalEvent, goalID string) ([]string, error) {
	for _, ev := range events {
		if ev.Active && ev.Type == EventGoal && ev.ID == goalID {
			return deactivationSet(events, goalID), nil
		}
	}
	return nil, ErrGoalNotFound
}

func deactivationSet(events []GoalEvent, goalID string) []string {
	ids := []string{goalID}
	for _, ev := range events {
		if ev.Active && ev.Type == EventAssist && ev.LinkID == goalID {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

// GoalEdit reassigns scorer and assist of an existing goal. An empty
// AssistPlayerID removes the assist.
type GoalEdit struct {
	ScorerID       string
	AssistPlayerID string
}

// ReassignGoal rewrites a goal in place, keeping its id and minute. It returns
// the updated goal, the id of a replaced assist to deactivate (empty when the
// goal had none), and a new assist event without an id when one must be
// created; the caller assigns the id and persists all three atomically.
func ReassignGoal(g Game, events []GoalEvent, goalID string, edit GoalEdit) (GoalEvent, string, *GoalEvent, error) {
	if edit.ScorerID == "" {
		return GoalEvent{}, "", nil, ErrScorerRequired
	}
	if edit.AssistPlayerID != "" && edit.AssistPlayerID == edit.ScorerID {
		return GoalEvent{}, "", nil, ErrAssistIsScorer
	}

	var goal *GoalEvent
	for i := range events {
		if events[i].Active && events[i].Type == EventGoal && events[i].ID == goalID {
			goal = &events[i]
			break
		}
	}
	if goal == nil {
		return GoalEvent{}, "", nil, ErrGoalNotFound
	}

	updated := *goal
	updated.PlayerID = edit.ScorerID

	oldAssistID := ""
	for _, ev := range events {
		if ev.Active && ev.Type == EventAssist && ev.LinkID == goalID {
			oldAssistID = ev.ID
			break
		}
	}

	var newAssist *GoalEvent
	if edit.AssistPlayerID != "" {
		newAssist = &GoalEvent{
			GameID:   g.ID,
			PlayerID: edit.AssistPlayerID,
			TeamID:   updated.TeamID,
			Type:     EventAssist,
			Minute:   updated.Minute,
			Active:   true,
			LinkID:   goalID,
		}
	}

	return updated, oldAssistID, newAssist, nil
}

// ApplyDeactivations is a pure helper for callers that hold the full ledger
// in memory (tests, projections): it returns a copy with the ids flagged off.
func ApplyDeactivations(events []GoalEvent, ids []string) []GoalEvent {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	out := make([]GoalEvent, len(events))
	copy(out, events)
	for i := range out {
		if _, ok := idSet[out[i].ID]; ok {
			out[i].Active = false
		}
	}
	return out
}
