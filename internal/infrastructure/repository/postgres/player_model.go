package postgres

import "github.com/kickoffhq/matchday/internal/domain/player"

type playerTableModel struct {
	ID     string `db:"id"`
	TeamID string `db:"team_id"`
	Name   string `db:"name"`
}

func (row playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:     row.ID,
		TeamID: row.TeamID,
		Name:   row.Name,
	}
}
