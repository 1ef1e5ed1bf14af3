package postgres

import "github.com/kickoffhq/matchday/internal/domain/team"

type teamTableModel struct {
	ID         string `db:"id"`
	MatchdayID string `db:"matchday_id"`
	Name       string `db:"name"`
}

func (row teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:         row.ID,
		MatchdayID: row.MatchdayID,
		Name:       row.Name,
	}
}
