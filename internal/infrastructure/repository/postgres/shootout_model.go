package postgres

import (
	"database/sql"

	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

type shootoutTableModel struct {
	ID           string         `db:"id"`
	GameID       string         `db:"game_id"`
	HomeTeamID   string         `db:"home_team_id"`
	AwayTeamID   string         `db:"away_team_id"`
	HomeScore    int            `db:"home_score"`
	AwayScore    int            `db:"away_score"`
	Status       string         `db:"status"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
}

func (row shootoutTableModel) toDomain() shootout.Shootout {
	return shootout.Shootout{
		ID:           row.ID,
		GameID:       row.GameID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
		Status:       row.Status,
		WinnerTeamID: nullStringValue(row.WinnerTeamID),
	}
}

type kickTableModel struct {
	ID         string `db:"id"`
	ShootoutID string `db:"shootout_id"`
	PlayerID   string `db:"player_id"`
	TeamID     string `db:"team_id"`
	KickOrder  int    `db:"kick_order"`
	Result     string `db:"result"`
}

func (row kickTableModel) toDomain() shootout.Kick {
	return shootout.Kick{
		ID:         row.ID,
		ShootoutID: row.ShootoutID,
		PlayerID:   row.PlayerID,
		TeamID:     row.TeamID,
		Order:      row.KickOrder,
		Result:     row.Result,
	}
}
