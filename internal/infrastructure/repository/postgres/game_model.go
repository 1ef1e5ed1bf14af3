package postgres

import (
	"database/sql"

	"github.com/kickoffhq/matchday/internal/domain/game"
)

type gameTableModel struct {
	ID           string         `db:"id"`
	MatchdayID   string         `db:"matchday_id"`
	HomeTeamID   string         `db:"home_team_id"`
	AwayTeamID   string         `db:"away_team_id"`
	Status       string         `db:"status"`
	HomeScore    int            `db:"home_score"`
	AwayScore    int            `db:"away_score"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
	EndReason    sql.NullString `db:"end_reason"`
	StartedAt    sql.NullTime   `db:"started_at"`
	EndedAt      sql.NullTime   `db:"ended_at"`
	DurationMin  int            `db:"duration_min"`
}

func (row gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           row.ID,
		MatchdayID:   row.MatchdayID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		Status:       row.Status,
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
		WinnerTeamID: nullStringValue(row.WinnerTeamID),
		EndReason:    nullStringValue(row.EndReason),
		StartedAt:    nullTimeValue(row.StartedAt),
		EndedAt:      nullTimeValue(row.EndedAt),
		DurationMin:  row.DurationMin,
	}
}

// goalEventTableModel carries a serial seq column so ListEvents can return
// the ledger in creation order without trusting client clocks.
type goalEventTableModel struct {
	Seq      int64          `db:"seq"`
	ID       string         `db:"id"`
	GameID   string         `db:"game_id"`
	PlayerID string         `db:"player_id"`
	TeamID   string         `db:"team_id"`
	Type     string         `db:"type"`
	Minute   int            `db:"minute"`
	Active   bool           `db:"active"`
	LinkID   sql.NullString `db:"link_id"`
}

func (row goalEventTableModel) toDomain() game.GoalEvent {
	return game.GoalEvent{
		ID:       row.ID,
		GameID:   row.GameID,
		PlayerID: row.PlayerID,
		TeamID:   row.TeamID,
		Type:     row.Type,
		Minute:   row.Minute,
		Active:   row.Active,
		LinkID:   nullStringValue(row.LinkID),
	}
}
