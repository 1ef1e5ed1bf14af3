package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kickoffhq/matchday/internal/domain/game"
	qb "github.com/kickoffhq/matchday/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	query, args, err := qb.InsertInto("games").
		Columns(
			"id", "matchday_id", "home_team_id", "away_team_id", "status",
			"home_score", "away_score", "winner_team_id", "end_reason",
			"started_at", "ended_at", "duration_min",
		).
		Values(
			g.ID, g.MatchdayID, g.HomeTeamID, g.AwayTeamID, g.Status,
			g.HomeScore, g.AwayScore, nullString(g.WinnerTeamID), nullString(g.EndReason),
			nullTime(g.StartedAt), nullTime(g.EndedAt), g.DurationMin,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) ListByMatchday(ctx context.Context, matchdayID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("matchday_id", matchdayID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by matchday query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by matchday: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	query, args, err := qb.Update("games").
		Set("status", g.Status).
		Set("home_score", g.HomeScore).
		Set("away_score", g.AwayScore).
		Set("winner_team_id", nullString(g.WinnerTeamID)).
		Set("end_reason", nullString(g.EndReason)).
		Set("started_at", nullTime(g.StartedAt)).
		Set("ended_at", nullTime(g.EndedAt)).
		Set("duration_min", g.DurationMin).
		Where(qb.Eq("id", g.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// AppendEvents inserts the batch in one statement; a goal and its assist
// commit together or not at all.
func (r *GameRepository) AppendEvents(ctx context.Context, events []game.GoalEvent) error {
	if len(events) == 0 {
		return nil
	}

	builder := qb.InsertInto("goal_events").
		Columns("id", "game_id", "player_id", "team_id", "type", "minute", "active", "link_id")
	for _, ev := range events {
		builder = builder.Values(ev.ID, ev.GameID, ev.PlayerID, ev.TeamID, ev.Type, ev.Minute, ev.Active, nullString(ev.LinkID))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert goal events query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert goal events: %w", err)
	}
	return nil
}

func (r *GameRepository) ListEvents(ctx context.Context, gameID string) ([]game.GoalEvent, error) {
	query, args, err := qb.Select("*").From("goal_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goal events query: %w", err)
	}

	var rows []goalEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goal events: %w", err)
	}

	out := make([]game.GoalEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) DeactivateEvents(ctx context.Context, gameID string, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}

	values := make([]any, 0, len(eventIDs))
	for _, id := range eventIDs {
		values = append(values, id)
	}
	query, args, err := qb.Update("goal_events").
		Set("active", false).
		Where(
			qb.Eq("game_id", gameID),
			qb.In("id", values),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate goal events query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate goal events: %w", err)
	}
	return nil
}

func (r *GameRepository) UpdateEvent(ctx context.Context, ev game.GoalEvent) error {
	query, args, err := qb.Update("goal_events").
		Set("player_id", ev.PlayerID).
		Set("team_id", ev.TeamID).
		Set("minute", ev.Minute).
		Set("active", ev.Active).
		Set("link_id", nullString(ev.LinkID)).
		Where(qb.Eq("id", ev.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update goal event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update goal event: %w", err)
	}
	return nil
}
