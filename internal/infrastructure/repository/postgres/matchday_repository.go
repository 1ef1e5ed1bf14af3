package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	qb "github.com/kickoffhq/matchday/internal/platform/querybuilder"
)

type MatchdayRepository struct {
	db *sqlx.DB
}

func NewMatchdayRepository(db *sqlx.DB) *MatchdayRepository {
	return &MatchdayRepository{db: db}
}

func (r *MatchdayRepository) Create(ctx context.Context, m matchday.Matchday) error {
	query, args, err := qb.InsertInto("matchdays").
		Columns(
			"id", "name", "date", "created_at",
			"points_loss", "points_draw", "points_regulation_win", "points_penalty_bonus_win",
			"penalty_win_weight", "max_goals_to_win", "min_penalty_kicks", "roster_size",
		).
		Values(
			m.ID, m.Name, m.Date, m.CreatedAt,
			m.Rules.Points.Loss, m.Rules.Points.Draw, m.Rules.Points.RegulationWin, m.Rules.Points.PenaltyBonusWin,
			m.Rules.PenaltyWinWeight, m.Rules.MaxGoalsToWin, m.Rules.MinPenaltyKicks, m.Rules.RosterSize,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert matchday query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matchday: %w", err)
	}
	return nil
}

func (r *MatchdayRepository) GetByID(ctx context.Context, id string) (matchday.Matchday, bool, error) {
	query, args, err := qb.Select("*").From("matchdays").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build get matchday by id query: %w", err)
	}

	var row matchdayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchday.Matchday{}, false, nil
		}
		return matchday.Matchday{}, false, fmt.Errorf("get matchday by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchdayRepository) List(ctx context.Context) ([]matchday.Matchday, error) {
	query, args, err := qb.Select("*").From("matchdays").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchdays query: %w", err)
	}

	var rows []matchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchdays: %w", err)
	}

	out := make([]matchday.Matchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchdayRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").From("matchdays").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchday ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select matchday ids: %w", err)
	}
	return ids, nil
}

// Delete relies on ON DELETE CASCADE to remove teams, players, games, events
// and shootouts with the matchday.
func (r *MatchdayRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("matchdays").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matchday query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matchday: %w", err)
	}
	return nil
}
