package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	qb "github.com/kickoffhq/matchday/internal/platform/querybuilder"
)

type ShootoutRepository struct {
	db *sqlx.DB
}

func NewShootoutRepository(db *sqlx.DB) *ShootoutRepository {
	return &ShootoutRepository{db: db}
}

func (r *ShootoutRepository) Create(ctx context.Context, s shootout.Shootout) error {
	query, args, err := qb.InsertInto("shootouts").
		Columns("id", "game_id", "home_team_id", "away_team_id", "home_score", "away_score", "status", "winner_team_id").
		Values(s.ID, s.GameID, s.HomeTeamID, s.AwayTeamID, s.HomeScore, s.AwayScore, s.Status, nullString(s.WinnerTeamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert shootout query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert shootout: %w", err)
	}
	return nil
}

func (r *ShootoutRepository) GetByGame(ctx context.Context, gameID string) (shootout.Shootout, bool, error) {
	query, args, err := qb.Select("*").From("shootouts").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return shootout.Shootout{}, false, fmt.Errorf("build get shootout by game query: %w", err)
	}

	var row shootoutTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return shootout.Shootout{}, false, nil
		}
		return shootout.Shootout{}, false, fmt.Errorf("get shootout by game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ShootoutRepository) Update(ctx context.Context, s shootout.Shootout) error {
	query, args, err := qb.Update("shootouts").
		Set("home_score", s.HomeScore).
		Set("away_score", s.AwayScore).
		Set("status", s.Status).
		Set("winner_team_id", nullString(s.WinnerTeamID)).
		Where(qb.Eq("id", s.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update shootout query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update shootout: %w", err)
	}
	return nil
}

func (r *ShootoutRepository) AppendKick(ctx context.Context, k shootout.Kick) error {
	query, args, err := qb.InsertInto("penalty_kicks").
		Columns("id", "shootout_id", "player_id", "team_id", "kick_order", "result").
		Values(k.ID, k.ShootoutID, k.PlayerID, k.TeamID, k.Order, k.Result).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert penalty kick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert penalty kick: %w", err)
	}
	return nil
}

func (r *ShootoutRepository) ListKicks(ctx context.Context, shootoutID string) ([]shootout.Kick, error) {
	query, args, err := qb.Select("*").From("penalty_kicks").
		Where(qb.Eq("shootout_id", shootoutID)).
		OrderBy("kick_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select penalty kicks query: %w", err)
	}

	var rows []kickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select penalty kicks: %w", err)
	}

	out := make([]shootout.Kick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ListKicksByGames keys the kicks by the owning game; games without a
// shootout are absent from the map.
func (r *ShootoutRepository) ListKicksByGames(ctx context.Context, gameIDs []string) (map[string][]shootout.Kick, error) {
	if len(gameIDs) == 0 {
		return map[string][]shootout.Kick{}, nil
	}

	values := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		values = append(values, id)
	}
	shootoutQuery, shootoutArgs, err := qb.Select("id", "game_id").From("shootouts").
		Where(qb.In("game_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select shootouts by games query: %w", err)
	}

	var shootoutRows []shootoutTableModel
	if err := r.db.SelectContext(ctx, &shootoutRows, shootoutQuery, shootoutArgs...); err != nil {
		return nil, fmt.Errorf("select shootouts by games: %w", err)
	}
	if len(shootoutRows) == 0 {
		return map[string][]shootout.Kick{}, nil
	}

	gameByShootout := make(map[string]string, len(shootoutRows))
	shootoutIDs := make([]any, 0, len(shootoutRows))
	for _, row := range shootoutRows {
		gameByShootout[row.ID] = row.GameID
		shootoutIDs = append(shootoutIDs, row.ID)
	}

	kickQuery, kickArgs, err := qb.Select("*").From("penalty_kicks").
		Where(qb.In("shootout_id", shootoutIDs)).
		OrderBy("shootout_id", "kick_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select penalty kicks by shootouts query: %w", err)
	}

	var kickRows []kickTableModel
	if err := r.db.SelectContext(ctx, &kickRows, kickQuery, kickArgs...); err != nil {
		return nil, fmt.Errorf("select penalty kicks by shootouts: %w", err)
	}

	out := make(map[string][]shootout.Kick, len(shootoutRows))
	for _, row := range kickRows {
		gameID := gameByShootout[row.ShootoutID]
		out[gameID] = append(out[gameID], row.toDomain())
	}
	return out, nil
}
