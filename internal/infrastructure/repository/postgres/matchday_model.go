package postgres

import (
	"time"

	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/rules"
)

// matchdayTableModel flattens the rules snapshot into columns so the policy a
// matchday was created with survives restarts and rule-default changes.
type matchdayTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Date      time.Time `db:"date"`
	CreatedAt time.Time `db:"created_at"`

	PointsLoss            int     `db:"points_loss"`
	PointsDraw            int     `db:"points_draw"`
	PointsRegulationWin   int     `db:"points_regulation_win"`
	PointsPenaltyBonusWin int     `db:"points_penalty_bonus_win"`
	PenaltyWinWeight      float64 `db:"penalty_win_weight"`
	MaxGoalsToWin         int     `db:"max_goals_to_win"`
	MinPenaltyKicks       int     `db:"min_penalty_kicks"`
	RosterSize            int     `db:"roster_size"`
}

func (row matchdayTableModel) toDomain() matchday.Matchday {
	return matchday.Matchday{
		ID:        row.ID,
		Name:      row.Name,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
		Rules: rules.Rules{
			Points: rules.Points{
				Loss:            row.PointsLoss,
				Draw:            row.PointsDraw,
				RegulationWin:   row.PointsRegulationWin,
				PenaltyBonusWin: row.PointsPenaltyBonusWin,
			},
			PenaltyWinWeight: row.PenaltyWinWeight,
			MaxGoalsToWin:    row.MaxGoalsToWin,
			MinPenaltyKicks:  row.MinPenaltyKicks,
			RosterSize:       row.RosterSize,
		},
	}
}
