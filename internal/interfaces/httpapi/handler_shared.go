package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/playerstats"
	"github.com/kickoffhq/matchday/internal/domain/queue"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/shootout"
	"github.com/kickoffhq/matchday/internal/domain/standings"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/usecase"
)

type createMatchdayRequest struct {
	Name  string        `json:"name" validate:"required,max=120"`
	Date  string        `json:"date" validate:"omitempty"`
	Rules *rulesRequest `json:"rules" validate:"omitempty"`
}

type rulesRequest struct {
	PointsLoss            int     `json:"pointsLoss" validate:"gte=0"`
	PointsDraw            int     `json:"pointsDraw" validate:"gte=0"`
	PointsRegulationWin   int     `json:"pointsRegulationWin" validate:"gte=0"`
	PointsPenaltyBonusWin int     `json:"pointsPenaltyBonusWin" validate:"gte=0"`
	PenaltyWinWeight      float64 `json:"penaltyWinWeight" validate:"gte=0,lte=1"`
	MaxGoalsToWin         int     `json:"maxGoalsToWin" validate:"gte=0"`
	MinPenaltyKicks       int     `json:"minPenaltyKicks" validate:"gt=0"`
	RosterSize            int     `json:"rosterSize" validate:"gt=0"`
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type createPlayerRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type createGameRequest struct {
	HomeTeamID string `json:"homeTeamId" validate:"required"`
	AwayTeamID string `json:"awayTeamId" validate:"required"`
}

type startGameRequest struct {
	OverrideRosterCheck bool `json:"overrideRosterCheck"`
}

type addGoalRequest struct {
	TeamID         string `json:"teamId" validate:"required"`
	ScorerID       string `json:"scorerId" validate:"required"`
	AssistPlayerID string `json:"assistPlayerId" validate:"omitempty,nefield=ScorerID"`
	Minute         int    `json:"minute" validate:"gte=0"`
}

type editGoalRequest struct {
	ScorerID       string `json:"scorerId" validate:"required"`
	AssistPlayerID string `json:"assistPlayerId" validate:"omitempty,nefield=ScorerID"`
}

type recordKickRequest struct {
	TeamID   string `json:"teamId" validate:"required"`
	PlayerID string `json:"playerId" validate:"required"`
	Result   string `json:"result" validate:"required,oneof=goal miss save"`
}

type recomputeJobRequest struct {
	MatchdayID string `json:"matchday_id"`
	MaxWorkers int    `json:"max_workers" validate:"gte=0"`
}

type rulesDTO struct {
	PointsLoss            int     `json:"pointsLoss"`
	PointsDraw            int     `json:"pointsDraw"`
	PointsRegulationWin   int     `json:"pointsRegulationWin"`
	PointsPenaltyBonusWin int     `json:"pointsPenaltyBonusWin"`
	PenaltyWinWeight      float64 `json:"penaltyWinWeight"`
	MaxGoalsToWin         int     `json:"maxGoalsToWin"`
	MinPenaltyKicks       int     `json:"minPenaltyKicks"`
	RosterSize            int     `json:"rosterSize"`
}

type matchdayDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Rules        rulesDTO `json:"rules"`
	CreatedAtUTC string   `json:"createdAtUtc"`
}

type teamDTO struct {
	ID         string `json:"id"`
	MatchdayID string `json:"matchdayId"`
	Name       string `json:"name"`
}

type playerDTO struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

type gameDTO struct {
	ID           string `json:"id"`
	MatchdayID   string `json:"matchdayId"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	Status       string `json:"status"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
	EndReason    string `json:"endReason,omitempty"`
	StartedAt    string `json:"startedAt,omitempty"`
	EndedAt      string `json:"endedAt,omitempty"`
	DurationMin  int    `json:"durationMin"`
}

type goalEventDTO struct {
	ID       string `json:"id"`
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Type     string `json:"type"`
	Minute   int    `json:"minute"`
	Active   bool   `json:"active"`
	LinkID   string `json:"linkId,omitempty"`
}

type gameDetailDTO struct {
	Game   gameDTO        `json:"game"`
	Events []goalEventDTO `json:"events"`
}

type shootoutDTO struct {
	ID           string `json:"id"`
	GameID       string `json:"gameId"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	Status       string `json:"status"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
}

type kickDTO struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	Order    int    `json:"order"`
	Result   string `json:"result"`
}

type shootoutDetailDTO struct {
	Shootout shootoutDTO `json:"shootout"`
	Kicks    []kickDTO   `json:"kicks"`
}

type recordKickResponseDTO struct {
	Shootout     shootoutDTO `json:"shootout"`
	Decided      bool        `json:"decided"`
	WinnerTeamID string      `json:"winnerTeamId,omitempty"`
}

type standingDTO struct {
	TeamID         string  `json:"teamId"`
	TeamName       string  `json:"teamName"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	PenaltyWins    int     `json:"penaltyWins"`
	PenaltyLosses  int     `json:"penaltyLosses"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Points         float64 `json:"points"`
}

type suggestionDTO struct {
	HomeTeamID    string `json:"homeTeamId"`
	AwayTeamID    string `json:"awayTeamId"`
	WaitingTeamID string `json:"waitingTeamId"`
}

type playerStatDTO struct {
	PlayerID      string  `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	TeamID        string  `json:"teamId"`
	GamesPlayed   int     `json:"gamesPlayed"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	GoalsPerGame  float64 `json:"goalsPerGame"`
	PenaltyGoals  int     `json:"penaltyGoals"`
	PenaltyMisses int     `json:"penaltyMisses"`
}

type overallPlayerStatDTO struct {
	PlayerName      string  `json:"playerName"`
	GamesPlayed     int     `json:"gamesPlayed"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	GoalsPerGame    float64 `json:"goalsPerGame"`
	PenaltyGoals    int     `json:"penaltyGoals"`
	PenaltyMisses   int     `json:"penaltyMisses"`
	MatchdaysPlayed int     `json:"matchdaysPlayed"`
	Wins            int     `json:"wins"`
	WinRate         float64 `json:"winRate"`
}

func rulesToDTO(r rules.Rules) rulesDTO {
	return rulesDTO{
		PointsLoss:            r.Points.Loss,
		PointsDraw:            r.Points.Draw,
		PointsRegulationWin:   r.Points.RegulationWin,
		PointsPenaltyBonusWin: r.Points.PenaltyBonusWin,
		PenaltyWinWeight:      r.PenaltyWinWeight,
		MaxGoalsToWin:         r.MaxGoalsToWin,
		MinPenaltyKicks:       r.MinPenaltyKicks,
		RosterSize:            r.RosterSize,
	}
}

func rulesFromRequest(req *rulesRequest) *rules.Rules {
	if req == nil {
		return nil
	}
	return &rules.Rules{
		Points: rules.Points{
			Loss:            req.PointsLoss,
			Draw:            req.PointsDraw,
			RegulationWin:   req.PointsRegulationWin,
			PenaltyBonusWin: req.PointsPenaltyBonusWin,
		},
		PenaltyWinWeight: req.PenaltyWinWeight,
		MaxGoalsToWin:    req.MaxGoalsToWin,
		MinPenaltyKicks:  req.MinPenaltyKicks,
		RosterSize:       req.RosterSize,
	}
}

func matchdayToDTO(v matchday.Matchday) matchdayDTO {
	return matchdayDTO{
		ID:           v.ID,
		Name:         v.Name,
		Date:         v.Date.UTC().Format(time.RFC3339),
		Rules:        rulesToDTO(v.Rules),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, MatchdayID: v.MatchdayID, Name: v.Name}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{ID: v.ID, TeamID: v.TeamID, Name: v.Name}
}

func gameToDTO(v game.Game) gameDTO {
	return gameDTO{
		ID:           v.ID,
		MatchdayID:   v.MatchdayID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		Status:       v.Status,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		WinnerTeamID: v.WinnerTeamID,
		EndReason:    v.EndReason,
		StartedAt:    formatOptionalTime(v.StartedAt),
		EndedAt:      formatOptionalTime(v.EndedAt),
		DurationMin:  v.DurationMin,
	}
}

func goalEventToDTO(v game.GoalEvent) goalEventDTO {
	return goalEventDTO{
		ID:       v.ID,
		GameID:   v.GameID,
		PlayerID: v.PlayerID,
		TeamID:   v.TeamID,
		Type:     v.Type,
		Minute:   v.Minute,
		Active:   v.Active,
		LinkID:   v.LinkID,
	}
}

func shootoutToDTO(v shootout.Shootout) shootoutDTO {
	return shootoutDTO{
		ID:           v.ID,
		GameID:       v.GameID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Status:       v.Status,
		WinnerTeamID: v.WinnerTeamID,
	}
}

func kickToDTO(v shootout.Kick) kickDTO {
	return kickDTO{
		ID:       v.ID,
		PlayerID: v.PlayerID,
		TeamID:   v.TeamID,
		Order:    v.Order,
		Result:   v.Result,
	}
}

func standingToDTO(v standings.TeamStanding) standingDTO {
	return standingDTO{
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		Played:         v.Played,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		PenaltyWins:    v.PenaltyWins,
		PenaltyLosses:  v.PenaltyLosses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func suggestionToDTO(v queue.Suggestion) suggestionDTO {
	return suggestionDTO{
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		WaitingTeamID: v.WaitingTeamID,
	}
}

func playerStatToDTO(v playerstats.PlayerStat) playerStatDTO {
	return playerStatDTO{
		PlayerID:      v.PlayerID,
		PlayerName:    v.PlayerName,
		TeamID:        v.TeamID,
		GamesPlayed:   v.GamesPlayed,
		Goals:         v.Goals,
		Assists:       v.Assists,
		GoalsPerGame:  v.GoalsPerGame,
		PenaltyGoals:  v.PenaltyGoals,
		PenaltyMisses: v.PenaltyMisses,
	}
}

func overallPlayerStatToDTO(v playerstats.OverallPlayerStat) overallPlayerStatDTO {
	return overallPlayerStatDTO{
		PlayerName:      v.PlayerName,
		GamesPlayed:     v.GamesPlayed,
		Goals:           v.Goals,
		Assists:         v.Assists,
		GoalsPerGame:    v.GoalsPerGame,
		PenaltyGoals:    v.PenaltyGoals,
		PenaltyMisses:   v.PenaltyMisses,
		MatchdaysPlayed: v.MatchdaysPlayed,
		Wins:            v.Wins,
		WinRate:         v.WinRate,
	}
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

// parseDate accepts RFC3339 or a bare calendar date.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD, got %q", usecase.ErrInvalidInput, value)
}
