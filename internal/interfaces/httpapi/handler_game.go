package httpapi

import (
	"net/http"

	"github.com/kickoffhq/matchday/internal/domain/game"
)

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	var req createGameRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.CreateGame(ctx, matchdayID, req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g))
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	games, err := h.gameService.ListGames(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	g, events, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	eventItems := make([]goalEventDTO, 0, len(events))
	for _, ev := range events {
		eventItems = append(eventItems, goalEventToDTO(ev))
	}
	writeSuccess(ctx, w, http.StatusOK, gameDetailDTO{
		Game:   gameToDTO(g),
		Events: eventItems,
	})
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	var req startGameRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.StartGame(ctx, gameID, req.OverrideRosterCheck)
	if err != nil {
		h.logger.WarnContext(ctx, "start game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	g, err := h.gameService.EndGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "end game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGoal")
	defer span.End()

	gameID := r.PathValue("gameID")
	var req addGoalRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.AddGoal(ctx, gameID, game.GoalInput{
		TeamID:         req.TeamID,
		ScorerID:       req.ScorerID,
		AssistPlayerID: req.AssistPlayerID,
		Minute:         req.Minute,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add goal failed", "game_id", gameID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) UndoLastGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastGoal")
	defer span.End()

	gameID := r.PathValue("gameID")
	g, err := h.gameService.UndoLastGoal(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo last goal failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) EditGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditGoal")
	defer span.End()

	gameID := r.PathValue("gameID")
	goalID := r.PathValue("goalID")
	var req editGoalRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.EditGoal(ctx, gameID, goalID, game.GoalEdit{
		ScorerID:       req.ScorerID,
		AssistPlayerID: req.AssistPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit goal failed", "game_id", gameID, "goal_id", goalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGoal")
	defer span.End()

	gameID := r.PathValue("gameID")
	goalID := r.PathValue("goalID")
	g, err := h.gameService.DeleteGoal(ctx, gameID, goalID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete goal failed", "game_id", gameID, "goal_id", goalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}
