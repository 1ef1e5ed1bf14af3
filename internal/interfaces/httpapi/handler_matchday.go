package httpapi

import (
	"net/http"

	"github.com/kickoffhq/matchday/internal/usecase"
)

func (h *Handler) CreateMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchday")
	defer span.End()

	var req createMatchdayRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	md, err := h.matchdayService.CreateMatchday(ctx, usecase.CreateMatchdayInput{
		Name:  req.Name,
		Date:  date,
		Rules: rulesFromRequest(req.Rules),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchday failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchdayToDTO(md))
}

func (h *Handler) ListMatchdays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchdays")
	defer span.End()

	matchdays, err := h.matchdayService.ListMatchdays(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matchdays failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchdayDTO, 0, len(matchdays))
	for _, md := range matchdays {
		items = append(items, matchdayToDTO(md))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchday")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	md, err := h.matchdayService.GetMatchday(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchday failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayToDTO(md))
}

func (h *Handler) DeleteMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchday")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	if err := h.matchdayService.DeleteMatchday(ctx, matchdayID); err != nil {
		h.logger.WarnContext(ctx, "delete matchday failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": matchdayID})
}

func (h *Handler) AddTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeam")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	var req createTeamRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.matchdayService.AddTeam(ctx, matchdayID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "add team failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(t))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	teams, err := h.matchdayService.ListTeams(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	if err := h.matchdayService.RemoveTeam(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "remove team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": teamID})
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	teamID := r.PathValue("teamID")
	var req createPlayerRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.matchdayService.AddPlayer(ctx, teamID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	players, err := h.matchdayService.ListPlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.matchdayService.RemovePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": playerID})
}
