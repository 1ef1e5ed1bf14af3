package httpapi

import (
	"net/http"

	"github.com/kickoffhq/matchday/internal/domain/shootout"
)

func (h *Handler) BeginShootout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginShootout")
	defer span.End()

	gameID := r.PathValue("gameID")
	so, err := h.shootoutService.Begin(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "begin shootout failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, shootoutToDTO(so))
}

func (h *Handler) GetShootout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShootout")
	defer span.End()

	gameID := r.PathValue("gameID")
	so, kicks, err := h.shootoutService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get shootout failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	kickItems := make([]kickDTO, 0, len(kicks))
	for _, k := range kicks {
		kickItems = append(kickItems, kickToDTO(k))
	}
	writeSuccess(ctx, w, http.StatusOK, shootoutDetailDTO{
		Shootout: shootoutToDTO(so),
		Kicks:    kickItems,
	})
}

func (h *Handler) RecordKick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordKick")
	defer span.End()

	gameID := r.PathValue("gameID")
	var req recordKickRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	so, outcome, err := h.shootoutService.RecordKick(ctx, gameID, shootout.KickInput{
		PlayerID: req.PlayerID,
		TeamID:   req.TeamID,
		Result:   req.Result,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record kick failed", "game_id", gameID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recordKickResponseDTO{
		Shootout:     shootoutToDTO(so),
		Decided:      outcome.Decided,
		WinnerTeamID: outcome.WinnerTeamID,
	})
}
