package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	table, err := h.standingsService.Standings(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(table))
	for _, row := range table {
		items = append(items, standingToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SuggestNextGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestNextGame")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	suggestion, err := h.standingsService.SuggestNextGame(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest next game failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionToDTO(suggestion))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	stats, err := h.playerStatsService.MatchdayStats(ctx, matchdayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, playerStatToDTO(stat))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorers")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	stats, err := h.playerStatsService.TopScorers(ctx, matchdayID, limitParam(r, 10))
	if err != nil {
		h.logger.WarnContext(ctx, "get top scorers failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, playerStatToDTO(stat))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTopAssists(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopAssists")
	defer span.End()

	matchdayID := r.PathValue("matchdayID")
	stats, err := h.playerStatsService.TopAssists(ctx, matchdayID, limitParam(r, 10))
	if err != nil {
		h.logger.WarnContext(ctx, "get top assists failed", "matchday_id", matchdayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, playerStatToDTO(stat))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOverallPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallPlayerStats")
	defer span.End()

	stats, err := h.playerStatsService.OverallStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get overall player stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]overallPlayerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, overallPlayerStatToDTO(stat))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func limitParam(r *http.Request, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
