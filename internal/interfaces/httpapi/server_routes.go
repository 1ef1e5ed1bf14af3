package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchdayRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matchdays", handler.CreateMatchday)
	mux.HandleFunc("GET /v1/matchdays", handler.ListMatchdays)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}", handler.GetMatchday)
	mux.HandleFunc("DELETE /v1/matchdays/{matchdayID}", handler.DeleteMatchday)

	mux.HandleFunc("POST /v1/matchdays/{matchdayID}/teams", handler.AddTeam)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/teams", handler.ListTeams)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.RemoveTeam)

	mux.HandleFunc("POST /v1/teams/{teamID}/players", handler.AddPlayer)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayers)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.RemovePlayer)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matchdays/{matchdayID}/games", handler.CreateGame)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("POST /v1/games/{gameID}/start", handler.StartGame)
	mux.HandleFunc("POST /v1/games/{gameID}/end", handler.EndGame)

	mux.HandleFunc("POST /v1/games/{gameID}/goals", handler.AddGoal)
	mux.HandleFunc("DELETE /v1/games/{gameID}/goals/last", handler.UndoLastGoal)
	mux.HandleFunc("PUT /v1/games/{gameID}/goals/{goalID}", handler.EditGoal)
	mux.HandleFunc("DELETE /v1/games/{gameID}/goals/{goalID}", handler.DeleteGoal)

	mux.HandleFunc("POST /v1/games/{gameID}/shootout", handler.BeginShootout)
	mux.HandleFunc("GET /v1/games/{gameID}/shootout", handler.GetShootout)
	mux.HandleFunc("POST /v1/games/{gameID}/shootout/kicks", handler.RecordKick)
}

func registerViewRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/next-game", handler.SuggestNextGame)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/players/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/players/top-scorers", handler.GetTopScorers)
	mux.HandleFunc("GET /v1/matchdays/{matchdayID}/players/top-assists", handler.GetTopAssists)
	mux.HandleFunc("GET /v1/players/stats/overall", handler.GetOverallPlayerStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeJob)))
}
