package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players", handler.RegisterPlayer)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}/elo", handler.UpdatePlayerElo)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/players", handler.ListTournamentPlayers)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/ranking", handler.GetRanking)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/pairings/remaining", handler.ListRemainingPairings)
}

func registerRoundRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/rounds", handler.GenerateRound)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/rounds", handler.ListRounds)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/rounds/current", handler.GetCurrentRound)
	mux.HandleFunc("PUT /v1/tournaments/{tournamentID}/rounds/{roundID}/matches/{matchID}/result", handler.EnterMatchResult)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/rounds/{roundID}/close", handler.CloseRound)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/rounds/{roundID}/sheet", handler.GetRoundSheet)
}

func registerReportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/reports/tournaments", handler.TournamentOverview)
}
