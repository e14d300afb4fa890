package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/wrestlers/available", handler.ListAvailableWrestlers)
	mux.HandleFunc("GET /v1/wrestlers/{wrestlerName}", handler.GetWrestlerProfile)
	mux.HandleFunc("GET /v1/teams/{teamName}/roster", handler.GetTeamRoster)

	mux.HandleFunc("POST /v1/roster/add", handler.AddWrestler)
	mux.HandleFunc("POST /v1/roster/drop", handler.DropWrestler)
	mux.HandleFunc("POST /v1/roster/starter", handler.SetStarter)
	mux.HandleFunc("GET /v1/transactions", handler.ListTransactions)

	mux.HandleFunc("POST /v1/trades", handler.ProposeTrade)
	mux.HandleFunc("GET /v1/trades", handler.ListTrades)
	mux.HandleFunc("POST /v1/trades/{tradeID}/respond", handler.RespondTrade)

	mux.HandleFunc("POST /v1/events/import", handler.ImportEvent)
	mux.HandleFunc("POST /v1/events/import-url", handler.ImportEventFromURL)
	mux.HandleFunc("GET /v1/events/summary", handler.GetEventSummary)

	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/standings/weekly", handler.GetWeeklyScores)
	mux.HandleFunc("GET /v1/standings/weekly-wins", handler.GetWeeklyWinTally)
	mux.HandleFunc("POST /v1/standings/weekly-wins", handler.RecordWeeklyWins)

	mux.HandleFunc("GET /v1/windows", handler.ListWindows)
	mux.HandleFunc("POST /v1/windows", handler.CreateWindow)
	mux.HandleFunc("DELETE /v1/windows/{windowID}", handler.DeleteWindow)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recompute-points",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputePointsJob)))
}
