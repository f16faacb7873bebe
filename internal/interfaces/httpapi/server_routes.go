package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSleeperRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sleeper/users/{username}/leagues", handler.ListUserLeagues)
	mux.HandleFunc("GET /v1/sleeper/leagues/{leagueID}/draft", handler.GetLeagueDraft)
}

func registerADPRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/adp/build", handler.BuildADP)
	mux.HandleFunc("POST /v1/adp/compare", handler.CompareADP)
	mux.HandleFunc("GET /v1/adp/snapshots/{name}", handler.GetLatestSnapshot)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/adp/snapshots", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.PublishSnapshot)))
	mux.Handle("POST /v1/internal/jobs/rebuild-snapshots", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildSnapshotsJob)))
}
