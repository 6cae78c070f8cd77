package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/inkboard/internal/server/middleware"
)

// NewRouter собирает маршруты HTTP API
func NewRouter(logger *slog.Logger, docs *DocumentHandler, live *LiveHandler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/api/v1/health"}))

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Methods(http.MethodGet).Path("/health").HandlerFunc(health.Health)

	v1.Methods(http.MethodPost).Path("/documents").HandlerFunc(docs.Create)
	v1.Methods(http.MethodGet).Path("/documents/{id}").HandlerFunc(docs.Load)
	v1.Methods(http.MethodPatch).Path("/documents/{id}").HandlerFunc(docs.Update)
	v1.Methods(http.MethodPost).Path("/documents/{id}/events").HandlerFunc(docs.AppendEvents)
	v1.Methods(http.MethodPost).Path("/documents/{id}/snapshots").HandlerFunc(docs.SaveSnapshot)
	v1.Methods(http.MethodGet).Path("/documents/{id}/live").HandlerFunc(live.Live)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(logger, w, http.StatusNotFound, errCodeNotFound, "route not found")
	})

	return r
}
