package controllers

import (
	"context"
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

type dbPinger interface {
	Ping(context.Context) error
}

// Health reports liveness. The frontends poll this before showing the
// catalog.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthReady checks the database connection as well.
func HealthReady(dbP dbPinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "readiness db ping", err)
				}
				responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"db":     "down",
				})
				return
			}
		}
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "up"})
	}
}
