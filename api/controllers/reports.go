package controllers

import (
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/fabrica"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

// ReportPartViewed forwards a detail-view event to the factory.
func ReportPartViewed(svc fabrica.Reporting, logg *logger.Logger) http.HandlerFunc {
	return reportHandler(svc, logg, func(r *http.Request, event fabrica.EngagementEvent) error {
		return svc.ReportPartViewed(r.Context(), event)
	})
}

// ReportAddedToCart forwards an add-to-cart event to the factory.
func ReportAddedToCart(svc fabrica.Reporting, logg *logger.Logger) http.HandlerFunc {
	return reportHandler(svc, logg, func(r *http.Request, event fabrica.EngagementEvent) error {
		return svc.ReportAddedToCart(r.Context(), event)
	})
}

func reportHandler(svc fabrica.Reporting, logg *logger.Logger, forward func(*http.Request, fabrica.EngagementEvent) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event fabrica.EngagementEvent
		if err := validators.DecodeJSONBody(r, &event); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := forward(r, event); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, map[string]any{"ok": true})
	}
}
