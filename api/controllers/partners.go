package controllers

import (
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/partners"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type distribuidorRequest struct {
	Nombre   string  `json:"nombre"`
	Contacto *string `json:"contacto"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
}

type proveedorRequest struct {
	Nombre               string           `json:"nombre"`
	Contacto             *string          `json:"contacto"`
	Email                *string          `json:"email"`
	Telefono             *string          `json:"telefono"`
	APIBaseURL           *string          `json:"apiBaseUrl"`
	TipoCambioAQuetzales *decimal.Decimal `json:"tipoCambioAQuetzales"`
	PorcentajeGanancia   *decimal.Decimal `json:"porcentajeGanancia"`
	CostoEnvioPorLibra   *decimal.Decimal `json:"costoEnvioPorLibra"`
	Activo               *bool            `json:"activo"`
}

func (p *distribuidorRequest) toInput() partners.DistribuidorInput {
	return partners.DistribuidorInput{
		Nombre:   p.Nombre,
		Contacto: p.Contacto,
		Email:    p.Email,
		Telefono: p.Telefono,
	}
}

func (p *proveedorRequest) toInput() partners.ProveedorInput {
	return partners.ProveedorInput{
		Nombre:               p.Nombre,
		Contacto:             p.Contacto,
		Email:                p.Email,
		Telefono:             p.Telefono,
		APIBaseURL:           p.APIBaseURL,
		TipoCambioAQuetzales: p.TipoCambioAQuetzales,
		PorcentajeGanancia:   p.PorcentajeGanancia,
		CostoEnvioPorLibra:   p.CostoEnvioPorLibra,
		Activo:               p.Activo,
	}
}

// ListDistribuidores returns all distributors.
func ListDistribuidores(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDistribuidores(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, items)
	}
}

// GetDistribuidor returns one distributor by id.
func GetDistribuidor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetDistribuidor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, item)
	}
}

// CreateDistribuidor registers a distributor.
func CreateDistribuidor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload distribuidorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateDistribuidor(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, item)
	}
}

// UpdateDistribuidor overwrites a distributor's writable fields.
func UpdateDistribuidor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload distribuidorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateDistribuidor(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, item)
	}
}

// DeleteDistribuidor removes a distributor.
func DeleteDistribuidor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteDistribuidor(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProveedores returns suppliers, active only unless includeInactive=true.
func ListProveedores(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListProveedores(r.Context(), validators.QueryBool(r, "includeInactive"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, items)
	}
}

// GetProveedor returns one supplier by id.
func GetProveedor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.GetProveedor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, item)
	}
}

// CreateProveedor registers a supplier, active by default.
func CreateProveedor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload proveedorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateProveedor(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, item)
	}
}

// UpdateProveedor overwrites a supplier's writable fields.
func UpdateProveedor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload proveedorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateProveedor(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, item)
	}
}

// DeleteProveedor removes a supplier.
func DeleteProveedor(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProveedor(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
