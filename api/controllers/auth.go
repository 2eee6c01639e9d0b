package controllers

import (
	"net/http"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	authsvc "github.com/agenciasgt/distribuidores-backend/internal/auth"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

// AuthLogin validates credentials against the local user table.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"userId":   result.User.UserID,
			"email":    result.User.Email,
			"fullName": result.User.FullName,
			"phone":    result.User.Phone,
			"status":   result.User.Status,
			"roles":    result.Roles,
			"token":    result.Token,
		})
	}
}

// AuthRegister creates a portal account with the default USER role.
func AuthRegister(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), authsvc.RegisterInput{
			Email:    strings.TrimSpace(payload.Email),
			Password: payload.Password,
			FullName: payload.FullName,
			Phone:    payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"userId":  user.UserID,
			"email":   user.Email,
			"message": "Registrado correctamente",
		})
	}
}
