package controllers

import (
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/users"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

type updateUserRequest struct {
	AdminUserID int64    `json:"adminUserId"`
	Status      *string  `json:"status"`
	Roles       []string `json:"roles"`
}

func userDTO(u *models.AppUser) map[string]any {
	return map[string]any{
		"userId":    u.UserID,
		"email":     u.Email,
		"fullName":  u.FullName,
		"phone":     u.Phone,
		"status":    u.Status,
		"createdAt": u.CreatedAt,
		"roles":     u.RoleNames(),
	}
}

// ListUsers returns every account. The caller supplies its own user id and
// must hold the ADMIN role.
func ListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := validators.ParseQueryInt64(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if callerID == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "userId es obligatorio"))
			return
		}
		allowed, err := svc.HasRole(r.Context(), *callerID, models.RoleAdmin)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !allowed {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "Requiere rol ADMIN"))
			return
		}

		accounts, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]map[string]any, 0, len(accounts))
		for i := range accounts {
			out = append(out, userDTO(&accounts[i]))
		}
		responses.WriteJSON(w, http.StatusOK, out)
	}
}

// UpdateUser patches the account status or role set, gated on the ADMIN role
// of the admin id carried in the body.
func UpdateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.AdminUserID <= 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "adminUserId es obligatorio"))
			return
		}
		allowed, err := svc.HasRole(r.Context(), payload.AdminUserID, models.RoleAdmin)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !allowed {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "Requiere rol ADMIN"))
			return
		}

		account, err := svc.UpdateUser(r.Context(), userID, users.UpdateInput{
			Status:    payload.Status,
			RoleNames: payload.Roles,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"userId": account.UserID,
			"status": account.Status,
		})
	}
}
