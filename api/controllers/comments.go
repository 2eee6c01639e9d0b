package controllers

import (
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/reviews"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

type createCommentRequest struct {
	UserID   int64  `json:"userId"`
	ParentID *int64 `json:"parentId"`
	Rating   *int   `json:"rating"`
	Body     string `json:"body"`
}

// ListComments returns the part's comment tree, roots with nested replies.
func ListComments(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tree, err := svc.GetTree(r.Context(), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, tree)
	}
}

// CreateComment adds a root comment or a reply on a part.
func CreateComment(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCommentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comment, err := svc.Create(r.Context(), partID, reviews.CreateInput{
			UserID:   payload.UserID,
			ParentID: payload.ParentID,
			Rating:   payload.Rating,
			Body:     payload.Body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, comment)
	}
}
