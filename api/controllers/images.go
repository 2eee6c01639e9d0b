package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const defaultImageContentType = "image/jpeg"

type validateImageRequest struct {
	ImageData *string `json:"imageData"`
	ImageType *string `json:"imageType"`
}

func writeGalleryImage(w http.ResponseWriter, img *catalog.GalleryImage) {
	contentType := defaultImageContentType
	if img.Type != nil && strings.TrimSpace(*img.Type) != "" {
		contentType = *img.Type
	}
	responses.WriteRaw(w, http.StatusOK, contentType, img.Data)
}

// GetPrimaryImage serves the part's first gallery image as raw bytes.
func GetPrimaryImage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		img, err := svc.PartImageByIndex(r.Context(), partID, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeGalleryImage(w, img)
	}
}

// GetImageByIndex serves the gallery image at a zero based position.
func GetImageByIndex(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || index < 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "Imagen no encontrada"))
			return
		}
		img, err := svc.PartImageByIndex(r.Context(), partID, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeGalleryImage(w, img)
	}
}

// ValidateImage decodes a base64 payload and reports its size without
// storing anything.
func ValidateImage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.ImageData == nil || strings.TrimSpace(*payload.ImageData) == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "No se proporcionó imagen"))
			return
		}
		imageData, imageType, err := catalog.DecodeImageBase64(*payload.ImageData, payload.ImageType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := catalog.ValidateImage(imageData, imageType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"valid":  true,
			"size":   len(imageData),
			"sizeKB": len(imageData) / 1024,
		})
	}
}
