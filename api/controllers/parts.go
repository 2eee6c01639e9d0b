package controllers

import (
	"net/http"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createPartRequest struct {
	CategoryID        *int64           `json:"categoryId"`
	BrandID           *int64           `json:"brandId"`
	PartNumber        string           `json:"partNumber"`
	Title             string           `json:"title"`
	Description       *string          `json:"description"`
	WeightLb          *decimal.Decimal `json:"weightLb"`
	Price             *decimal.Decimal `json:"price"`
	StockQuantity     *int             `json:"stockQuantity"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	ImageData         *string          `json:"imageData"`
	ImageType         *string          `json:"imageType"`
}

type updatePartRequest struct {
	CategoryID        *int64           `json:"categoryId"`
	BrandID           *int64           `json:"brandId"`
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	WeightLb          *decimal.Decimal `json:"weightLb"`
	Price             *decimal.Decimal `json:"price"`
	Active            *int             `json:"active"`
	StockQuantity     *int             `json:"stockQuantity"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
	ImageData         *string          `json:"imageData"`
	ImageType         *string          `json:"imageType"`
}

type updateInventoryRequest struct {
	StockQuantity     *int `json:"stockQuantity"`
	LowStockThreshold *int `json:"lowStockThreshold"`
}

type addImageRequest struct {
	ImageData *string `json:"imageData"`
	ImageType *string `json:"imageType"`
}

func partDTO(p *models.Part) map[string]any {
	return map[string]any{
		"partId":            p.PartID,
		"categoryId":        p.CategoryID,
		"brandId":           p.BrandID,
		"partNumber":        p.PartNumber,
		"title":             p.Title,
		"description":       p.Description,
		"weightLb":          p.WeightLb,
		"price":             p.Price,
		"active":            p.Active,
		"createdAt":         p.CreatedAt,
		"hasImage":          p.HasImage(),
		"inStock":           p.InStock(),
		"lowStock":          p.LowStock(),
		"stockQuantity":     p.StockQuantity,
		"availableQuantity": p.AvailableQuantity(),
	}
}

func partListDTO(parts []models.Part) []map[string]any {
	out := make([]map[string]any, 0, len(parts))
	for i := range parts {
		out = append(out, partDTO(&parts[i]))
	}
	return out
}

// ListParts lists catalog parts with optional category/brand filters.
func ListParts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryInt64(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brandID, err := validators.ParseQueryInt64(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parts, err := svc.ListParts(r.Context(), catalog.ListPartsInput{
			CategoryID:      categoryID,
			BrandID:         brandID,
			IncludeInactive: validators.QueryBool(r, "includeInactive"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, partListDTO(parts))
	}
}

// SearchParts searches by the first non-blank term among the legacy query
// parameter aliases.
func SearchParts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := validators.FirstQuery(r, "q", "nombre", "descripcion", "especificaciones")
		parts, err := svc.SearchParts(r.Context(), term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, partListDTO(parts))
	}
}

// GetPart returns one part by id.
func GetPart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		part, err := svc.GetPart(r.Context(), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, partDTO(part))
	}
}

// GetPartByNumber returns one part by its part number.
func GetPartByNumber(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partNumber := strings.TrimSpace(chi.URLParam(r, "partNumber"))
		part, err := svc.GetPartByNumber(r.Context(), partNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, partDTO(part))
	}
}

// GetGallery returns the image count for a part. Errors degrade to a zero
// count so the frontend can always render the carousel.
func GetGallery(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteJSON(w, http.StatusOK, map[string]int{"count": 0})
			return
		}
		count, err := svc.GalleryCount(r.Context(), partID)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "loading gallery count", err)
			}
			responses.WriteJSON(w, http.StatusOK, map[string]int{"count": 0})
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

// AddPartImage appends a base64 image to the part's gallery and returns the
// new count.
func AddPartImage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.ImageData == nil || strings.TrimSpace(*payload.ImageData) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "imageData es obligatorio"))
			return
		}

		imageData, imageType, err := catalog.DecodeImageBase64(*payload.ImageData, payload.ImageType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(imageData) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Imagen inválida"))
			return
		}

		if err := svc.AddPartImage(r.Context(), partID, imageData, imageType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := svc.GalleryCount(r.Context(), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

// CreatePart creates a part, optionally with an inline base64 primary image.
func CreatePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if strings.TrimSpace(payload.PartNumber) == "" || strings.TrimSpace(payload.Title) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "partNumber y title son obligatorios"))
			return
		}

		input := catalog.CreatePartInput{
			PartNumber:        payload.PartNumber,
			Title:             payload.Title,
			Description:       payload.Description,
			WeightLb:          payload.WeightLb,
			LowStockThreshold: 5,
		}
		if payload.CategoryID != nil {
			input.CategoryID = *payload.CategoryID
		}
		if payload.BrandID != nil {
			input.BrandID = *payload.BrandID
		}
		if payload.Price != nil {
			input.Price = *payload.Price
		}
		if payload.StockQuantity != nil {
			input.StockQuantity = *payload.StockQuantity
		}
		if payload.LowStockThreshold != nil {
			input.LowStockThreshold = *payload.LowStockThreshold
		}

		part, err := svc.CreatePart(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.ImageData != nil && strings.TrimSpace(*payload.ImageData) != "" {
			imageData, imageType, err := catalog.DecodeImageBase64(*payload.ImageData, payload.ImageType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if len(imageData) > 0 {
				part, err = svc.UpdatePartImage(r.Context(), part.PartID, imageData, imageType)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}
		}

		responses.WriteJSON(w, http.StatusCreated, partDTO(part))
	}
}

// UpdatePart patches part fields, inventory counters and the primary image
// in one call.
func UpdatePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.UpdatePart(r.Context(), partID, catalog.UpdatePartInput{
			CategoryID:  payload.CategoryID,
			BrandID:     payload.BrandID,
			Title:       payload.Title,
			Description: payload.Description,
			WeightLb:    payload.WeightLb,
			Price:       payload.Price,
			Active:      payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.StockQuantity != nil || payload.LowStockThreshold != nil {
			part, err = svc.UpdateInventorySettings(r.Context(), partID, payload.StockQuantity, payload.LowStockThreshold)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if payload.ImageData != nil && strings.TrimSpace(*payload.ImageData) != "" {
			imageData, imageType, err := catalog.DecodeImageBase64(*payload.ImageData, payload.ImageType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if len(imageData) > 0 {
				part, err = svc.UpdatePartImage(r.Context(), partID, imageData, imageType)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}
		}

		responses.WriteJSON(w, http.StatusOK, partDTO(part))
	}
}

// UpdatePartInventory patches the stock counters only.
func UpdatePartInventory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.UpdateInventorySettings(r.Context(), partID, payload.StockQuantity, payload.LowStockThreshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, partDTO(part))
	}
}

// DeletePart removes a part and its gallery.
func DeletePart(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePart(r.Context(), partID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
