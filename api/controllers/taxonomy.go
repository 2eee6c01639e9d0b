package controllers

import (
	"net/http"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

func categoryDTO(c *models.Category) map[string]any {
	return map[string]any{
		"categoryId": c.CategoryID,
		"name":       c.Name,
		"parentId":   c.ParentID,
	}
}

func brandDTO(b *models.Brand) map[string]any {
	return map[string]any{
		"brandId": b.BrandID,
		"name":    b.Name,
	}
}

// ListCategories returns all catalog categories.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]map[string]any, 0, len(categories))
		for i := range categories {
			out = append(out, categoryDTO(&categories[i]))
		}
		responses.WriteJSON(w, http.StatusOK, out)
	}
}

// GetCategory returns one category by id.
func GetCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.GetCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, categoryDTO(category))
	}
}

// ListBrands returns all catalog brands.
func ListBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]map[string]any, 0, len(brands))
		for i := range brands {
			out = append(out, brandDTO(&brands[i]))
		}
		responses.WriteJSON(w, http.StatusOK, out)
	}
}

// GetBrand returns one brand by id.
func GetBrand(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.GetBrand(r.Context(), brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, brandDTO(brand))
	}
}
