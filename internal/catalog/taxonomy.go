package catalog

import (
	"context"
	"errors"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.dbClient.DB().WithContext(ctx).Order(`"Name"`).Find(&categories).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	var category models.Category
	err := s.dbClient.DB().WithContext(ctx).First(&category, `"CategoryId" = ?`, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Categoría no encontrada")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return &category, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.dbClient.DB().WithContext(ctx).Order(`"Name"`).Find(&brands).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing brands")
	}
	return brands, nil
}

func (s *service) GetBrand(ctx context.Context, brandID int64) (*models.Brand, error) {
	var brand models.Brand
	err := s.dbClient.DB().WithContext(ctx).First(&brand, `"BrandId" = ?`, brandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Marca no encontrada")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading brand")
	}
	return &brand, nil
}
