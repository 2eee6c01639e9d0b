package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the local catalog: parts, categories, brands, the image
// gallery and the stock counters the checkout pipeline runs on.
type Service interface {
	GetPart(ctx context.Context, partID int64) (*models.Part, error)
	GetPartByNumber(ctx context.Context, partNumber string) (*models.Part, error)
	ListParts(ctx context.Context, input ListPartsInput) ([]models.Part, error)
	SearchParts(ctx context.Context, query string) ([]models.Part, error)
	CreatePart(ctx context.Context, input CreatePartInput) (*models.Part, error)
	UpdatePart(ctx context.Context, partID int64, input UpdatePartInput) (*models.Part, error)
	UpdatePartImage(ctx context.Context, partID int64, imageData []byte, imageType *string) (*models.Part, error)
	UpdateInventorySettings(ctx context.Context, partID int64, stockQuantity, lowStockThreshold *int) (*models.Part, error)
	DeletePart(ctx context.Context, partID int64) error

	GalleryCount(ctx context.Context, partID int64) (int, error)
	PartImageByIndex(ctx context.Context, partID int64, index int) (*GalleryImage, error)
	AddPartImage(ctx context.Context, partID int64, imageData []byte, imageType *string) error

	CheckAvailability(ctx context.Context, partID int64, qty int) (bool, error)
	ReserveStock(ctx context.Context, partID int64, qty int) (bool, error)
	ReleaseStock(ctx context.Context, partID int64, qty int) error
	ConfirmSale(ctx context.Context, partID int64, qty int) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrand(ctx context.Context, brandID int64) (*models.Brand, error)
}

// ListPartsInput filters the catalog listing.
type ListPartsInput struct {
	CategoryID      *int64
	BrandID         *int64
	IncludeInactive bool
}

// CreatePartInput holds the validated payload to create a part.
type CreatePartInput struct {
	CategoryID        int64
	BrandID           int64
	PartNumber        string
	Title             string
	Description       *string
	WeightLb          *decimal.Decimal
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
}

// UpdatePartInput holds optional mutation values for a part.
type UpdatePartInput struct {
	CategoryID  *int64
	BrandID     *int64
	Title       *string
	Description *string
	WeightLb    *decimal.Decimal
	Price       *decimal.Decimal
	Active      *int
}

// GalleryImage is a raw image blob plus its content type.
type GalleryImage struct {
	Data []byte
	Type *string
}

type service struct {
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient}, nil
}

func (s *service) GetPart(ctx context.Context, partID int64) (*models.Part, error) {
	var part models.Part
	err := s.dbClient.DB().WithContext(ctx).First(&part, `"PartId" = ?`, partID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Repuesto no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part")
	}
	return &part, nil
}

func (s *service) GetPartByNumber(ctx context.Context, partNumber string) (*models.Part, error) {
	var part models.Part
	err := s.dbClient.DB().WithContext(ctx).First(&part, `"PartNumber" = ?`, strings.TrimSpace(partNumber)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Repuesto no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part by number")
	}
	return &part, nil
}

func (s *service) ListParts(ctx context.Context, input ListPartsInput) ([]models.Part, error) {
	q := s.dbClient.DB().WithContext(ctx).Model(&models.Part{})
	if !input.IncludeInactive {
		q = q.Where(`"Active" <> 0`)
	}
	if input.CategoryID != nil {
		q = q.Where(`"CategoryId" = ?`, *input.CategoryID)
	}
	if input.BrandID != nil {
		q = q.Where(`"BrandId" = ?`, *input.BrandID)
	}

	var parts []models.Part
	if err := q.Order(`"Title"`).Find(&parts).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing parts")
	}
	return parts, nil
}

func (s *service) SearchParts(ctx context.Context, query string) ([]models.Part, error) {
	q := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).Where(`"Active" <> 0`)

	term := strings.ToLower(strings.TrimSpace(query))
	if term != "" {
		like := "%" + term + "%"
		q = q.Where(
			`LOWER("Title") LIKE ? OR LOWER(COALESCE("Description", '')) LIKE ? OR LOWER("PartNumber") LIKE ?`,
			like, like, like,
		)
	}

	var parts []models.Part
	if err := q.Order(`"Title"`).Find(&parts).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching parts")
	}
	return parts, nil
}

func (s *service) CreatePart(ctx context.Context, input CreatePartInput) (*models.Part, error) {
	partNumber := strings.TrimSpace(input.PartNumber)
	title := strings.TrimSpace(input.Title)
	if partNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El número de parte es obligatorio")
	}
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El título es obligatorio")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El precio debe ser mayor o igual a cero")
	}

	var count int64
	if err := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).
		Where(`"PartNumber" = ?`, partNumber).Count(&count).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking part number")
	}
	if count > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Ya existe un repuesto con ese número de parte")
	}

	now := time.Now().UTC()
	part := models.Part{
		CategoryID:        input.CategoryID,
		BrandID:           input.BrandID,
		PartNumber:        partNumber,
		Title:             title,
		Description:       trimPtr(input.Description),
		WeightLb:          input.WeightLb,
		Price:             input.Price,
		Active:            1,
		CreatedAt:         &now,
		StockQuantity:     input.StockQuantity,
		LowStockThreshold: input.LowStockThreshold,
		ReservedQuantity:  0,
	}
	if err := s.dbClient.DB().WithContext(ctx).Create(&part).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating part")
	}
	return &part, nil
}

func (s *service) UpdatePart(ctx context.Context, partID int64, input UpdatePartInput) (*models.Part, error) {
	part, err := s.GetPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		part.CategoryID = *input.CategoryID
	}
	if input.BrandID != nil {
		part.BrandID = *input.BrandID
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		part.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		part.Description = trimPtr(input.Description)
	}
	if input.WeightLb != nil {
		part.WeightLb = input.WeightLb
	}
	if input.Price != nil {
		part.Price = *input.Price
	}
	if input.Active != nil {
		part.Active = *input.Active
	}

	if err := s.dbClient.DB().WithContext(ctx).Save(part).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating part")
	}
	return part, nil
}

func (s *service) UpdatePartImage(ctx context.Context, partID int64, imageData []byte, imageType *string) (*models.Part, error) {
	if err := ValidateImage(imageData, imageType); err != nil {
		return nil, err
	}

	part, err := s.GetPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	part.ImageData = imageData
	part.ImageType = trimPtr(imageType)
	if err := s.dbClient.DB().WithContext(ctx).Save(part).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating part image")
	}
	return part, nil
}

func (s *service) UpdateInventorySettings(ctx context.Context, partID int64, stockQuantity, lowStockThreshold *int) (*models.Part, error) {
	part, err := s.GetPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	// Negative values are silently ignored, the legacy clients send them.
	if stockQuantity != nil && *stockQuantity >= 0 {
		part.StockQuantity = *stockQuantity
	}
	if lowStockThreshold != nil && *lowStockThreshold >= 0 {
		part.LowStockThreshold = *lowStockThreshold
	}

	if err := s.dbClient.DB().WithContext(ctx).Save(part).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inventory settings")
	}
	return part, nil
}

// DeletePart removes the part and its gallery rows. Deleting an absent part
// is a no-op.
func (s *service) DeletePart(ctx context.Context, partID int64) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var part models.Part
		err := tx.First(&part, `"PartId" = ?`, partID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part")
		}
		if err := tx.Where(`"PartId" = ?`, partID).Delete(&models.PartImage{}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting gallery images")
		}
		if err := tx.Delete(&part).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting part")
		}
		return nil
	})
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
