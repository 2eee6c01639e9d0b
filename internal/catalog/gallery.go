package catalog

import (
	"context"
	"errors"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

// GalleryCount returns the number of images a part exposes: the primary blob
// on the PART row counts as index 0, gallery rows follow. Unknown parts
// report zero instead of failing, the storefront polls this endpoint.
func (s *service) GalleryCount(ctx context.Context, partID int64) (int, error) {
	var part models.Part
	err := s.dbClient.DB().WithContext(ctx).
		Select(`"PartId"`, `"ImageData"`).
		First(&part, `"PartId" = ?`, partID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading part for gallery count")
	}

	count := 0
	if part.HasImage() {
		count++
	}

	var extras int64
	if err := s.dbClient.DB().WithContext(ctx).Model(&models.PartImage{}).
		Where(`"PartId" = ?`, partID).Count(&extras).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting gallery images")
	}
	return count + int(extras), nil
}

// PartImageByIndex resolves an image by gallery position: index 0 is the
// primary blob on the PART row, 1 and up walk PART_IMAGE by SortOrder.
func (s *service) PartImageByIndex(ctx context.Context, partID int64, index int) (*GalleryImage, error) {
	if index < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Imagen no encontrada")
	}

	part, err := s.GetPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	if index == 0 && part.HasImage() {
		return &GalleryImage{Data: part.ImageData, Type: part.ImageType}, nil
	}

	offset := index - 1
	if offset < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Imagen no encontrada")
	}

	var extra models.PartImage
	err = s.dbClient.DB().WithContext(ctx).
		Where(`"PartId" = ?`, partID).
		Order(`"SortOrder"`).
		Offset(offset).Limit(1).
		First(&extra).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Imagen no encontrada")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading gallery image")
	}
	return &GalleryImage{Data: extra.ImageData, Type: extra.ImageType}, nil
}

// AddPartImage appends an image to the part gallery. SortOrder is assigned
// from the current row count, the gallery is append-only.
func (s *service) AddPartImage(ctx context.Context, partID int64, imageData []byte, imageType *string) error {
	if err := ValidateImage(imageData, imageType); err != nil {
		return err
	}
	if _, err := s.GetPart(ctx, partID); err != nil {
		return err
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PartImage{}).Where(`"PartId" = ?`, partID).Count(&count).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting gallery images")
		}
		img := models.PartImage{
			PartID:    partID,
			SortOrder: int(count),
			ImageData: imageData,
			ImageType: imageType,
		}
		if err := tx.Create(&img).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding gallery image")
		}
		return nil
	})
}
