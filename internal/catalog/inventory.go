package catalog

import (
	"context"
	"errors"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

// Stock counters live on the PART row. Reservation uses a single guarded
// UPDATE so concurrent checkouts cannot both take the last unit; release and
// confirm floor at zero like the legacy counters always did.

func (s *service) CheckAvailability(ctx context.Context, partID int64, qty int) (bool, error) {
	var part models.Part
	err := s.dbClient.DB().WithContext(ctx).
		Select(`"PartId"`, `"StockQuantity"`, `"ReservedQuantity"`).
		First(&part, `"PartId" = ?`, partID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking availability")
	}
	return part.AvailableQuantity() >= qty, nil
}

// ReserveStock moves qty units into the reserved counter. It returns false
// when the part does not exist or not enough stock is available; both leave
// the row untouched.
func (s *service) ReserveStock(ctx context.Context, partID int64, qty int) (bool, error) {
	if qty <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "La cantidad debe ser mayor a cero")
	}

	res := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).
		Where(`"PartId" = ? AND "StockQuantity" - "ReservedQuantity" >= ?`, partID, qty).
		UpdateColumn("ReservedQuantity", gorm.Expr(`"ReservedQuantity" + ?`, qty))
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "reserving stock")
	}
	return res.RowsAffected == 1, nil
}

// ReleaseStock returns qty units from reserved back to available. Unknown
// parts are ignored; the counter never goes below zero.
func (s *service) ReleaseStock(ctx context.Context, partID int64, qty int) error {
	if qty <= 0 {
		return nil
	}

	err := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).
		Where(`"PartId" = ?`, partID).
		UpdateColumn("ReservedQuantity", gorm.Expr(
			`CASE WHEN "ReservedQuantity" >= ? THEN "ReservedQuantity" - ? ELSE 0 END`, qty, qty)).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "releasing stock")
	}
	return nil
}

// ConfirmSale consumes a reservation: both counters drop by qty, floored at
// zero. Unknown parts are ignored.
func (s *service) ConfirmSale(ctx context.Context, partID int64, qty int) error {
	if qty <= 0 {
		return nil
	}

	err := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).
		Where(`"PartId" = ?`, partID).
		UpdateColumns(map[string]interface{}{
			"StockQuantity": gorm.Expr(
				`CASE WHEN "StockQuantity" >= ? THEN "StockQuantity" - ? ELSE 0 END`, qty, qty),
			"ReservedQuantity": gorm.Expr(
				`CASE WHEN "ReservedQuantity" >= ? THEN "ReservedQuantity" - ? ELSE 0 END`, qty, qty),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirming sale")
	}
	return nil
}
