package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service runs the local order pipeline: reserve, price, persist, confirm.
type Service interface {
	CreateOrder(ctx context.Context, userID int64, items []ItemInput) (*models.OrderHeader, error)
	GetOrder(ctx context.Context, orderID int64) (*models.OrderHeader, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]models.OrderHeader, error)
	ListAll(ctx context.Context) ([]models.OrderHeader, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	LatestStatus(ctx context.Context, orderID int64) (*models.OrderStatusHistory, error)
	AppendStatus(ctx context.Context, orderID int64, input StatusInput) (*models.OrderStatusHistory, error)
}

// ItemInput is one requested order line.
type ItemInput struct {
	PartID int64
	Qty    int
}

// StatusInput appends an entry to the order's status history.
type StatusInput struct {
	Status          string
	Comment         *string
	TrackingNumber  *string
	EtaDays         *int
	ChangedByUserID int64
}

// OrderDetail bundles the header with priced lines and the latest status.
type OrderDetail struct {
	Order  models.OrderHeader
	Items  []DetailItem
	Status *models.OrderStatusHistory
}

// DetailItem is an order line enriched with the part title.
type DetailItem struct {
	PartID    int64
	PartTitle string
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type stockKeeper interface {
	GetPart(ctx context.Context, partID int64) (*models.Part, error)
	CheckAvailability(ctx context.Context, partID int64, qty int) (bool, error)
	ReserveStock(ctx context.Context, partID int64, qty int) (bool, error)
	ReleaseStock(ctx context.Context, partID int64, qty int) error
	ConfirmSale(ctx context.Context, partID int64, qty int) error
}

type service struct {
	dbClient *db.Client
	stock    stockKeeper
	metrics  *metrics.APIMetrics
}

// NewService constructs an order service instance.
func NewService(dbClient *db.Client, stock catalog.Service, apiMetrics *metrics.APIMetrics) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if stock == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{dbClient: dbClient, stock: stock, metrics: apiMetrics}, nil
}

// CreateOrder validates stock, reserves every line, prices from the current
// part price and persists header, lines and the INITIATED status entry.
// Reservations taken before a failing line are released.
func (s *service) CreateOrder(ctx context.Context, userID int64, items []ItemInput) (*models.OrderHeader, error) {
	if len(items) == 0 {
		s.metrics.IncOrderRejected("empty")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El pedido debe tener al menos un artículo")
	}

	parts := make(map[int64]*models.Part, len(items))
	for _, item := range items {
		part, err := s.stock.GetPart(ctx, item.PartID)
		if err != nil {
			if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
				s.metrics.IncOrderRejected("unknown_part")
				return nil, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("Repuesto no encontrado: %d", item.PartID))
			}
			return nil, err
		}
		ok, err := s.stock.CheckAvailability(ctx, item.PartID, item.Qty)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.metrics.IncOrderRejected("stock")
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Stock insuficiente para: %s", part.Title))
		}
		parts[item.PartID] = part
	}

	reserved := make([]ItemInput, 0, len(items))
	for _, item := range items {
		ok, err := s.stock.ReserveStock(ctx, item.PartID, item.Qty)
		if err != nil || !ok {
			s.rollbackReservations(ctx, reserved)
			if err != nil {
				return nil, err
			}
			s.metrics.IncOrderRejected("stock")
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "No se pudo reservar el stock")
		}
		reserved = append(reserved, item)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(parts[item.PartID].Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	// No shipping quote today; suppliers carry rate settings but nothing
	// feeds them into the total yet.
	shippingTotal := decimal.Zero
	total := subtotal.Add(shippingTotal)

	now := time.Now().UTC()
	header := models.OrderHeader{
		OrderNumber:   GenerateOrderNumber(now),
		UserID:        userID,
		OrderType:     "WEB",
		Subtotal:      subtotal,
		ShippingTotal: shippingTotal,
		Total:         total,
		Currency:      "USD",
		CreatedAt:     &now,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order header")
		}
		for _, item := range items {
			part := parts[item.PartID]
			line := models.OrderItem{
				OrderID:   header.OrderID,
				PartID:    item.PartID,
				Qty:       item.Qty,
				UnitPrice: part.Price,
				LineTotal: part.Price.Mul(decimal.NewFromInt(int64(item.Qty))),
			}
			if err := tx.Create(&line).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order item")
			}
		}
		comment := "Pedido creado"
		entry := models.OrderStatusHistory{
			OrderID:         header.OrderID,
			Status:          models.OrderStatusInitiated,
			CommentText:     &comment,
			ChangedByUserID: &userID,
			ChangedAt:       &now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating status entry")
		}
		return nil
	})
	if err != nil {
		s.rollbackReservations(ctx, reserved)
		return nil, err
	}

	// consume the reservations now that the order is on disk
	for _, item := range items {
		if err := s.stock.ConfirmSale(ctx, item.PartID, item.Qty); err != nil {
			return nil, err
		}
	}

	s.metrics.IncOrderCreated()
	return &header, nil
}

func (s *service) rollbackReservations(ctx context.Context, items []ItemInput) {
	for _, item := range items {
		_ = s.stock.ReleaseStock(ctx, item.PartID, item.Qty)
	}
}

func (s *service) GetOrder(ctx context.Context, orderID int64) (*models.OrderHeader, error) {
	var header models.OrderHeader
	err := s.dbClient.DB().WithContext(ctx).First(&header, `"OrderId" = ?`, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Pedido no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return &header, nil
}

func (s *service) GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	header, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	status, err := s.LatestStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := OrderDetail{Order: *header, Status: status}
	for _, item := range items {
		title := fmt.Sprintf("Repuesto #%d", item.PartID)
		if part, err := s.stock.GetPart(ctx, item.PartID); err == nil {
			title = part.Title
		}
		detail.Items = append(detail.Items, DetailItem{
			PartID:    item.PartID,
			PartTitle: title,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return &detail, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]models.OrderHeader, error) {
	var orders []models.OrderHeader
	err := s.dbClient.DB().WithContext(ctx).
		Where(`"UserId" = ?`, userID).
		Order(`"CreatedAt" DESC`).
		Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing user orders")
	}
	return orders, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.OrderHeader, error) {
	var orders []models.OrderHeader
	err := s.dbClient.DB().WithContext(ctx).Order(`"CreatedAt" DESC`).Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders, nil
}

func (s *service) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.dbClient.DB().WithContext(ctx).Where(`"OrderId" = ?`, orderID).Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing order items")
	}
	return items, nil
}

// LatestStatus returns the newest history entry or nil when no entry exists.
func (s *service) LatestStatus(ctx context.Context, orderID int64) (*models.OrderStatusHistory, error) {
	var entry models.OrderStatusHistory
	err := s.dbClient.DB().WithContext(ctx).
		Where(`"OrderId" = ?`, orderID).
		Order(`"StatusId" DESC`).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading latest status")
	}
	return &entry, nil
}

// AppendStatus adds a history entry. The history is append-only; earlier
// entries are never rewritten.
func (s *service) AppendStatus(ctx context.Context, orderID int64, input StatusInput) (*models.OrderStatusHistory, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.OrderStatusInitiated
	}

	now := time.Now().UTC()
	entry := models.OrderStatusHistory{
		OrderID:         orderID,
		Status:          status,
		CommentText:     input.Comment,
		TrackingNumber:  input.TrackingNumber,
		EtaDays:         input.EtaDays,
		ChangedByUserID: &input.ChangedByUserID,
		ChangedAt:       &now,
	}
	if err := s.dbClient.DB().WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending status")
	}
	return &entry, nil
}

// GenerateOrderNumber builds the order identifier from the UTC timestamp and
// a random suffix: ORD-YYYYMMDD-HHMMSS-XXXXXXXX.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ORD-" + now.UTC().Format("20060102-150405") + "-" + suffix
}
