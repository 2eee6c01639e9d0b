package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status codes as stored in ORDER_STATUS_HISTORY.
const (
	OrderStatusInitiated     = "INITIATED"
	OrderStatusConfirmed     = "CONFIRMED"
	OrderStatusInPreparation = "IN_PREPARATION"
	OrderStatusPreparing     = "PREPARING"
	OrderStatusShipped       = "SHIPPED"
	OrderStatusDelivered     = "DELIVERED"
	OrderStatusCancelled     = "CANCELLED"
)

type OrderHeader struct {
	OrderID       int64           `gorm:"column:OrderId;primaryKey;autoIncrement" json:"orderId"`
	OrderNumber   string          `gorm:"column:OrderNumber;size:50;not null;uniqueIndex" json:"orderNumber"`
	UserID        int64           `gorm:"column:UserId;not null;index" json:"userId"`
	OrderType     string          `gorm:"column:OrderType;size:20;not null;default:WEB" json:"orderType"`
	Subtotal      decimal.Decimal `gorm:"column:Subtotal;type:numeric(12,2);not null" json:"subtotal"`
	ShippingTotal decimal.Decimal `gorm:"column:ShippingTotal;type:numeric(12,2);not null" json:"shippingTotal"`
	Total         decimal.Decimal `gorm:"column:Total;type:numeric(12,2);not null" json:"total"`
	Currency      string          `gorm:"column:Currency;size:3;not null;default:USD" json:"currency"`
	CreatedAt     *time.Time      `gorm:"column:CreatedAt" json:"createdAt"`
}

func (OrderHeader) TableName() string { return "ORDER_HEADER" }

type OrderItem struct {
	OrderItemID int64           `gorm:"column:OrderItemId;primaryKey;autoIncrement" json:"orderItemId"`
	OrderID     int64           `gorm:"column:OrderId;not null;index" json:"orderId"`
	PartID      int64           `gorm:"column:PartId;not null" json:"partId"`
	Qty         int             `gorm:"column:Qty;not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"column:UnitPrice;type:numeric(12,2);not null" json:"unitPrice"`
	LineTotal   decimal.Decimal `gorm:"column:LineTotal;type:numeric(12,2);not null" json:"lineTotal"`
}

func (OrderItem) TableName() string { return "ORDER_ITEM" }

// OrderStatusHistory is append-only: the row with the highest StatusId is
// the order's current status.
type OrderStatusHistory struct {
	StatusID        int64      `gorm:"column:StatusId;primaryKey;autoIncrement" json:"statusId"`
	OrderID         int64      `gorm:"column:OrderId;not null;index" json:"orderId"`
	Status          string     `gorm:"column:Status;size:30;not null" json:"status"`
	CommentText     *string    `gorm:"column:CommentText;size:500" json:"commentText"`
	TrackingNumber  *string    `gorm:"column:TrackingNumber;size:100" json:"trackingNumber"`
	EtaDays         *int       `gorm:"column:EtaDays" json:"etaDays"`
	ChangedByUserID *int64     `gorm:"column:ChangedByUserId" json:"changedByUserId"`
	ChangedAt       *time.Time `gorm:"column:ChangedAt" json:"changedAt"`
}

func (OrderStatusHistory) TableName() string { return "ORDER_STATUS_HISTORY" }
