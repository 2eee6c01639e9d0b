package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog item. Column names keep the PascalCase identifiers of
// the legacy schema so the portal can run against an existing database.
type Part struct {
	PartID      int64            `gorm:"column:PartId;primaryKey;autoIncrement" json:"partId"`
	CategoryID  int64            `gorm:"column:CategoryId;not null" json:"categoryId"`
	BrandID     int64            `gorm:"column:BrandId;not null" json:"brandId"`
	PartNumber  string           `gorm:"column:PartNumber;size:100;not null;uniqueIndex" json:"partNumber"`
	Title       string           `gorm:"column:Title;size:500;not null" json:"title"`
	Description *string          `gorm:"column:Description" json:"description"`
	WeightLb    *decimal.Decimal `gorm:"column:WeightLb;type:numeric(10,2)" json:"weightLb"`
	Price       decimal.Decimal  `gorm:"column:Price;type:numeric(12,2);not null" json:"price"`
	Active      int              `gorm:"column:Active;not null;default:1" json:"active"`
	CreatedAt   *time.Time       `gorm:"column:CreatedAt" json:"createdAt"`

	ImageData []byte  `gorm:"column:ImageData" json:"-"`
	ImageType *string `gorm:"column:ImageType;size:50" json:"imageType"`

	StockQuantity     int `gorm:"column:StockQuantity;not null;default:0" json:"stockQuantity"`
	LowStockThreshold int `gorm:"column:LowStockThreshold;not null;default:5" json:"lowStockThreshold"`
	ReservedQuantity  int `gorm:"column:ReservedQuantity;not null;default:0" json:"reservedQuantity"`
}

func (Part) TableName() string { return "PART" }

// AvailableQuantity is stock minus reservations. It can go negative if the
// counters were mutated outside the guarded paths; callers treat <=0 as out
// of stock.
func (p Part) AvailableQuantity() int {
	return p.StockQuantity - p.ReservedQuantity
}

func (p Part) HasImage() bool {
	return len(p.ImageData) > 0
}

func (p Part) InStock() bool {
	return p.AvailableQuantity() > 0
}

func (p Part) LowStock() bool {
	avail := p.AvailableQuantity()
	return avail > 0 && avail <= p.LowStockThreshold
}

// PartImage is a gallery photo. Index 0 of the gallery lives on the PART row
// itself; these rows hold indexes 1 and up, ordered by SortOrder.
type PartImage struct {
	PartImageID int64   `gorm:"column:PartImageId;primaryKey;autoIncrement" json:"partImageId"`
	PartID      int64   `gorm:"column:PartId;not null;index" json:"partId"`
	SortOrder   int     `gorm:"column:SortOrder;not null;default:0" json:"sortOrder"`
	ImageData   []byte  `gorm:"column:ImageData;not null" json:"-"`
	ImageType   *string `gorm:"column:ImageType;size:50" json:"imageType"`
}

func (PartImage) TableName() string { return "PART_IMAGE" }

type Category struct {
	CategoryID int64   `gorm:"column:CategoryId;primaryKey;autoIncrement" json:"categoryId"`
	Name       string  `gorm:"column:Name;size:200;not null" json:"name"`
	ParentID   *int64  `gorm:"column:ParentId" json:"parentId"`
	ImageData  []byte  `gorm:"column:ImageData" json:"-"`
	ImageType  *string `gorm:"column:ImageType;size:50" json:"imageType"`
}

func (Category) TableName() string { return "CATEGORY" }

type Brand struct {
	BrandID   int64   `gorm:"column:BrandId;primaryKey;autoIncrement" json:"brandId"`
	Name      string  `gorm:"column:Name;size:200;not null" json:"name"`
	ImageData []byte  `gorm:"column:ImageData" json:"-"`
	ImageType *string `gorm:"column:ImageType;size:50" json:"imageType"`
}

func (Brand) TableName() string { return "BRAND" }

// PartReview is a comment on a part. Root comments may carry a 1-5 star
// rating; replies reference their parent and never carry one.
type PartReview struct {
	ReviewID  int64      `gorm:"column:ReviewId;primaryKey;autoIncrement" json:"reviewId"`
	PartID    int64      `gorm:"column:PartId;not null;index" json:"partId"`
	UserID    int64      `gorm:"column:UserId;not null" json:"userId"`
	ParentID  *int64     `gorm:"column:ParentId" json:"parentId"`
	Rating    *int       `gorm:"column:Rating" json:"rating"`
	Body      string     `gorm:"column:Body;size:2000;not null" json:"body"`
	CreatedAt *time.Time `gorm:"column:CreatedAt" json:"createdAt"`
}

func (PartReview) TableName() string { return "PART_REVIEW" }
