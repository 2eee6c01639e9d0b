package models

import "github.com/shopspring/decimal"

// Distribuidor predates the portal and is kept for compatibility with the
// original Distribuidores table.
type Distribuidor struct {
	ID       int64   `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Nombre   string  `gorm:"column:Nombre;size:200;not null" json:"nombre"`
	Contacto *string `gorm:"column:Contacto;size:200" json:"contacto"`
	Email    *string `gorm:"column:Email;size:200" json:"email"`
	Telefono *string `gorm:"column:Telefono;size:50" json:"telefono"`
}

func (Distribuidor) TableName() string { return "Distribuidores" }

// Proveedor is an upstream supplier. International suppliers carry exchange
// rate, margin and per-pound shipping settings; none of these feed order
// totals today.
type Proveedor struct {
	ProveedorID          int64            `gorm:"column:ProveedorId;primaryKey;autoIncrement" json:"proveedorId"`
	Nombre               string           `gorm:"column:Nombre;size:200;not null" json:"nombre"`
	Contacto             *string          `gorm:"column:Contacto;size:200" json:"contacto"`
	Email                *string          `gorm:"column:Email;size:200" json:"email"`
	Telefono             *string          `gorm:"column:Telefono;size:50" json:"telefono"`
	APIBaseURL           *string          `gorm:"column:ApiBaseUrl;size:500" json:"apiBaseUrl"`
	TipoCambioAQuetzales *decimal.Decimal `gorm:"column:TipoCambioAQuetzales;type:numeric(12,4)" json:"tipoCambioAQuetzales"`
	PorcentajeGanancia   *decimal.Decimal `gorm:"column:PorcentajeGanancia;type:numeric(6,2)" json:"porcentajeGanancia"`
	CostoEnvioPorLibra   *decimal.Decimal `gorm:"column:CostoEnvioPorLibra;type:numeric(12,2)" json:"costoEnvioPorLibra"`
	Activo               bool             `gorm:"column:Activo;not null;default:true" json:"activo"`
}

func (Proveedor) TableName() string { return "PROVEEDOR" }
