package partners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages the distributor registry and the upstream suppliers.
type Service interface {
	ListDistribuidores(ctx context.Context) ([]models.Distribuidor, error)
	GetDistribuidor(ctx context.Context, id int64) (*models.Distribuidor, error)
	CreateDistribuidor(ctx context.Context, input DistribuidorInput) (*models.Distribuidor, error)
	UpdateDistribuidor(ctx context.Context, id int64, input DistribuidorInput) (*models.Distribuidor, error)
	DeleteDistribuidor(ctx context.Context, id int64) error

	ListProveedores(ctx context.Context, includeInactive bool) ([]models.Proveedor, error)
	GetProveedor(ctx context.Context, id int64) (*models.Proveedor, error)
	CreateProveedor(ctx context.Context, input ProveedorInput) (*models.Proveedor, error)
	UpdateProveedor(ctx context.Context, id int64, input ProveedorInput) (*models.Proveedor, error)
	DeleteProveedor(ctx context.Context, id int64) error
}

// DistribuidorInput carries the writable distributor fields.
type DistribuidorInput struct {
	Nombre   string
	Contacto *string
	Email    *string
	Telefono *string
}

// ProveedorInput carries the writable supplier fields.
type ProveedorInput struct {
	Nombre               string
	Contacto             *string
	Email                *string
	Telefono             *string
	APIBaseURL           *string
	TipoCambioAQuetzales *decimal.Decimal
	PorcentajeGanancia   *decimal.Decimal
	CostoEnvioPorLibra   *decimal.Decimal
	Activo               *bool
}

type service struct {
	dbClient *db.Client
}

// NewService constructs a partners service instance.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient}, nil
}

func (s *service) ListDistribuidores(ctx context.Context) ([]models.Distribuidor, error) {
	var list []models.Distribuidor
	if err := s.dbClient.DB().WithContext(ctx).Find(&list).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing distribuidores")
	}
	return list, nil
}

func (s *service) GetDistribuidor(ctx context.Context, id int64) (*models.Distribuidor, error) {
	var item models.Distribuidor
	err := s.dbClient.DB().WithContext(ctx).First(&item, `"Id" = ?`, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Distribuidor no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading distribuidor")
	}
	return &item, nil
}

func (s *service) CreateDistribuidor(ctx context.Context, input DistribuidorInput) (*models.Distribuidor, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	item := models.Distribuidor{
		Nombre:   nombre,
		Contacto: input.Contacto,
		Email:    input.Email,
		Telefono: input.Telefono,
	}
	if err := s.dbClient.DB().WithContext(ctx).Create(&item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating distribuidor")
	}
	return &item, nil
}

func (s *service) UpdateDistribuidor(ctx context.Context, id int64, input DistribuidorInput) (*models.Distribuidor, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	item, err := s.GetDistribuidor(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Nombre = nombre
	item.Contacto = input.Contacto
	item.Email = input.Email
	item.Telefono = input.Telefono
	if err := s.dbClient.DB().WithContext(ctx).Save(item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating distribuidor")
	}
	return item, nil
}

func (s *service) DeleteDistribuidor(ctx context.Context, id int64) error {
	item, err := s.GetDistribuidor(ctx, id)
	if err != nil {
		return err
	}
	if err := s.dbClient.DB().WithContext(ctx).Delete(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting distribuidor")
	}
	return nil
}
