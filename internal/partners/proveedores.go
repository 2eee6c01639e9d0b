package partners

import (
	"context"
	"errors"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

func (s *service) ListProveedores(ctx context.Context, includeInactive bool) ([]models.Proveedor, error) {
	q := s.dbClient.DB().WithContext(ctx).Model(&models.Proveedor{})
	if !includeInactive {
		q = q.Where(`"Activo" = ?`, true)
	}
	var list []models.Proveedor
	if err := q.Order(`"Nombre"`).Find(&list).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing proveedores")
	}
	return list, nil
}

func (s *service) GetProveedor(ctx context.Context, id int64) (*models.Proveedor, error) {
	var item models.Proveedor
	err := s.dbClient.DB().WithContext(ctx).First(&item, `"ProveedorId" = ?`, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Proveedor no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading proveedor")
	}
	return &item, nil
}

func (s *service) CreateProveedor(ctx context.Context, input ProveedorInput) (*models.Proveedor, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	item := models.Proveedor{
		Nombre:               nombre,
		Contacto:             input.Contacto,
		Email:                input.Email,
		Telefono:             input.Telefono,
		APIBaseURL:           input.APIBaseURL,
		TipoCambioAQuetzales: input.TipoCambioAQuetzales,
		PorcentajeGanancia:   input.PorcentajeGanancia,
		CostoEnvioPorLibra:   input.CostoEnvioPorLibra,
		Activo:               true,
	}
	if input.Activo != nil {
		item.Activo = *input.Activo
	}
	if err := s.dbClient.DB().WithContext(ctx).Create(&item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating proveedor")
	}
	return &item, nil
}

func (s *service) UpdateProveedor(ctx context.Context, id int64, input ProveedorInput) (*models.Proveedor, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El nombre es requerido")
	}
	item, err := s.GetProveedor(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Nombre = nombre
	item.Contacto = input.Contacto
	item.Email = input.Email
	item.Telefono = input.Telefono
	item.APIBaseURL = input.APIBaseURL
	item.TipoCambioAQuetzales = input.TipoCambioAQuetzales
	item.PorcentajeGanancia = input.PorcentajeGanancia
	item.CostoEnvioPorLibra = input.CostoEnvioPorLibra
	if input.Activo != nil {
		item.Activo = *input.Activo
	}
	if err := s.dbClient.DB().WithContext(ctx).Save(item).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating proveedor")
	}
	return item, nil
}

func (s *service) DeleteProveedor(ctx context.Context, id int64) error {
	item, err := s.GetProveedor(ctx, id)
	if err != nil {
		return err
	}
	if err := s.dbClient.DB().WithContext(ctx).Delete(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting proveedor")
	}
	return nil
}
