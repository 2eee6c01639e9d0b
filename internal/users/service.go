package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service manages portal accounts for administrators.
type Service interface {
	ListUsers(ctx context.Context) ([]models.AppUser, error)
	GetUser(ctx context.Context, userID int64) (*models.AppUser, error)
	UpdateUser(ctx context.Context, userID int64, input UpdateInput) (*models.AppUser, error)
	HasRole(ctx context.Context, userID int64, names ...string) (bool, error)
}

// UpdateInput patches the account status and/or replaces the role set.
// RoleNames nil leaves roles alone; an empty slice removes them all.
type UpdateInput struct {
	Status    *string
	RoleNames []string
}

type service struct {
	dbClient *db.Client
}

// NewService constructs a users service instance.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]models.AppUser, error) {
	var users []models.AppUser
	err := s.dbClient.DB().WithContext(ctx).
		Preload("UserRoles.Role").
		Order(`"Email"`).
		Find(&users).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	return users, nil
}

func (s *service) GetUser(ctx context.Context, userID int64) (*models.AppUser, error) {
	var user models.AppUser
	err := s.dbClient.DB().WithContext(ctx).
		Preload("UserRoles.Role").
		First(&user, `"UserId" = ?`, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Usuario no encontrado")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return &user, nil
}

// UpdateUser patches status and replaces the role set. Unknown role names
// are skipped rather than rejected.
func (s *service) UpdateUser(ctx context.Context, userID int64, input UpdateInput) (*models.AppUser, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if input.Status != nil {
			user.Status = strings.TrimSpace(*input.Status)
			if err := tx.Model(&models.AppUser{}).
				Where(`"UserId" = ?`, userID).
				UpdateColumn("Status", user.Status).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating status")
			}
		}

		if input.RoleNames != nil {
			var roles []models.Role
			if err := tx.Find(&roles).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading roles")
			}
			byName := make(map[string]int64, len(roles))
			for _, r := range roles {
				byName[r.Name] = r.RoleID
			}

			if err := tx.Where(`"UserId" = ?`, userID).Delete(&models.UserRole{}).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing roles")
			}
			seen := map[string]bool{}
			for _, name := range input.RoleNames {
				name = strings.TrimSpace(name)
				if name == "" || seen[name] {
					continue
				}
				seen[name] = true
				roleID, ok := byName[name]
				if !ok {
					continue
				}
				if err := tx.Create(&models.UserRole{UserID: userID, RoleID: roleID}).Error; err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning role")
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUser(ctx, userID)
}

// HasRole reports whether the user carries any of the given role names.
func (s *service) HasRole(ctx context.Context, userID int64, names ...string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}
	var count int64
	err := s.dbClient.DB().WithContext(ctx).
		Model(&models.UserRole{}).
		Joins(`JOIN "ROLE" ON "ROLE"."RoleId" = "USER_ROLE"."RoleId"`).
		Where(`"USER_ROLE"."UserId" = ? AND "ROLE"."Name" IN ?`, userID, names).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking roles")
	}
	return count > 0, nil
}
