package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenciasgt/distribuidores-backend/pkg/auth"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// Service authenticates portal accounts against the local user table.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*models.AppUser, error)
}

// LoginResult is the authenticated user plus a freshly minted access token.
type LoginResult struct {
	User  *models.AppUser
	Roles []string
	Token string
}

// RegisterInput is the self-service registration payload.
type RegisterInput struct {
	Email    string
	Password string
	FullName *string
	Phone    *string
}

type service struct {
	dbClient *db.Client
	jwtCfg   config.JWTConfig
}

// NewService constructs an auth service instance.
func NewService(dbClient *db.Client, jwtCfg config.JWTConfig) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient, jwtCfg: jwtCfg}, nil
}

// Login verifies credentials against the ACTIVE account with that email.
// Bad email, inactive account and wrong password all collapse into the same
// rejection.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email y contraseña son obligatorios")
	}

	var user models.AppUser
	err := s.dbClient.DB().WithContext(ctx).
		Preload("UserRoles.Role").
		First(&user, `"Email" = ? AND "Status" = ?`, email, models.UserStatusActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Credenciales incorrectas")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Credenciales incorrectas")
	}

	roles := user.RoleNames()
	token, err := auth.MintAccessToken(s.jwtCfg, time.Now(), auth.AccessTokenPayload{
		UserID: user.UserID,
		Email:  user.Email,
		Roles:  roles,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &LoginResult{User: &user, Roles: roles, Token: token}, nil
}

// Register creates an ACTIVE account and assigns the USER role when the role
// table has it seeded.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.AppUser, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Email y contraseña son obligatorios")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "La contraseña debe tener al menos 6 caracteres")
	}

	var count int64
	if err := s.dbClient.DB().WithContext(ctx).Model(&models.AppUser{}).
		Where(`"Email" = ?`, email).Count(&count).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email")
	}
	if count > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Ya existe un usuario con ese email")
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	now := time.Now().UTC()
	user := models.AppUser{
		Email:        email,
		PasswordHash: hash,
		FullName:     trimPtr(input.FullName),
		Phone:        trimPtr(input.Phone),
		Status:       models.UserStatusActive,
		CreatedAt:    &now,
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
		}
		var role models.Role
		err := tx.First(&role, `"Name" = ?`, models.RoleUser).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading default role")
		}
		if err := tx.Create(&models.UserRole{UserID: user.UserID, RoleID: role.RoleID}).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning default role")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
