package auth

import (
	"context"
	"fmt"
	"testing"

	pkgauth "github.com/agenciasgt/distribuidores-backend/pkg/auth"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "distribuidores", ExpirationMinutes: 60}
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: db.DriverSQLite}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.AppUser{}, &models.Role{}, &models.UserRole{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	for _, name := range []string{models.RoleAdmin, models.RoleEmployee, models.RoleUser} {
		require.NoError(t, client.DB().Create(&models.Role{Name: name}).Error)
	}

	svc, err := NewService(client, testJWT())
	require.NoError(t, err)
	return svc, client
}

func TestRegisterAndLogin(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	fullName := "Ana López"
	user, err := svc.Register(ctx, RegisterInput{
		Email:    "  ana@example.com ",
		Password: "secreta1",
		FullName: &fullName,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.NotEqual(t, "secreta1", user.PasswordHash)

	// USER role assigned automatically
	var assigned int64
	require.NoError(t, client.DB().Model(&models.UserRole{}).
		Where(`"UserId" = ?`, user.UserID).Count(&assigned).Error)
	assert.Equal(t, int64(1), assigned)

	result, err := svc.Login(ctx, "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, result.User.UserID)
	assert.Equal(t, []string{models.RoleUser}, result.Roles)
	require.NotEmpty(t, result.Token)

	claims, err := pkgauth.ParseAccessToken(testJWT(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
	assert.True(t, claims.HasRole(models.RoleUser))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "", Password: "secreta1"})
	require.Error(t, err)
	assert.Equal(t, "Email y contraseña son obligatorios", pkgerrors.Message(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "corta"})
	require.Error(t, err)
	assert.Equal(t, "La contraseña debe tener al menos 6 caracteres", pkgerrors.Message(err))

	_, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secreta1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "secreta1"})
	require.Error(t, err)
	assert.Equal(t, "Ya existe un usuario con ese email", pkgerrors.Message(err))
}

func TestLoginRejections(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "luis@example.com", Password: "secreta1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "", "x")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Login(ctx, "nadie@example.com", "secreta1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
	assert.Equal(t, "Credenciales incorrectas", pkgerrors.Message(err))

	_, err = svc.Login(ctx, "luis@example.com", "equivocada")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))

	// inactive accounts cannot sign in
	require.NoError(t, client.DB().Model(&models.AppUser{}).
		Where(`"UserId" = ?`, user.UserID).
		UpdateColumn("Status", models.UserStatusInactive).Error)
	_, err = svc.Login(ctx, "luis@example.com", "secreta1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}
