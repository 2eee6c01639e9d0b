package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

	svc, err := NewService(client)
	require.NoError(t, err)
	return svc, client
}

func seedUser(t *testing.T, client *db.Client, email string, roleNames ...string) *models.AppUser {
	t.Helper()
	user := &models.AppUser{Email: email, PasswordHash: "hash", Status: models.UserStatusActive}
	require.NoError(t, client.DB().Create(user).Error)
	for _, name := range roleNames {
		var role models.Role
		require.NoError(t, client.DB().First(&role, `"Name" = ?`, name).Error)
		require.NoError(t, client.DB().Create(&models.UserRole{UserID: user.UserID, RoleID: role.RoleID}).Error)
	}
	return user
}

func TestListUsersWithRoles(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	seedUser(t, client, "b@example.com", models.RoleUser)
	seedUser(t, client, "a@example.com", models.RoleAdmin, models.RoleEmployee)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// ordered by email
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.ElementsMatch(t, []string{models.RoleAdmin, models.RoleEmployee}, users[0].RoleNames())
	assert.Equal(t, []string{models.RoleUser}, users[1].RoleNames())
}

func TestUpdateUserStatusAndRoles(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	user := seedUser(t, client, "c@example.com", models.RoleUser)

	inactive := models.UserStatusInactive
	updated, err := svc.UpdateUser(ctx, user.UserID, UpdateInput{
		Status:    &inactive,
		RoleNames: []string{models.RoleEmployee, "NO_EXISTE", models.RoleEmployee, " "},
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInactive, updated.Status)
	assert.Equal(t, []string{models.RoleEmployee}, updated.RoleNames())

	// nil role list leaves assignments alone
	active := models.UserStatusActive
	updated, err = svc.UpdateUser(ctx, user.UserID, UpdateInput{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleEmployee}, updated.RoleNames())

	// empty slice removes every role
	updated, err = svc.UpdateUser(ctx, user.UserID, UpdateInput{RoleNames: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.RoleNames())

	_, err = svc.UpdateUser(ctx, 9999, UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestHasRole(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	admin := seedUser(t, client, "admin@example.com", models.RoleAdmin)
	plain := seedUser(t, client, "user@example.com", models.RoleUser)

	ok, err := svc.HasRole(ctx, admin.UserID, models.RoleAdmin, models.RoleEmployee)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(ctx, plain.UserID, models.RoleAdmin, models.RoleEmployee)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasRole(ctx, 9999, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasRole(ctx, admin.UserID)
	require.NoError(t, err)
	assert.False(t, ok)
}
