package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/agenciasgt/distribuidores-backend/pkg/auth"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID int64, roles ...string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "tester@example.com",
		Roles:  roles,
	})
	require.NoError(t, err)
	return token
}

type seededClaims struct {
	userID int64
	email  string
	roles  []string
}

func claimsProbe(t *testing.T) (http.Handler, *seededClaims) {
	t.Helper()
	var got seededClaims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.userID = UserIDFromContext(r.Context())
		got.email = EmailFromContext(r.Context())
		got.roles = RolesFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return handler, &got
}

func TestAuthRejectsMissingToken(t *testing.T) {
	probe, _ := claimsProbe(t)
	handler := Auth(jwtTestConfig(), nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/usuarios", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciales requeridas")
}

func TestAuthRejectsBadToken(t *testing.T) {
	probe, _ := claimsProbe(t)
	handler := Auth(jwtTestConfig(), nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/usuarios", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token inválido")
}

func TestAuthSeedsClaims(t *testing.T) {
	cfg := jwtTestConfig()
	probe, got := claimsProbe(t)
	handler := Auth(cfg, nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/usuarios", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 42, "ADMIN"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), got.userID)
	assert.Equal(t, "tester@example.com", got.email)
	assert.Equal(t, []string{"ADMIN"}, got.roles)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	probe, got := claimsProbe(t)
	handler := OptionalAuth(jwtTestConfig(), nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/repuestos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, got.userID)
}

func TestOptionalAuthSeedsClaimsWhenPresent(t *testing.T) {
	cfg := jwtTestConfig()
	probe, got := claimsProbe(t)
	handler := OptionalAuth(cfg, nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/repuestos", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, 7))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), got.userID)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	probe, got := claimsProbe(t)
	handler := OptionalAuth(jwtTestConfig(), nil)(probe)

	req := httptest.NewRequest(http.MethodGet, "/api/repuestos", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, got.userID)
}
