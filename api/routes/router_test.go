package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/agenciasgt/distribuidores-backend/internal/auth"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/internal/fabrica"
	"github.com/agenciasgt/distribuidores-backend/internal/mail"
	"github.com/agenciasgt/distribuidores-backend/internal/orders"
	"github.com/agenciasgt/distribuidores-backend/internal/partners"
	"github.com/agenciasgt/distribuidores-backend/internal/reviews"
	"github.com/agenciasgt/distribuidores-backend/internal/users"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
		Fabrica: config.FabricaConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *db.Client) {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: db.DriverSQLite}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Part{}, &models.PartImage{},
		&models.AppUser{}, &models.Role{}, &models.UserRole{},
		&models.OrderHeader{}, &models.OrderItem{}, &models.OrderStatusHistory{},
		&models.PartReview{}, &models.Distribuidor{}, &models.Proveedor{},
	))

	catalogService, err := catalog.NewService(client)
	require.NoError(t, err)
	ordersService, err := orders.NewService(client, catalogService, nil)
	require.NoError(t, err)
	usersService, err := users.NewService(client)
	require.NoError(t, err)
	authService, err := authsvc.NewService(client, cfg.JWT)
	require.NoError(t, err)
	reviewsService, err := reviews.NewService(client)
	require.NoError(t, err)
	partnersService, err := partners.NewService(client)
	require.NoError(t, err)
	mailSender, err := mail.NewSender(config.MailConfig{}, logg, nil)
	require.NoError(t, err)
	fabricaClient, err := fabrica.NewClient(cfg.Fabrica, nil)
	require.NoError(t, err)
	reporting, err := fabrica.NewReporting(fabricaClient, catalogService)
	require.NoError(t, err)

	router := NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            client,
		Auth:          authService,
		Catalog:       catalogService,
		Orders:        ordersService,
		Users:         usersService,
		Reviews:       reviewsService,
		Partners:      partnersService,
		Mail:          mailSender,
		FabricaClient: fabricaClient,
		Reporting:     reporting,
	})
	return router, client
}

func seedPart(t *testing.T, client *db.Client) *models.Part {
	t.Helper()
	part := &models.Part{
		PartNumber:    "BP-1001",
		Title:         "Pastillas de freno",
		Price:         decimal.NewFromInt(45),
		Active:        1,
		StockQuantity: 10,
	}
	require.NoError(t, client.DB().Create(part).Error)
	return part
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	live := doJSON(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, live.Code)

	ready := doJSON(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"db":"up"`)
}

func TestPartsRoutes(t *testing.T) {
	router, client := newTestRouter(t)
	part := seedPart(t, client)

	list := doJSON(t, router, http.MethodGet, "/api/repuestos", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"partNumber":"BP-1001"`)

	get := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/repuestos/%d", part.PartID), nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), `"title":"Pastillas de freno"`)

	byNumber := doJSON(t, router, http.MethodGet, "/api/repuestos/numero/BP-1001", nil)
	assert.Equal(t, http.StatusOK, byNumber.Code)

	missing := doJSON(t, router, http.MethodGet, "/api/repuestos/999999", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	gallery := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/repuestos/%d/galeria", part.PartID), nil)
	require.Equal(t, http.StatusOK, gallery.Code)
	assert.JSONEq(t, `{"count":0}`, gallery.Body.String())
}

func TestCreatePartRequiresNumberAndTitle(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/repuestos", map[string]any{"title": "Sin número"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "partNumber y title son obligatorios")
}

func TestCreateOrderValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/pedidos", map[string]any{"userId": 0, "items": []any{}})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "userId e items son obligatorios")
}

func TestCheckoutFlow(t *testing.T) {
	router, client := newTestRouter(t)
	part := seedPart(t, client)

	user := &models.AppUser{Email: "cliente@test.com", PasswordHash: "x", Status: "ACTIVE"}
	require.NoError(t, client.DB().Create(user).Error)

	resp := doJSON(t, router, http.MethodPost, "/api/pedidos", map[string]any{
		"userId": user.UserID,
		"items":  []map[string]any{{"partId": part.PartID, "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"orderNumber":"ORD-`)

	detailPath := ""
	var created struct {
		OrderID int64 `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	detailPath = fmt.Sprintf("/api/pedidos/%d", created.OrderID)

	detail := doJSON(t, router, http.MethodGet, detailPath, nil)
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), `"partTitle":"Pastillas de freno"`)
	assert.Contains(t, detail.Body.String(), models.OrderStatusInitiated)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	register := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "nuevo@test.com",
		"password": "secreta123",
		"fullName": "Nuevo Usuario",
	})
	require.Equal(t, http.StatusCreated, register.Code)
	assert.Contains(t, register.Body.String(), "Registrado correctamente")

	login := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nuevo@test.com",
		"password": "secreta123",
	})
	require.Equal(t, http.StatusOK, login.Code)
	assert.Contains(t, login.Body.String(), `"token":"`)

	bad := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nuevo@test.com",
		"password": "equivocada",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestUsersListRequiresAdmin(t *testing.T) {
	router, client := newTestRouter(t)

	user := &models.AppUser{Email: "plain@test.com", PasswordHash: "x", Status: "ACTIVE"}
	require.NoError(t, client.DB().Create(user).Error)

	resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/usuarios?userId=%d", user.UserID), nil)
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Requiere rol ADMIN")
}

func TestCommentsRoutes(t *testing.T) {
	router, client := newTestRouter(t)
	part := seedPart(t, client)
	user := &models.AppUser{Email: "opina@test.com", PasswordHash: "x", Status: "ACTIVE"}
	require.NoError(t, client.DB().Create(user).Error)

	create := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/repuestos/%d/comentarios", part.PartID), map[string]any{
		"userId": user.UserID,
		"rating": 5,
		"body":   "Excelente calidad",
	})
	require.Equal(t, http.StatusCreated, create.Code)

	list := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/repuestos/%d/comentarios", part.PartID), nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Excelente calidad")
}

func TestDistribuidoresRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	create := doJSON(t, router, http.MethodPost, "/api/distribuidores", map[string]any{"nombre": "Repuestos del Sur"})
	require.Equal(t, http.StatusCreated, create.Code)

	list := doJSON(t, router, http.MethodGet, "/api/distribuidores", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Repuestos del Sur")
}

func TestFabricaLoginValidatesLocally(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/fabrica/auth/login", map[string]any{"email": "", "password": ""})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email y contraseña son obligatorios")
}

func TestReportesRequirePartID(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/reportes/visto-detalle", map[string]any{"userId": 1})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "partId es obligatorio")
}
