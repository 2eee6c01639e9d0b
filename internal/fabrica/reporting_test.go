package fabrica

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporting(t *testing.T, handler http.Handler) (Reporting, int64) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, Driver: db.DriverSQLite}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&models.Category{}, &models.Brand{}, &models.Part{}, &models.PartImage{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	cat := models.Category{Name: "Frenos"}
	require.NoError(t, client.DB().Create(&cat).Error)
	brand := models.Brand{Name: "Bosch"}
	require.NoError(t, client.DB().Create(&brand).Error)
	part := models.Part{
		CategoryID: cat.CategoryID, BrandID: brand.BrandID,
		PartNumber: "BP-1001", Title: "Pastillas de freno",
		Price: decimal.NewFromFloat(45.50), Active: 1,
	}
	require.NoError(t, client.DB().Create(&part).Error)

	catalogService, err := catalog.NewService(client)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	proxy, err := NewClient(
		config.FabricaConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		metrics.NewAPIMetrics(nil),
	)
	require.NoError(t, err)

	reporting, err := NewReporting(proxy, catalogService)
	require.NoError(t, err)
	return reporting, part.PartID
}

func TestReportPartViewedResolvesPartNumber(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	reporting, partID := newTestReporting(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
	}))

	userID := int64(7)
	err := reporting.ReportPartViewed(context.Background(), EngagementEvent{
		PartID: &partID,
		UserID: &userID,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/reporteria/visto-detalle", gotPath)
	assert.Equal(t, "BP-1001", gotPayload["partNumber"])
	assert.Equal(t, float64(7), gotPayload["userId"])
	assert.Equal(t, "PARTICULAR", gotPayload["clientType"])
	assert.Equal(t, "distribuidores", gotPayload["source"])
}

func TestReportAddedToCartFallsBackToGivenPartNumber(t *testing.T) {
	var gotPayload map[string]any
	reporting, _ := newTestReporting(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reporteria/agregado-carrito", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
	}))

	missing := int64(9999)
	number := "EXT-55"
	source := "app-movil"
	err := reporting.ReportAddedToCart(context.Background(), EngagementEvent{
		PartID:     &missing,
		PartNumber: &number,
		Source:     &source,
	})
	require.NoError(t, err)

	assert.Equal(t, "EXT-55", gotPayload["partNumber"])
	assert.Equal(t, "app-movil", gotPayload["source"])
}

func TestReportRequiresPartID(t *testing.T) {
	reporting, _ := newTestReporting(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("the factory must not be called without a partId")
	}))

	err := reporting.ReportPartViewed(context.Background(), EngagementEvent{})
	require.Error(t, err)
	assert.Equal(t, "partId es obligatorio", pkgerrors.Message(err))
}

func TestReportRelaysUpstreamFailure(t *testing.T) {
	reporting, partID := newTestReporting(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := reporting.ReportPartViewed(context.Background(), EngagementEvent{PartID: &partID})
	require.Error(t, err)
	assert.Equal(t, "No se pudo registrar en la fábrica", pkgerrors.Message(err))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, details["upstreamStatus"])
}
