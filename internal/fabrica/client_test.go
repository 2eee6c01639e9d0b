package fabrica

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(
		config.FabricaConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		metrics.NewAPIMetrics(nil),
	)
	require.NoError(t, err)
	return client
}

func TestClientRelaysGet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/repuestos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"partNumber":"FX-1"}]`))
	}))

	resp, err := client.Get(context.Background(), "/api/repuestos")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"partNumber":"FX-1"}]`, string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType)
}

func TestClientRelaysPostBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.Equal(t, "ana@example.com", payload["email"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))

	resp, err := client.Post(context.Background(), "api/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"token":"abc"}`, string(resp.Body))
}

func TestClientPassesUpstreamErrorsThrough(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales incorrectas"}`))
	}))

	resp, err := client.Post(context.Background(), "/api/auth/login", map[string]string{})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "Credenciales incorrectas")
}

func TestClientUnreachableUpstream(t *testing.T) {
	client, err := NewClient(
		config.FabricaConfig{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond},
		metrics.NewAPIMetrics(nil),
	)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/api/repuestos")
	require.Error(t, err)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.FabricaConfig{BaseURL: "   "}, metrics.NewAPIMetrics(nil))
	require.Error(t, err)
}
