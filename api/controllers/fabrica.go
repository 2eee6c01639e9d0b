package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/fabrica"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type fabricaLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FabricaController relays catalog, auth and order requests to the factory
// backend and passes the reply through untouched.
type FabricaController struct {
	Client *fabrica.Client
	Logger *logger.Logger
}

func (c *FabricaController) relay(w http.ResponseWriter, r *http.Request, resp *fabrica.Response, err error) {
	if err != nil {
		responses.WriteError(r.Context(), c.Logger, w, err)
		return
	}
	responses.WriteRaw(w, resp.StatusCode, resp.ContentType, resp.Body)
}

// ListParts relays the factory part listing with its filters.
func (c *FabricaController) ListParts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := "/api/repuestos"
		query := url.Values{}
		for _, key := range []string{"categoryId", "brandId"} {
			if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
				query.Set(key, v)
			}
		}
		if len(query) > 0 {
			path += "?" + query.Encode()
		}
		resp, err := c.Client.Get(r.Context(), path)
		c.relay(w, r, resp, err)
	}
}

// SearchParts relays the factory search, forwarding the legacy term aliases.
func (c *FabricaController) SearchParts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := validators.FirstQuery(r, "q", "nombre", "descripcion", "especificaciones")
		path := "/api/repuestos/busqueda?nombre=" + url.QueryEscape(term)
		resp, err := c.Client.Get(r.Context(), path)
		c.relay(w, r, resp, err)
	}
}

// GetPart relays a factory part by id.
func (c *FabricaController) GetPart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		resp, err := c.Client.Get(r.Context(), "/api/repuestos/"+url.PathEscape(id))
		c.relay(w, r, resp, err)
	}
}

// Login checks the credentials shape locally, then relays them to the
// factory login endpoint.
func (c *FabricaController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload fabricaLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeValidation, "Email y contraseña son obligatorios"))
			return
		}
		resp, err := c.Client.Post(r.Context(), "/api/auth/login", payload)
		c.relay(w, r, resp, err)
	}
}

// CreateOrder relays a checkout payload to the factory.
func (c *FabricaController) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		resp, err := c.Client.Post(r.Context(), "/api/pedidos", payload)
		c.relay(w, r, resp, err)
	}
}

// ListOrdersByUser relays the factory order history of a user.
func (c *FabricaController) ListOrdersByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(chi.URLParam(r, "userId"))
		resp, err := c.Client.Get(r.Context(), "/api/pedidos/usuario/"+url.PathEscape(userID))
		c.relay(w, r, resp, err)
	}
}

// GetOrder relays a factory order by id.
func (c *FabricaController) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		resp, err := c.Client.Get(r.Context(), "/api/pedidos/"+url.PathEscape(orderID))
		c.relay(w, r, resp, err)
	}
}
