package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Identificador inválido").WithDetails(map[string]any{"param": key})
	}
	return value, nil
}

// ParseQueryInt64 reads an optional numeric query parameter. A blank value
// returns nil.
func ParseQueryInt64(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El parámetro debe ser numérico").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// QueryBool reads a boolean-ish query flag. Anything but "true"/"1" is false.
func QueryBool(r *http.Request, key string) bool {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
	return raw == "true" || raw == "1"
}

// FirstQuery returns the first non-blank value among the named parameters.
func FirstQuery(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(r.URL.Query().Get(key)); value != "" {
			return value
		}
	}
	return ""
}
