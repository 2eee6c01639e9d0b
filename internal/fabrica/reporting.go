package fabrica

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
)

const (
	defaultClientType  = "PARTICULAR"
	defaultEventSource = "distribuidores"
)

// EngagementEvent is a browse signal to forward to the factory's reporting
// endpoints. PartID is the local catalog id; the factory keys on PartNumber.
type EngagementEvent struct {
	PartID     *int64  `json:"partId"`
	PartNumber *string `json:"partNumber"`
	UserID     *int64  `json:"userId"`
	ClientType *string `json:"clientType"`
	Source     *string `json:"source"`
}

// Reporting forwards catalog engagement events to the factory.
type Reporting interface {
	ReportPartViewed(ctx context.Context, event EngagementEvent) error
	ReportAddedToCart(ctx context.Context, event EngagementEvent) error
}

type reporting struct {
	client  *Client
	catalog catalog.Service
}

// NewReporting wires the reporting forwarder.
func NewReporting(client *Client, catalogService catalog.Service) (Reporting, error) {
	if client == nil {
		return nil, fmt.Errorf("factory client required")
	}
	if catalogService == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &reporting{client: client, catalog: catalogService}, nil
}

func (r *reporting) ReportPartViewed(ctx context.Context, event EngagementEvent) error {
	return r.forward(ctx, "/api/reporteria/visto-detalle", event)
}

func (r *reporting) ReportAddedToCart(ctx context.Context, event EngagementEvent) error {
	return r.forward(ctx, "/api/reporteria/agregado-carrito", event)
}

func (r *reporting) forward(ctx context.Context, path string, event EngagementEvent) error {
	if event.PartID == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "partId es obligatorio")
	}

	// resolve the factory part number; a locally unknown part falls back to
	// whatever number the caller supplied
	partNumber := ""
	if event.PartNumber != nil {
		partNumber = strings.TrimSpace(*event.PartNumber)
	}
	if part, err := r.catalog.GetPart(ctx, *event.PartID); err == nil {
		partNumber = part.PartNumber
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return err
	}

	clientType := defaultClientType
	if event.ClientType != nil && strings.TrimSpace(*event.ClientType) != "" {
		clientType = strings.TrimSpace(*event.ClientType)
	}
	source := defaultEventSource
	if event.Source != nil && strings.TrimSpace(*event.Source) != "" {
		source = strings.TrimSpace(*event.Source)
	}

	payload := map[string]any{
		"partNumber": partNumber,
		"userId":     event.UserID,
		"clientType": clientType,
		"source":     source,
	}

	resp, err := r.client.Post(ctx, path, payload)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return pkgerrors.New(pkgerrors.CodeDependency, "No se pudo registrar en la fábrica").
			WithDetails(map[string]any{"upstreamStatus": resp.StatusCode})
	}
	return nil
}
