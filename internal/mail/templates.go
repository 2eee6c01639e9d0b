package mail

import (
	"strconv"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
)

// FormatStatusLabel maps an order status code to its customer-facing Spanish
// label. Unknown codes pass through unchanged.
func FormatStatusLabel(status string) string {
	if status == "" {
		return status
	}
	switch strings.ToUpper(status) {
	case models.OrderStatusInitiated:
		return "Iniciado"
	case models.OrderStatusConfirmed:
		return "Confirmado"
	case models.OrderStatusInPreparation, models.OrderStatusPreparing:
		return "En preparación"
	case models.OrderStatusShipped:
		return "Enviado"
	case models.OrderStatusDelivered:
		return "Entregado"
	case models.OrderStatusCancelled:
		return "Cancelado"
	default:
		return status
	}
}

// BuildOrderEmailHTML renders the purchase confirmation body.
func BuildOrderEmailHTML(order *models.OrderHeader, items []OrderLine, customerName *string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8'></head><body style='font-family: sans-serif;'>")
	sb.WriteString("<h2>Gracias por tu compra</h2>")
	sb.WriteString("<p>Hola")
	if customerName != nil && strings.TrimSpace(*customerName) != "" {
		sb.WriteString(" ")
		sb.WriteString(Escape(*customerName))
	}
	sb.WriteString(",</p>")
	sb.WriteString("<p>Tu pedido ha sido registrado correctamente.</p>")
	sb.WriteString("<p><strong>Número de pedido:</strong> ")
	sb.WriteString(Escape(order.OrderNumber))
	sb.WriteString("</p>")
	sb.WriteString("<table border='1' cellpadding='8' style='border-collapse: collapse;'>")
	sb.WriteString("<thead><tr><th>Producto</th><th>Cantidad</th><th>Precio unit.</th><th>Total</th></tr></thead><tbody>")
	for _, item := range items {
		sb.WriteString("<tr><td>")
		sb.WriteString(Escape(item.PartTitle))
		sb.WriteString("</td><td>")
		sb.WriteString(strconv.Itoa(item.Qty))
		sb.WriteString("</td><td>")
		sb.WriteString(item.UnitPrice)
		sb.WriteString("</td><td>")
		sb.WriteString(item.LineTotal)
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</tbody></table>")
	sb.WriteString("<p><strong>Subtotal:</strong> " + order.Subtotal.StringFixed(2) + " " + order.Currency + "</p>")
	sb.WriteString("<p><strong>Envío:</strong> " + order.ShippingTotal.StringFixed(2) + " " + order.Currency + "</p>")
	sb.WriteString("<p><strong>Total:</strong> " + order.Total.StringFixed(2) + " " + order.Currency + "</p>")
	sb.WriteString("<p>Puedes ver el detalle y seguimiento en <strong>Mis Pedidos</strong> en la aplicación.</p>")
	sb.WriteString("<p>— Distribuidores Agencias Vehículos</p></body></html>")
	return sb.String()
}

// BuildStatusUpdateEmailHTML renders the status-change notification body.
func BuildStatusUpdateEmailHTML(orderNumber, statusLabel string, customerName, comment, trackingNumber *string, etaDays *int) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8'></head><body style='font-family: sans-serif;'>")
	sb.WriteString("<h2>Actualización de tu pedido</h2>")
	sb.WriteString("<p>Hola")
	if customerName != nil && strings.TrimSpace(*customerName) != "" {
		sb.WriteString(" ")
		sb.WriteString(Escape(*customerName))
	}
	sb.WriteString(",</p>")
	sb.WriteString("<p>El estado de tu pedido <strong>")
	sb.WriteString(Escape(orderNumber))
	sb.WriteString("</strong> ha cambiado.</p>")
	sb.WriteString("<p><strong>Nuevo estado:</strong> ")
	sb.WriteString(Escape(statusLabel))
	sb.WriteString("</p>")
	if comment != nil && strings.TrimSpace(*comment) != "" {
		sb.WriteString("<p><strong>Comentario:</strong> " + Escape(*comment) + "</p>")
	}
	if trackingNumber != nil && strings.TrimSpace(*trackingNumber) != "" {
		sb.WriteString("<p><strong>Número de seguimiento:</strong> " + Escape(*trackingNumber) + "</p>")
	}
	if etaDays != nil && *etaDays > 0 {
		sb.WriteString("<p><strong>Tiempo estimado de entrega:</strong> " + strconv.Itoa(*etaDays) + " días</p>")
	}
	sb.WriteString("<p>Puedes ver el detalle en <strong>Mis Pedidos</strong> en la aplicación.</p>")
	sb.WriteString("<p>— Distribuidores Agencias Vehículos</p></body></html>")
	return sb.String()
}

// Escape sanitizes user text for the HTML bodies.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
