package controllers

import (
	"net/http"
	"time"

	"github.com/agenciasgt/distribuidores-backend/api/responses"
	"github.com/agenciasgt/distribuidores-backend/api/validators"
	"github.com/agenciasgt/distribuidores-backend/internal/mail"
	"github.com/agenciasgt/distribuidores-backend/internal/orders"
	"github.com/agenciasgt/distribuidores-backend/internal/payments"
	"github.com/agenciasgt/distribuidores-backend/internal/users"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

type orderItemRequest struct {
	PartID int64 `json:"partId"`
	Qty    int   `json:"qty"`
}

type cardRequest struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth *int   `json:"expiryMonth"`
	ExpiryYear  *int   `json:"expiryYear"`
}

type createOrderRequest struct {
	UserID  int64              `json:"userId"`
	Items   []orderItemRequest `json:"items"`
	Payment *cardRequest       `json:"payment"`
}

type updateStatusRequest struct {
	UserID         int64   `json:"userId"`
	Status         string  `json:"status"`
	Comment        *string `json:"comment"`
	TrackingNumber *string `json:"trackingNumber"`
	EtaDays        *int    `json:"etaDays"`
}

func orderHeaderDTO(o *models.OrderHeader) map[string]any {
	return map[string]any{
		"orderId":       o.OrderID,
		"orderNumber":   o.OrderNumber,
		"userId":        o.UserID,
		"orderType":     o.OrderType,
		"subtotal":      o.Subtotal,
		"shippingTotal": o.ShippingTotal,
		"total":         o.Total,
		"createdAt":     o.CreatedAt,
	}
}

func orderListDTO(headers []models.OrderHeader) []map[string]any {
	out := make([]map[string]any, 0, len(headers))
	for i := range headers {
		out = append(out, orderHeaderDTO(&headers[i]))
	}
	return out
}

// OrdersController groups the checkout and tracking endpoints with the
// services the mail side channel needs.
type OrdersController struct {
	Orders orders.Service
	Users  users.Service
	Mail   mail.Sender
	Logger *logger.Logger
}

// Create runs the full checkout: optional card validation, stock
// reservation and persistence, then a best effort confirmation email when a
// payment was supplied.
func (c *OrdersController) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if payload.UserID <= 0 || len(payload.Items) == 0 {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeValidation, "userId e items son obligatorios"))
			return
		}

		if payload.Payment != nil {
			msg := payments.Validate(payments.Card{
				CardNumber:  payload.Payment.CardNumber,
				ExpiryMonth: payload.Payment.ExpiryMonth,
				ExpiryYear:  payload.Payment.ExpiryYear,
			}, time.Now().UTC())
			if msg != "" {
				responses.WriteError(r.Context(), c.Logger, w, pkgerrors.New(pkgerrors.CodeValidation, msg))
				return
			}
		}

		items := make([]orders.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, orders.ItemInput{PartID: item.PartID, Qty: item.Qty})
		}

		header, err := c.Orders.CreateOrder(r.Context(), payload.UserID, items)
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}

		if payload.Payment != nil {
			c.sendConfirmationMail(r, header)
		}

		responses.WriteJSON(w, http.StatusCreated, orderHeaderDTO(header))
	}
}

func (c *OrdersController) sendConfirmationMail(r *http.Request, header *models.OrderHeader) {
	if c.Mail == nil || c.Users == nil {
		return
	}
	user, err := c.Users.GetUser(r.Context(), header.UserID)
	if err != nil {
		c.Logger.Warn(r.Context(), "order confirmation mail skipped, user lookup failed")
		return
	}
	detail, err := c.Orders.GetOrderDetail(r.Context(), header.OrderID)
	if err != nil {
		c.Logger.Warn(r.Context(), "order confirmation mail skipped, detail lookup failed")
		return
	}
	lines := make([]mail.OrderLine, 0, len(detail.Items))
	for _, item := range detail.Items {
		lines = append(lines, mail.OrderLine{
			PartTitle: item.PartTitle,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.LineTotal.StringFixed(2),
		})
	}
	c.Mail.SendOrderConfirmation(r.Context(), user.Email, user.FullName, header, lines)
}

// ListByUser lists a user's orders newest first.
func (c *OrdersController) ListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		headers, err := c.Orders.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, orderListDTO(headers))
	}
}

// ListAll lists every order; the caller passes its own user id and must hold
// the ADMIN or EMPLOYEE role.
func (c *OrdersController) ListAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := validators.ParseQueryInt64(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if callerID == nil {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeValidation, "userId es obligatorio"))
			return
		}
		allowed, err := c.Users.HasRole(r.Context(), *callerID, models.RoleAdmin, models.RoleEmployee)
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if !allowed {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "Requiere rol ADMIN o EMPLOYEE"))
			return
		}
		headers, err := c.Orders.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, orderListDTO(headers))
	}
}

// UpdateStatus appends a status entry and emails the customer best effort.
func (c *OrdersController) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if payload.UserID <= 0 {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeValidation, "userId es obligatorio"))
			return
		}
		allowed, err := c.Users.HasRole(r.Context(), payload.UserID, models.RoleAdmin, models.RoleEmployee)
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		if !allowed {
			responses.WriteError(r.Context(), c.Logger, w,
				pkgerrors.New(pkgerrors.CodeForbidden, "Requiere rol ADMIN o EMPLOYEE"))
			return
		}

		entry, err := c.Orders.AppendStatus(r.Context(), orderID, orders.StatusInput{
			Status:          payload.Status,
			Comment:         payload.Comment,
			TrackingNumber:  payload.TrackingNumber,
			EtaDays:         payload.EtaDays,
			ChangedByUserID: payload.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}

		c.sendStatusMail(r, orderID, entry)

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         entry.Status,
			"trackingNumber": entry.TrackingNumber,
			"etaDays":        entry.EtaDays,
		})
	}
}

func (c *OrdersController) sendStatusMail(r *http.Request, orderID int64, entry *models.OrderStatusHistory) {
	if c.Mail == nil || c.Users == nil {
		return
	}
	header, err := c.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		return
	}
	user, err := c.Users.GetUser(r.Context(), header.UserID)
	if err != nil {
		c.Logger.Warn(r.Context(), "status mail skipped, user lookup failed")
		return
	}
	c.Mail.SendOrderStatusUpdate(r.Context(), user.Email, user.FullName,
		header.OrderNumber, entry.Status,
		entry.CommentText, entry.TrackingNumber, entry.EtaDays)
}

// GetDetail returns the header, priced lines and the latest status entry.
func (c *OrdersController) GetDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}
		detail, err := c.Orders.GetOrderDetail(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), c.Logger, w, err)
			return
		}

		items := make([]map[string]any, 0, len(detail.Items))
		for _, item := range detail.Items {
			items = append(items, map[string]any{
				"partId":    item.PartID,
				"partTitle": item.PartTitle,
				"qty":       item.Qty,
				"unitPrice": item.UnitPrice,
				"lineTotal": item.LineTotal,
			})
		}

		var status map[string]any
		if detail.Status != nil {
			status = map[string]any{
				"status":         detail.Status.Status,
				"comment":        detail.Status.CommentText,
				"trackingNumber": detail.Status.TrackingNumber,
				"etaDays":        detail.Status.EtaDays,
				"changedAt":      detail.Status.ChangedAt,
			}
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"order":  orderHeaderDTO(&detail.Order),
			"items":  items,
			"status": status,
		})
	}
}
