package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
	"github.com/agenciasgt/distribuidores-backend/pkg/metrics"
)

const fromDisplayName = "Distribuidores - Agencias Vehículos"

// OrderLine is one purchased item as rendered in the confirmation email.
type OrderLine struct {
	PartTitle string
	Qty       int
	UnitPrice string
	LineTotal string
}

// Sender delivers transactional mail. Delivery problems are logged and
// swallowed: a failed email never fails the order flow that triggered it.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, customerName *string, order *models.OrderHeader, items []OrderLine)
	SendOrderStatusUpdate(ctx context.Context, toEmail string, customerName *string, orderNumber, newStatus string, comment, trackingNumber *string, etaDays *int)
}

type sender struct {
	cfg     config.MailConfig
	logg    *logger.Logger
	metrics *metrics.APIMetrics
	send    func(cfg config.MailConfig, to, subject, htmlBody string) error
}

// NewSender builds the SMTP sender. With mail disabled in config, every
// message is simulated to the log instead.
func NewSender(cfg config.MailConfig, logg *logger.Logger, apiMetrics *metrics.APIMetrics) (Sender, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &sender{cfg: cfg, logg: logg, metrics: apiMetrics, send: sendSMTP}, nil
}

func (s *sender) SendOrderConfirmation(ctx context.Context, toEmail string, customerName *string, order *models.OrderHeader, items []OrderLine) {
	subject := "Confirmación de pedido #" + order.OrderNumber
	s.deliver(ctx, toEmail, subject, BuildOrderEmailHTML(order, items, customerName))
}

func (s *sender) SendOrderStatusUpdate(ctx context.Context, toEmail string, customerName *string, orderNumber, newStatus string, comment, trackingNumber *string, etaDays *int) {
	subject := "Actualización de pedido #" + orderNumber
	body := BuildStatusUpdateEmailHTML(orderNumber, FormatStatusLabel(newStatus), customerName, comment, trackingNumber, etaDays)
	s.deliver(ctx, toEmail, subject, body)
}

func (s *sender) deliver(ctx context.Context, to, subject, htmlBody string) {
	if !s.cfg.Enabled() {
		s.simulate(ctx, to, subject, htmlBody)
		return
	}
	if err := s.send(s.cfg, to, subject, htmlBody); err != nil {
		s.logg.Error(ctx, "sending mail", err)
		s.metrics.IncMail("failed")
		s.simulate(ctx, to, subject, htmlBody)
		return
	}
	s.metrics.IncMail("sent")
	s.logg.Info(s.logg.WithField(ctx, "mail_to", to), "mail sent")
}

// simulate logs the message instead of delivering it, same console block the
// factory backend prints when SMTP is unconfigured.
func (s *sender) simulate(ctx context.Context, to, subject, htmlBody string) {
	var block strings.Builder
	block.WriteString("---------- CORREO SIMULADO ----------\n")
	block.WriteString("Para: " + to + "\n")
	block.WriteString("Asunto: " + subject + "\n")
	block.WriteString("Contenido (HTML):\n")
	block.WriteString(htmlBody + "\n")
	block.WriteString("------------------------------------")
	s.logg.Info(s.logg.WithField(ctx, "mail_simulated", block.String()), "mail simulated")
	s.metrics.IncMail("simulated")
}

func sendSMTP(cfg config.MailConfig, to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)

	var msg strings.Builder
	msg.WriteString("From: " + fromDisplayName + " <" + cfg.User + ">\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return smtp.SendMail(cfg.Addr(), auth, cfg.User, []string{to}, []byte(msg.String()))
}
