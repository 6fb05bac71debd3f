// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/falconprime/backend/internal/config"
	"github.com/falconprime/backend/internal/models"
)

// NotificationService sends the customer-facing order emails. The
// recipient is whatever address the customer used at checkout.
type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

// One shared layout for all order emails: brand header, greeting,
// status-specific body, sign-off.
const orderEmailLayout = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Falcon Prime – Actualización de pedido</title>
</head>
<body style="margin:0; padding:0; font-family:'Segoe UI', system-ui, sans-serif; background:#f5f5f5; color:#1a1a1a;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background:#f5f5f5; padding:32px 16px;">
    <tr>
      <td align="center">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:560px; background:#fff; border-radius:12px; overflow:hidden;">
          <tr>
            <td style="padding:28px 32px 20px; border-bottom:1px solid #eee;">
              <p style="margin:0; font-size:20px; font-weight:700; letter-spacing:0.04em;">Falcon Prime</p>
            </td>
          </tr>
          <tr>
            <td style="padding:28px 32px 32px;">
              <p style="margin:0 0 16px; font-size:16px; line-height:1.6;">Hola {{.CustomerName}},</p>
              <p style="margin:0; font-size:16px; line-height:1.6;">{{.Body}}</p>
              <p style="margin:24px 0 0; font-size:15px; line-height:1.6;">Gracias por confiar en nosotros.</p>
              <p style="margin:8px 0 0; font-size:15px; font-weight:600;">Falcon Prime</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

var orderEmailTemplate = template.Must(template.New("order_email").Parse(orderEmailLayout))

type orderEmailData struct {
	CustomerName string
	Body         string
}

// SendOrderPreparingEmail notifies the customer the order is being prepared.
func (s *NotificationService) SendOrderPreparingEmail(order *models.Order) error {
	shortID := shortOrderID(order)
	subject := "Tu pedido está en preparación | Falcon Prime"
	body := fmt.Sprintf("Tu pedido #%s está en preparación. Te avisaremos cuando sea despachado.", shortID)
	return s.sendOrderEmail(order, subject, body)
}

// SendOrderShippedEmail notifies the customer the order was dispatched.
func (s *NotificationService) SendOrderShippedEmail(order *models.Order) error {
	shortID := shortOrderID(order)
	subject := "Tu pedido fue despachado | Falcon Prime"
	body := fmt.Sprintf("Tu pedido #%s fue despachado y está en camino.", shortID)
	return s.sendOrderEmail(order, subject, body)
}

// SendOrderDeliveredEmail notifies the customer the order arrived.
func (s *NotificationService) SendOrderDeliveredEmail(order *models.Order) error {
	shortID := shortOrderID(order)
	subject := "Tu pedido fue entregado | Falcon Prime"
	body := fmt.Sprintf("Tu pedido #%s fue entregado. Esperamos que disfrutes tu compra.", shortID)
	return s.sendOrderEmail(order, subject, body)
}

func shortOrderID(order *models.Order) string {
	id := order.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *NotificationService) sendOrderEmail(order *models.Order, subject, body string) error {
	var rendered bytes.Buffer
	err := orderEmailTemplate.Execute(&rendered, orderEmailData{
		CustomerName: order.CustomerName,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(order.CustomerEmail, subject, rendered.String())
}

func (s *NotificationService) sendEmail(to, subject, htmlBody string) error {
	if s.config.Email.SMTPUsername == "" {
		return fmt.Errorf("SMTP is not configured (SMTP_USERNAME is empty)")
	}

	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
