package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTP sends plain HTML emails through an SMTP relay.
type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	operator string
	send     func(...*gomail.Message) error
}

var _ Gateway = (*SMTP)(nil)

func NewSMTP(host string, port int, user, pass, from, operator string) *SMTP {
	if from == "" {
		from = user
	}
	s := &SMTP{
		dialer:   gomail.NewDialer(host, port, user, pass),
		from:     from,
		operator: operator,
	}
	s.send = s.dialer.DialAndSend
	return s
}

func (s *SMTP) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("smtp: no recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func itemsHTML(n OrderNotice) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, line := range strings.Split(n.ItemsText(), "\n") {
		if line == "" {
			continue
		}
		b.WriteString("<li>" + html.EscapeString(line) + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func (s *SMTP) SendCustomerConfirmation(ctx context.Context, n OrderNotice) error {
	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Hi %s,</p>
		<p>Your order <b>%s</b> has been placed. Total: <b>%s</b>.</p>
		<p>%s</p>
		%s
		<p>We will deliver it as per the scheduled date.</p>
	`, html.EscapeString(n.FirstName()), html.EscapeString(n.OrderID), Rupees(n.Total),
		html.EscapeString(n.DeliveryDate()), itemsHTML(n))
	return s.deliver(ctx, n.CustomerEmail, "Order confirmed - Giftology", body)
}

func (s *SMTP) SendOperatorAlert(ctx context.Context, n OrderNotice) error {
	body := fmt.Sprintf(`
		<h2>New Order Received</h2>
		<p>Order: %s</p>
		<p>Customer: %s (%s, %s)</p>
		<p>Total: %s, payment: %s</p>
		<p>Delivery: %s</p>
		%s
	`, html.EscapeString(n.OrderID), html.EscapeString(n.CustomerName), html.EscapeString(n.CustomerPhone),
		html.EscapeString(n.CustomerEmail), Rupees(n.Total), html.EscapeString(n.PaymentMethod),
		html.EscapeString(n.DeliveryDetails), itemsHTML(n))
	return s.deliver(ctx, s.operator, "New order "+n.OrderID, body)
}

func (s *SMTP) SendLeadAlert(ctx context.Context, n LeadNotice) error {
	body := fmt.Sprintf(`
		<h2>New enquiry</h2>
		<p>Name: %s</p>
		<p>Mobile: +91 %s</p>
		<p>Email: %s</p>
		<p>Message: %s</p>
		<p>Source: %s, at %s</p>
	`, html.EscapeString(n.Name), html.EscapeString(n.Phone), html.EscapeString(n.Email),
		html.EscapeString(n.Message), html.EscapeString(n.Source), Timestamp(n.At))
	return s.deliver(ctx, s.operator, "New enquiry from "+n.Name, body)
}

func (s *SMTP) SendVerificationCode(ctx context.Context, n CodeNotice) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is <b>%s</b>. It expires in %s.</p>
	`, html.EscapeString(n.Name), n.Code, n.ExpiresIn)
	return s.deliver(ctx, n.Email, "Your Giftology verification code", body)
}
