package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type EmailJSConfig struct {
	Endpoint         string
	ServiceID        string
	PublicKey        string
	PrivateKey       string
	CustomerTemplate string
	OperatorTemplate string
	LeadTemplate     string
	CodeTemplate     string
	OperatorEmail    string
}

// EmailJS sends templated emails through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

var _ Gateway = (*EmailJS)(nil)

func NewEmailJS(cfg EmailJSConfig) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	return &EmailJS{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) send(ctx context.Context, templateID string, params map[string]string) error {
	if templateID == "" {
		return fmt.Errorf("emailjs: template not configured")
	}
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(text))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("emailjs: %s", msg)
	}
	return nil
}

func (e *EmailJS) SendCustomerConfirmation(ctx context.Context, n OrderNotice) error {
	return e.send(ctx, e.cfg.CustomerTemplate, map[string]string{
		"to_name":       n.FirstName(),
		"to_email":      n.CustomerEmail,
		"order_id":      n.OrderID,
		"order_total":   Rupees(n.Total),
		"delivery_date": n.DeliveryDate(),
		"order_items":   n.ItemsText(),
		"message":       "Thank you for your order! We will deliver it as per the scheduled date.",
	})
}

func (e *EmailJS) SendOperatorAlert(ctx context.Context, n OrderNotice) error {
	return e.send(ctx, e.cfg.OperatorTemplate, map[string]string{
		"to_email":         e.cfg.OperatorEmail,
		"order_id":         n.OrderID,
		"customer_name":    n.CustomerName,
		"customer_phone":   n.CustomerPhone,
		"customer_email":   n.CustomerEmail,
		"order_total":      Rupees(n.Total),
		"payment_method":   n.PaymentMethod,
		"delivery_details": n.DeliveryDetails,
		"order_items":      n.ItemsText(),
		"message":          "New Order Received! Check Admin Panel for details.",
	})
}

func (e *EmailJS) SendLeadAlert(ctx context.Context, n LeadNotice) error {
	return e.send(ctx, e.cfg.LeadTemplate, map[string]string{
		"to_email":        e.cfg.OperatorEmail,
		"user_name":       n.Name,
		"user_mobile":     "+91 " + n.Phone,
		"user_email":      n.Email,
		"message":         n.Message,
		"submission_time": Timestamp(n.At),
		"source":          n.Source,
	})
}

func (e *EmailJS) SendVerificationCode(ctx context.Context, n CodeNotice) error {
	return e.send(ctx, e.cfg.CodeTemplate, map[string]string{
		"to_name":    n.Name,
		"to_email":   n.Email,
		"code":       n.Code,
		"expires_in": n.ExpiresIn.String(),
	})
}
