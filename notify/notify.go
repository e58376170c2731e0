// Package notify delivers order, lead and verification-code emails.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=mock_notify . Gateway

// Gateway sends one message per call and reports the provider's failure
// text as the error. Nothing is retried.
type Gateway interface {
	SendCustomerConfirmation(ctx context.Context, n OrderNotice) error
	SendOperatorAlert(ctx context.Context, n OrderNotice) error
	SendLeadAlert(ctx context.Context, n LeadNotice) error
	SendVerificationCode(ctx context.Context, n CodeNotice) error
}

type OrderLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type OrderNotice struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Total         decimal.Decimal
	PaymentMethod string
	// DeliveryDetails is "<delivery window> | <address>".
	DeliveryDetails string
	Lines           []OrderLine
}

// FirstName is the first word of the customer's name.
func (n OrderNotice) FirstName() string {
	fields := strings.Fields(n.CustomerName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// DeliveryDate is the part of DeliveryDetails before the first "|".
func (n OrderNotice) DeliveryDate() string {
	head, _, _ := strings.Cut(n.DeliveryDetails, "|")
	if head = strings.TrimSpace(head); head != "" {
		return head
	}
	return "TBD"
}

func (n OrderNotice) ItemsText() string {
	lines := make([]string, 0, len(n.Lines))
	for _, l := range n.Lines {
		sub := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines = append(lines, fmt.Sprintf("%s x %d - %s", l.Name, l.Quantity, Rupees(sub)))
	}
	return strings.Join(lines, "\n")
}

type LeadNotice struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Source  string
	At      time.Time
}

type CodeNotice struct {
	Email     string
	Name      string
	Code      string
	ExpiresIn time.Duration
}

func Rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

var ist = time.FixedZone("IST", 5*60*60+30*60)

// Timestamp renders t the way the shop's operators read it.
func Timestamp(t time.Time) string {
	return t.In(ist).Format("2 January 2006, 3:04:05 PM")
}
