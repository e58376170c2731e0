package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"

	PaymentMethodUPI PaymentMethod = "upi" // proof-of-payment screenshot required
	PaymentMethodCOD PaymentMethod = "cod"
)

// ParseOrderStatus accepts any of the known statuses, case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodUPI, PaymentMethodCOD:
		return PaymentMethod(s), true
	}
	return "", false
}

// GuestContact is attached to orders placed without an account.
type GuestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID               string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID           *string         `gorm:"type:varchar(128);index" json:"user_id"` // nil for guest orders
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"delivery_fee"`
	FastDelivery     bool            `json:"fast_delivery"`
	Total            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	ShippingAddress  Address         `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod    PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentProof     []byte          `json:"-"`
	PaymentProofType string          `json:"payment_proof_type,omitempty"`
	GuestInfo        *GuestContact   `gorm:"serializer:json" json:"guest_info,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
}

// ItemsTotal is Σ(unit price × quantity) over the order lines.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"type:varchar(36);index;not null" json:"order_id"`
	ProductID   string          `gorm:"type:varchar(36);not null" json:"product_id"`
	ProductName string          `json:"product_name"`
	Image       string          `json:"image"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
