package model

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus converts a raw string to a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodUPI PaymentMethod = "upi"
	PaymentMethodCOD PaymentMethod = "cod"
)

// ParsePaymentMethod converts a raw string to a known method.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case PaymentMethodUPI, PaymentMethodCOD:
		return m, nil
	}
	return "", ErrInvalidPaymentMethod
}

// PaymentDetails carries the self-attested payment proof.
type PaymentDetails struct {
	UPIID    string `json:"upiId,omitempty"`
	ProofRef string `json:"screenshot,omitempty"`
}

// Order is a submitted checkout. Only Status changes after creation.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	IdentityKey    IdentityKey     `json:"identityKey,omitempty"`
	SessionID      string          `json:"sessionId,omitempty"`
	CustomerName   string          `json:"customerName"`
	Email          string          `json:"email,omitempty"`
	Items          Cart            `json:"items"`
	Total          float64         `json:"total"`
	Shipping       float64         `json:"shipping"`
	Status         OrderStatus     `json:"status"`
	PlacedAt       time.Time       `json:"placedAt"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	PaymentDetails *PaymentDetails `json:"paymentDetails,omitempty"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	o.Items = o.Items.Clone()
	if o.PaymentDetails != nil {
		details := *o.PaymentDetails
		o.PaymentDetails = &details
	}
	return o
}

// LedgerSummary aggregates the order ledger for the admin dashboard.
type LedgerSummary struct {
	OrderCount   int     `json:"orderCount"`
	ActiveOrders int     `json:"activeOrders"`
	Revenue      float64 `json:"revenue"`
	TodayRevenue float64 `json:"todayRevenue"`
	Customers    int     `json:"customers"`
}

// CustomerStats is one row of the customer directory.
type CustomerStats struct {
	IdentityKey IdentityKey `json:"identityKey,omitempty"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone,omitempty"`
	Orders      int         `json:"orders"`
	Spent       float64     `json:"spent"`
	LastOrderAt time.Time   `json:"lastOrderAt"`
}
