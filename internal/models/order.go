package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusInKitchen OrderStatus = "IN_KITCHEN"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// forward is the fixed progression an order moves through during fulfillment.
var forward = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusInKitchen,
	OrderStatusInKitchen: OrderStatusReady,
	OrderStatusReady:     OrderStatusCompleted,
}

// ParseOrderStatus validates a raw status string
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInKitchen,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Next returns the next status along the fulfillment sequence. The second
// return is false for terminal states.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// CanTransitionTo reports whether moving to next is a legal transition:
// one step forward along the fulfillment sequence, or cancellation from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return forward[s] == next
}

// FulfillmentType determines whether a customer address is mandatory
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "PICKUP"
	FulfillmentDelivery FulfillmentType = "DELIVERY"
)

// ParseFulfillmentType validates a raw fulfillment type string
func ParseFulfillmentType(raw string) (FulfillmentType, bool) {
	switch FulfillmentType(raw) {
	case FulfillmentPickup, FulfillmentDelivery:
		return FulfillmentType(raw), true
	}
	return "", false
}

// Order represents a committed customer order. TotalAmount is always computed
// server-side at commit time and equals the sum of the item line totals; it
// never changes afterward, status transitions included.
type Order struct {
	ID              uint            `gorm:"primary_key" json:"id"`
	OutletID        uint            `gorm:"not null" json:"outlet_id"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null" json:"status"`
	FulfillmentType FulfillmentType `gorm:"type:varchar(16);not null" json:"fulfillment_type"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `gorm:"foreignkey:OrderID" json:"items"`
}

// TableName sets the orders table name for gorm
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. UnitPrice is a snapshot taken at order
// time; it is never re-joined to the live menu item price, so historical
// orders keep their historical pricing.
type OrderItem struct {
	ID         uint            `gorm:"primary_key" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID uint            `gorm:"not null" json:"menu_item_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	LineTotal  decimal.Decimal `gorm:"type:numeric(10,2)" json:"line_total"`
}

// TableName sets the order_items table name for gorm
func (OrderItem) TableName() string {
	return "order_items"
}
