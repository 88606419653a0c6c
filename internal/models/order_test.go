package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("IN_KITCHEN")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusInKitchen, status)

	_, ok = ParseOrderStatus("in_kitchen")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("SHIPPED")
	assert.False(t, ok)
}

func TestOrderStatusNext(t *testing.T) {
	next, ok := OrderStatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, OrderStatusConfirmed, next)

	_, ok = OrderStatusCompleted.Next()
	assert.False(t, ok)

	_, ok = OrderStatusCancelled.Next()
	assert.False(t, ok)
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"confirmed to in_kitchen", OrderStatusConfirmed, OrderStatusInKitchen, true},
		{"in_kitchen to ready", OrderStatusInKitchen, OrderStatusReady, true},
		{"ready to completed", OrderStatusReady, OrderStatusCompleted, true},
		{"pending skips to in_kitchen", OrderStatusPending, OrderStatusInKitchen, false},
		{"pending skips to completed", OrderStatusPending, OrderStatusCompleted, false},
		{"confirmed back to pending", OrderStatusConfirmed, OrderStatusPending, false},
		{"cancel from pending", OrderStatusPending, OrderStatusCancelled, true},
		{"cancel from ready", OrderStatusReady, OrderStatusCancelled, true},
		{"cancel from completed", OrderStatusCompleted, OrderStatusCancelled, false},
		{"completed is terminal", OrderStatusCompleted, OrderStatusConfirmed, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestFulfillmentTypeParsing(t *testing.T) {
	ft, ok := ParseFulfillmentType("DELIVERY")
	assert.True(t, ok)
	assert.Equal(t, FulfillmentDelivery, ft)

	_, ok = ParseFulfillmentType("DRIVE_THRU")
	assert.False(t, ok)
}

func TestOutletHelpers(t *testing.T) {
	outlet := Outlet{SupportsPickup: true, SupportsDelivery: true}
	assert.Equal(t, []string{"Pickup", "Delivery"}, outlet.Services())
	assert.False(t, outlet.HoursConfigured())

	outlet.OpenTime = "08:00"
	assert.False(t, outlet.HoursConfigured())
	outlet.CloseTime = "22:00"
	assert.True(t, outlet.HoursConfigured())
}

func TestMenuItemViewTags(t *testing.T) {
	view := MenuItemView{IsVeg: true, IsSpicy: true}
	assert.Equal(t, []string{"Vegetarian", "Spicy"}, view.Tags())

	plain := MenuItemView{}
	assert.Empty(t, plain.Tags())
}
