package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// SuccessTag marks a confirmed order commit. Callers must treat a reply as a
// successful order only when it carries this tag; everything else defaults to
// non-success.
const SuccessTag = "SUCCESS:"

// ErrOrderNotFound is returned when a referenced order does not exist
var ErrOrderNotFound = errors.New("order not found")

// RejectionError is a user-correctable validation failure. The reason is
// surfaced verbatim to the customer; nothing was written to the store.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(format string, args ...interface{}) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}

// TransitionError reports an illegal order status transition
type TransitionError struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order #%d cannot move from %s to %s", e.OrderID, e.From, e.To)
}

// Manager validates and commits orders against live availability and pricing.
// Every order is written as one atomic unit: either the order row and all of
// its item rows become visible together, or none do.
type Manager struct {
	db *gorm.DB
}

// NewManager creates an order manager over an injected database handle
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderRequest carries everything needed to place an order. The total
// is never part of the request; it is always computed server-side.
type CreateOrderRequest struct {
	OutletID        uint               `json:"outlet_id"`
	FulfillmentType string             `json:"fulfillment_type"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Items           []OrderItemRequest `json:"items"`
}

// ItemEcho confirms one committed order line back to the caller
type ItemEcho struct {
	MenuItemID uint
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// CreateOrderResult describes a successfully committed order
type CreateOrderResult struct {
	OrderID         uint
	OutletName      string
	FulfillmentType models.FulfillmentType
	CustomerName    string
	TotalAmount     decimal.Decimal
	Items           []ItemEcho
}

// Confirmation renders the result with the SUCCESS tag. Only replies carrying
// this tag may ever be treated as a confirmed order; any other shape defaults
// to non-success, which keeps an unreliable language-driven caller from
// inventing confirmations.
func (r *CreateOrderResult) Confirmation() string {
	summaries := make([]string, len(r.Items))
	for i, item := range r.Items {
		summaries[i] = fmt.Sprintf("%dx item #%d", item.Quantity, item.MenuItemID)
	}
	return fmt.Sprintf(
		SuccessTag+" Order #%d created successfully for %s.\n"+
			"Customer: %s\n"+
			"Type: %s\n"+
			"Items: %s\n"+
			"Total: $%s",
		r.OrderID, r.OutletName, r.CustomerName, r.FulfillmentType,
		strings.Join(summaries, ", "), r.TotalAmount.StringFixed(2),
	)
}

// CreateOrder validates the request fail-fast (first violation wins) and, only
// once every item checks out, snapshots unit prices, computes the total, and
// inserts the order with its items in one transaction. A failure at any point
// rolls back completely; there are no partial writes.
func (m *Manager) CreateOrder(req CreateOrderRequest) (*CreateOrderResult, error) {
	if req.OutletID == 0 {
		return nil, reject("outlet_id is required")
	}
	var outlet models.Outlet
	err := m.db.Where("id = ?", req.OutletID).First(&outlet).Error
	if gorm.IsRecordNotFoundError(err) || (err == nil && !outlet.IsActive) {
		return nil, reject("outlet #%d not found or inactive", req.OutletID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load outlet #%d: %w", req.OutletID, err)
	}
	fulfillment, ok := models.ParseFulfillmentType(strings.ToUpper(strings.TrimSpace(req.FulfillmentType)))
	if !ok {
		return nil, reject("fulfillment_type must be PICKUP or DELIVERY")
	}
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, reject("customer_name is required")
	}
	customerPhone := strings.TrimSpace(req.CustomerPhone)
	customerAddress := strings.TrimSpace(req.CustomerAddress)
	if fulfillment == models.FulfillmentDelivery && customerAddress == "" {
		return nil, reject("customer_address is required for DELIVERY orders")
	}
	if len(req.Items) == 0 {
		return nil, reject("at least one item is required")
	}

	tx := m.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", tx.Error)
	}

	result, err := m.createOrderTx(tx, req, outlet, fulfillment, customerName, customerPhone, customerAddress)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return result, nil
}

// createOrderTx runs the read-validate-write sequence inside one transaction
func (m *Manager) createOrderTx(tx *gorm.DB, req CreateOrderRequest, outlet models.Outlet,
	fulfillment models.FulfillmentType, name, phone, address string) (*CreateOrderResult, error) {

	// Validate every line before writing anything. No item is substituted or
	// dropped; the first offending item fails the whole order by name.
	echoes := make([]ItemEcho, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, reject("quantity must be greater than zero for item #%d", item.MenuItemID)
		}

		var row struct {
			ID          uint
			Name        string
			BasePrice   decimal.Decimal
			IsAvailable bool
		}
		err := tx.Table("menu_items").
			Select("menu_items.id AS id, menu_items.name AS name, "+
				"menu_items.base_price AS base_price, oma.is_available AS is_available").
			Joins("INNER JOIN outlet_menu_availability oma ON oma.menu_item_id = menu_items.id").
			Where("menu_items.id = ? AND oma.outlet_id = ? AND menu_items.is_active = ?",
				item.MenuItemID, req.OutletID, true).
			Scan(&row).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, reject("menu item #%d not found or not available at this outlet", item.MenuItemID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up menu item #%d: %w", item.MenuItemID, err)
		}
		if !row.IsAvailable {
			return nil, reject("menu item #%d (%s) is currently unavailable", item.MenuItemID, row.Name)
		}

		lineTotal := row.BasePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		echoes = append(echoes, ItemEcho{
			MenuItemID: row.ID,
			Name:       row.Name,
			Quantity:   item.Quantity,
			UnitPrice:  row.BasePrice,
			LineTotal:  lineTotal,
		})
	}

	now := time.Now().UTC()
	order := models.Order{
		OutletID:        req.OutletID,
		Status:          models.OrderStatusPending,
		FulfillmentType: fulfillment,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: address,
		TotalAmount:     total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, echo := range echoes {
		line := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: echo.MenuItemID,
			Quantity:   echo.Quantity,
			UnitPrice:  echo.UnitPrice,
			LineTotal:  echo.LineTotal,
		}
		if err := tx.Create(&line).Error; err != nil {
			return nil, fmt.Errorf("failed to insert order item #%d: %w", echo.MenuItemID, err)
		}
	}

	return &CreateOrderResult{
		OrderID:         order.ID,
		OutletName:      outlet.Name,
		FulfillmentType: fulfillment,
		CustomerName:    name,
		TotalAmount:     total,
		Items:           echoes,
	}, nil
}

// StatusUpdate reports the outcome of UpdateOrderStatus
type StatusUpdate struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
	Changed bool
}

// UpdateOrderStatus moves an order to a new status. Setting the status it
// already has is a no-op that reports Changed=false and does not touch
// updated_at. Transitions must follow the fulfillment sequence one step at a
// time, with cancellation allowed from any non-terminal state; anything else
// is a TransitionError.
func (m *Manager) UpdateOrderStatus(orderID uint, next models.OrderStatus) (*StatusUpdate, error) {
	if _, ok := models.ParseOrderStatus(string(next)); !ok {
		return nil, reject("unknown order status %q", string(next))
	}

	var order models.Order
	err := m.db.Where("id = ?", orderID).First(&order).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order #%d: %w", orderID, err)
	}

	if order.Status == next {
		return &StatusUpdate{OrderID: orderID, From: order.Status, To: next, Changed: false}, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, &TransitionError{OrderID: orderID, From: order.Status, To: next}
	}

	err = m.db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update order #%d status: %w", orderID, err)
	}
	return &StatusUpdate{OrderID: orderID, From: order.Status, To: next, Changed: true}, nil
}

// OrderItemSnapshot is one order line with its snapshotted pricing plus the
// item's display name and category
type OrderItemSnapshot struct {
	MenuItemID uint
	Name       string
	Category   string
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// OrderSnapshot is the full state of an order as committed
type OrderSnapshot struct {
	OrderID         uint
	OutletID        uint
	OutletName      string
	Status          models.OrderStatus
	FulfillmentType models.FulfillmentType
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	TotalAmount     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItemSnapshot
}

// OrderStatus returns the order header and every line with its snapshotted
// unit price and line total. Prices are read from the order_items rows, never
// re-joined to the live menu price.
func (m *Manager) OrderStatus(orderID uint) (*OrderSnapshot, error) {
	var order models.Order
	err := m.db.Where("id = ?", orderID).First(&order).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order #%d: %w", orderID, err)
	}

	var outlet models.Outlet
	if err := m.db.Where("id = ?", order.OutletID).First(&outlet).Error; err != nil {
		return nil, fmt.Errorf("failed to load outlet #%d for order #%d: %w", order.OutletID, orderID, err)
	}

	var items []OrderItemSnapshot
	err = m.db.Table("order_items").
		Select("order_items.menu_item_id AS menu_item_id, menu_items.name AS name, "+
			"menu_items.category AS category, order_items.quantity AS quantity, "+
			"order_items.unit_price AS unit_price, order_items.line_total AS line_total").
		Joins("INNER JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load items for order #%d: %w", orderID, err)
	}

	return &OrderSnapshot{
		OrderID:         order.ID,
		OutletID:        order.OutletID,
		OutletName:      outlet.Name,
		Status:          order.Status,
		FulfillmentType: order.FulfillmentType,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		TotalAmount:     order.TotalAmount,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}, nil
}

// sweepStatuses are the states the batch sweeper advances one step forward
var sweepStatuses = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusConfirmed,
	models.OrderStatusInKitchen,
	models.OrderStatusReady,
}

// AdvanceAll moves every in-flight order exactly one step along the
// fulfillment sequence. COMPLETED and CANCELLED orders are untouched, so
// re-running the sweep is safe. Returns the number of orders advanced.
func (m *Manager) AdvanceAll() (int64, error) {
	res := m.db.Exec(`
		UPDATE orders SET status = CASE status
			WHEN 'PENDING'    THEN 'CONFIRMED'
			WHEN 'CONFIRMED'  THEN 'IN_KITCHEN'
			WHEN 'IN_KITCHEN' THEN 'READY'
			WHEN 'READY'      THEN 'COMPLETED'
			ELSE status
		END,
		updated_at = ?
		WHERE status IN (?, ?, ?, ?)`,
		time.Now().UTC(),
		sweepStatuses[0], sweepStatuses[1], sweepStatuses[2], sweepStatuses[3],
	)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance orders: %w", res.Error)
	}
	return res.RowsAffected, nil
}
