package agents

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/orders"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

const statusInstructions = `You are the order status specialist for a restaurant chatbot.
Extract the order number from the user's message.
Respond ONLY with JSON in this exact shape: {"order_id": 0}
"order_id" is 0 when the user did not provide one.`

type statusQuery struct {
	OrderID uint `json:"order_id"`
}

var orderNumberRef = regexp.MustCompile(`(?:#|\border\s+)\s*(\d+)`)

// StatusAgent answers order status queries
type StatusAgent struct {
	*BaseAgent
	manager *orders.Manager
}

// NewStatusAgent creates the status specialist
func NewStatusAgent(provider llm.Provider, limiter *ratelimit.Limiter, manager *orders.Manager) *StatusAgent {
	return &StatusAgent{
		BaseAgent: NewBaseAgent("StatusAgent", provider, limiter),
		manager:   manager,
	}
}

// Handle implements the Specialist interface
func (a *StatusAgent) Handle(ctx context.Context, conv *models.ConversationContext, message string) (string, error) {
	orderID := a.resolveOrderID(ctx, conv, message)
	if orderID == 0 {
		return "Could you share your order number? It looks like #123.", nil
	}

	snapshot, err := a.manager.OrderStatus(orderID)
	if err == orders.ErrOrderNotFound {
		return fmt.Sprintf("Order #%d not found.", orderID), nil
	}
	if err != nil {
		return "", err
	}

	conv.OrderID = orderID
	return formatOrderSnapshot(snapshot), nil
}

// resolveOrderID finds the order the user means: an explicit number in the
// message first, then the conversation's last order, then an extraction call.
func (a *StatusAgent) resolveOrderID(ctx context.Context, conv *models.ConversationContext, message string) uint {
	if m := orderNumberRef.FindStringSubmatch(strings.ToLower(message)); m != nil {
		if id, err := strconv.ParseUint(m[1], 10, 32); err == nil && id > 0 {
			return uint(id)
		}
	}
	if conv.OrderID != 0 {
		return conv.OrderID
	}

	var query statusQuery
	if err := a.extract(ctx, statusInstructions, message, &query); err != nil {
		return 0
	}
	return query.OrderID
}

func formatOrderSnapshot(s *orders.OrderSnapshot) string {
	lines := []string{
		fmt.Sprintf("Order #%d Status: %s", s.OrderID, s.Status),
		fmt.Sprintf("Outlet: %s (Outlet #%d)", s.OutletName, s.OutletID),
		fmt.Sprintf("Customer: %s", s.CustomerName),
	}
	if s.CustomerPhone != "" {
		lines = append(lines, fmt.Sprintf("Phone: %s", s.CustomerPhone))
	}
	lines = append(lines, fmt.Sprintf("Fulfillment: %s", s.FulfillmentType))
	if s.FulfillmentType == models.FulfillmentDelivery && s.CustomerAddress != "" {
		lines = append(lines, fmt.Sprintf("Delivery Address: %s", s.CustomerAddress))
	}

	lines = append(lines, "", "Items:")
	for _, item := range s.Items {
		lines = append(lines, fmt.Sprintf("  - %s (%s) x%d @ $%s = $%s",
			item.Name, item.Category, item.Quantity,
			item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2)))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Total Amount: $%s", s.TotalAmount.StringFixed(2)),
		fmt.Sprintf("Created: %s", s.CreatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Last Updated: %s", s.UpdatedAt.Format("2006-01-02 15:04:05")),
	)
	return strings.Join(lines, "\n")
}
