package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/monitoring"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/orders"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

const orderingInstructions = `You are the ordering specialist for a restaurant chatbot.
Extract the order details from the user's message.
Respond ONLY with JSON in this exact shape, using zero values for anything absent:
{"outlet_id": 0, "fulfillment_type": "", "customer_name": "", "customer_phone": "",
 "customer_address": "", "items": [{"menu_item_id": 0, "quantity": 0}]}
"fulfillment_type" is "PICKUP" or "DELIVERY" when stated, else empty.
Never invent menu item ids; include only items the user identified by number.`

type orderDraft struct {
	OutletID        uint                      `json:"outlet_id"`
	FulfillmentType string                    `json:"fulfillment_type"`
	CustomerName    string                    `json:"customer_name"`
	CustomerPhone   string                    `json:"customer_phone"`
	CustomerAddress string                    `json:"customer_address"`
	Items           []orders.OrderItemRequest `json:"items"`
}

// OrderingAgent places orders and confirms them. Its one hard rule: a reply is
// a confirmed order only when the transaction manager tagged it SUCCESS;
// anything else, including replies that merely mention a problem, is not.
type OrderingAgent struct {
	*BaseAgent
	manager *orders.Manager
	monitor *monitoring.Monitor
}

// NewOrderingAgent creates the ordering specialist
func NewOrderingAgent(provider llm.Provider, limiter *ratelimit.Limiter,
	manager *orders.Manager, monitor *monitoring.Monitor) *OrderingAgent {
	return &OrderingAgent{
		BaseAgent: NewBaseAgent("OrderingAgent", provider, limiter),
		manager:   manager,
		monitor:   monitor,
	}
}

// Handle implements the Specialist interface
func (a *OrderingAgent) Handle(ctx context.Context, conv *models.ConversationContext, message string) (string, error) {
	var draft orderDraft
	if err := a.extract(ctx, orderingInstructions, message, &draft); err != nil {
		return "", fmt.Errorf("order extraction failed: %w", err)
	}

	if draft.OutletID == 0 {
		draft.OutletID = conv.OutletID
	}
	if draft.OutletID == 0 {
		return "Which outlet would you like to order from? You can search outlets by city or zip code first.", nil
	}
	if len(draft.Items) == 0 {
		return "What would you like to order? Please pick items from the menu by their item numbers.", nil
	}
	if strings.TrimSpace(draft.CustomerName) == "" || strings.TrimSpace(draft.CustomerPhone) == "" {
		return "I need a name and a phone number to place the order. What should I use?", nil
	}

	result, err := a.manager.CreateOrder(orders.CreateOrderRequest{
		OutletID:        draft.OutletID,
		FulfillmentType: draft.FulfillmentType,
		CustomerName:    draft.CustomerName,
		CustomerPhone:   draft.CustomerPhone,
		CustomerAddress: draft.CustomerAddress,
		Items:           draft.Items,
	})

	var rejection *orders.RejectionError
	if errors.As(err, &rejection) {
		return fmt.Sprintf("ERROR: %s\nPlease provide the missing or corrected details.", rejection.Reason), nil
	}
	if err != nil {
		return "", err
	}

	reply := result.Confirmation()
	if strings.HasPrefix(reply, orders.SuccessTag) {
		conv.OutletID = draft.OutletID
		conv.OrderID = result.OrderID
		if a.monitor != nil {
			a.monitor.RecordOrderPlaced()
		}
	}
	return reply, nil
}
