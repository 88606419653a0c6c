package agents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/database"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/orders"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

// MockLLM is a mock language engine for testing
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

// extractionReturns wires the mock to answer every extraction call with the
// given JSON payload.
func extractionReturns(m *MockLLM, payload string) {
	m.On("Complete", mock.Anything, mock.Anything).Return(payload, nil)
}

func newTestLimiter() *ratelimit.Limiter {
	return ratelimit.New(1000, time.Minute)
}

// newTestDB builds the catalog and order fixtures shared by the specialist
// tests: two Seattle outlets, one with hours configured, and a small menu.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	outlets := []models.Outlet{
		{ID: 1, Name: "Downtown Diner", Address: "100 Pike St", City: "Seattle", State: "WA",
			ZipCode: "98101", Timezone: "UTC", OpenTime: "08:00", CloseTime: "22:00",
			SupportsDelivery: true, SupportsPickup: true, IsActive: true},
		{ID: 2, Name: "Harbor Grill", Address: "2 Bay Ave", City: "Tacoma", State: "WA",
			ZipCode: "98402", Timezone: "UTC",
			SupportsPickup: true, IsActive: true},
	}
	for i := range outlets {
		require.NoError(t, db.Create(&outlets[i]).Error)
	}

	items := []models.MenuItem{
		{ID: 10, Name: "Chicken Tikka Masala", Category: "mains",
			BasePrice: decimal.RequireFromString("10.99"), IsSpicy: true, IsActive: true},
		{ID: 11, Name: "Garlic Naan", Category: "breads",
			BasePrice: decimal.RequireFromString("3.49"), IsVeg: true, IsActive: true},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}

	availability := []models.OutletMenuAvailability{
		{OutletID: 1, MenuItemID: 10, IsAvailable: true},
		{OutletID: 1, MenuItemID: 11, IsAvailable: true},
	}
	for i := range availability {
		require.NoError(t, db.Create(&availability[i]).Error)
	}

	return db
}

func newConv() *models.ConversationContext {
	return &models.ConversationContext{ConversationID: "test-conversation"}
}

func TestOutletAgentSearchByCity(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"city": "Seattle"}`)

	agent := NewOutletAgent(engine, newTestLimiter(), catalog.NewStore(db))
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv, "show me outlets in Seattle")
	require.NoError(t, err)
	require.Contains(t, reply, "#1 Downtown Diner")
	require.Contains(t, reply, "Pickup, Delivery")
	require.Contains(t, reply, "08:00 - 22:00")

	// A single match becomes the conversation's active outlet
	require.Equal(t, uint(1), conv.OutletID)
}

func TestOutletAgentMissingFilter(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{}`)

	agent := NewOutletAgent(engine, newTestLimiter(), catalog.NewStore(db))

	reply, err := agent.Handle(context.Background(), newConv(), "show me some outlets")
	require.NoError(t, err)
	require.Equal(t, "Please provide either a city or a zip code to search for outlets.", reply)
}

func TestOutletAgentNoMatches(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"city": "Boise"}`)

	agent := NewOutletAgent(engine, newTestLimiter(), catalog.NewStore(db))

	reply, err := agent.Handle(context.Background(), newConv(), "outlets in Boise?")
	require.NoError(t, err)
	require.Equal(t, "No outlets found matching your search criteria.", reply)
}

func TestOutletAgentHoursQuery(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"outlet_id": 1, "time": "09:30", "wants_hours": true}`)

	agent := NewOutletAgent(engine, newTestLimiter(), catalog.NewStore(db))

	reply, err := agent.Handle(context.Background(), newConv(), "is outlet #1 open at 9:30am?")
	require.NoError(t, err)
	require.Contains(t, reply, "Outlet #1 (Downtown Diner) is OPEN.")
	require.Contains(t, reply, "Operating hours: 08:00 - 22:00")
}

func TestOutletAgentHoursNotConfigured(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"outlet_id": 2, "wants_hours": true}`)

	agent := NewOutletAgent(engine, newTestLimiter(), catalog.NewStore(db))

	reply, err := agent.Handle(context.Background(), newConv(), "is outlet #2 open?")
	require.NoError(t, err)
	require.Equal(t, "Outlet #2 (Harbor Grill) does not have operating hours set.", reply)
}

func TestMenuAgentFullMenu(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"outlet_id": 1}`)

	agent := NewMenuAgent(engine, newTestLimiter(), catalog.NewStore(db))
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv, "show me the menu for outlet #1")
	require.NoError(t, err)
	require.Contains(t, reply, "Menu for Downtown Diner (Outlet #1):")
	require.Contains(t, reply, "MAINS:")
	require.Contains(t, reply, "BREADS:")
	require.Contains(t, reply, "#10 Chicken Tikka Masala [Spicy] - $10.99")

	require.Equal(t, uint(1), conv.OutletID)
	require.ElementsMatch(t, []uint{10, 11}, conv.CandidateMenuItemIDs)
}

func TestMenuAgentFiltered(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"outlet_id": 1, "is_veg": true}`)

	agent := NewMenuAgent(engine, newTestLimiter(), catalog.NewStore(db))
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv, "vegetarian options at outlet #1?")
	require.NoError(t, err)
	require.Contains(t, reply, "Filtered menu for Downtown Diner (Outlet #1):")
	require.Contains(t, reply, "Garlic Naan")
	require.NotContains(t, reply, "Chicken Tikka Masala")
}

func TestMenuAgentNeedsOutlet(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{}`)

	agent := NewMenuAgent(engine, newTestLimiter(), catalog.NewStore(db))

	reply, err := agent.Handle(context.Background(), newConv(), "what's on the menu?")
	require.NoError(t, err)
	require.Contains(t, reply, "Which outlet would you like the menu for?")
}

func TestMenuAgentUsesConversationOutlet(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{}`)

	agent := NewMenuAgent(engine, newTestLimiter(), catalog.NewStore(db))
	conv := newConv()
	conv.OutletID = 1

	reply, err := agent.Handle(context.Background(), conv, "what's on the menu?")
	require.NoError(t, err)
	require.Contains(t, reply, "Menu for Downtown Diner (Outlet #1):")
}

func TestOrderingAgentPlacesOrder(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{
		"outlet_id": 1, "fulfillment_type": "PICKUP",
		"customer_name": "Priya", "customer_phone": "555-0101",
		"items": [{"menu_item_id": 10, "quantity": 2}]
	}`)

	agent := NewOrderingAgent(engine, newTestLimiter(), orders.NewManager(db), nil)
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv,
		"2 chicken tikka masala for pickup, name Priya, phone 555-0101")
	require.NoError(t, err)
	require.Contains(t, reply, orders.SuccessTag)
	require.Contains(t, reply, "Total: $21.98")
	require.NotZero(t, conv.OrderID)
	require.Equal(t, uint(1), conv.OutletID)
}

func TestOrderingAgentSurfacesRejection(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{
		"outlet_id": 1, "fulfillment_type": "DELIVERY",
		"customer_name": "Priya", "customer_phone": "555-0101",
		"items": [{"menu_item_id": 10, "quantity": 1}]
	}`)

	agent := NewOrderingAgent(engine, newTestLimiter(), orders.NewManager(db), nil)
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv, "deliver one tikka masala please")
	require.NoError(t, err)
	require.Contains(t, reply, "ERROR: customer_address is required for DELIVERY orders")
	require.NotContains(t, reply, orders.SuccessTag)
	require.Zero(t, conv.OrderID)
}

func TestOrderingAgentAsksForMissingDetails(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"outlet_id": 1, "items": [{"menu_item_id": 10, "quantity": 1}]}`)

	agent := NewOrderingAgent(engine, newTestLimiter(), orders.NewManager(db), nil)

	reply, err := agent.Handle(context.Background(), newConv(), "order a tikka masala")
	require.NoError(t, err)
	require.Contains(t, reply, "I need a name and a phone number")
}

func TestStatusAgentResolvesOrderNumberFromMessage(t *testing.T) {
	db := newTestDB(t)
	manager := orders.NewManager(db)
	result, err := manager.CreateOrder(orders.CreateOrderRequest{
		OutletID: 1, FulfillmentType: "PICKUP",
		CustomerName: "Priya", CustomerPhone: "555-0101",
		Items: []orders.OrderItemRequest{{MenuItemID: 10, Quantity: 1}},
	})
	require.NoError(t, err)

	// The explicit number wins without any extraction call
	engine := new(MockLLM)
	agent := NewStatusAgent(engine, newTestLimiter(), manager)
	conv := newConv()

	reply, err := agent.Handle(context.Background(), conv,
		fmt.Sprintf("what's the status of order #%d", result.OrderID))
	require.NoError(t, err)
	require.Contains(t, reply, "Status: PENDING")
	require.Contains(t, reply, "Chicken Tikka Masala")
	require.Equal(t, result.OrderID, conv.OrderID)
	engine.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestStatusAgentFallsBackToConversationOrder(t *testing.T) {
	db := newTestDB(t)
	manager := orders.NewManager(db)
	result, err := manager.CreateOrder(orders.CreateOrderRequest{
		OutletID: 1, FulfillmentType: "PICKUP",
		CustomerName: "Priya", CustomerPhone: "555-0101",
		Items: []orders.OrderItemRequest{{MenuItemID: 11, Quantity: 2}},
	})
	require.NoError(t, err)

	engine := new(MockLLM)
	agent := NewStatusAgent(engine, newTestLimiter(), manager)
	conv := newConv()
	conv.OrderID = result.OrderID

	reply, err := agent.Handle(context.Background(), conv, "any update on my food?")
	require.NoError(t, err)
	require.Contains(t, reply, "Status: PENDING")
	require.Contains(t, reply, "Garlic Naan")
}

func TestStatusAgentUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)

	agent := NewStatusAgent(engine, newTestLimiter(), orders.NewManager(db))

	reply, err := agent.Handle(context.Background(), newConv(), "status of order #424242")
	require.NoError(t, err)
	require.Equal(t, "Order #424242 not found.", reply)
}

func TestStatusAgentAsksForOrderNumber(t *testing.T) {
	db := newTestDB(t)
	engine := new(MockLLM)
	extractionReturns(engine, `{"order_id": 0}`)

	agent := NewStatusAgent(engine, newTestLimiter(), orders.NewManager(db))

	reply, err := agent.Handle(context.Background(), newConv(), "where is my food")
	require.NoError(t, err)
	require.Equal(t, "Could you share your order number? It looks like #123.", reply)
}
