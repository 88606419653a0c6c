package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// stubSpecialist records the message it was handed and answers with a canned
// reply.
type stubSpecialist struct {
	name     string
	reply    string
	received string
	calls    int
}

func (s *stubSpecialist) Name() string { return s.name }

func (s *stubSpecialist) Handle(_ context.Context, _ *models.ConversationContext, message string) (string, error) {
	s.calls++
	s.received = message
	return s.reply, nil
}

func TestClassify(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		message string
		want    Intent
	}{
		{"Show me the outlets in Seattle", IntentOutlet},
		{"any locations near me?", IntentOutlet},
		{"what's your address in the 98101 zip?", IntentOutlet},
		{"is the downtown branch open right now?", IntentOutlet},

		{"What's on the menu?", IntentMenu},
		{"do you have vegetarian dishes", IntentMenu},
		{"show me spicy appetizers under 10 dollars", IntentMenu},

		{"I want to order 2 chicken tikka masala", IntentOrdering},
		{"can I buy a veggie burger", IntentOrdering},

		{"what's the status of order #12", IntentStatus},
		{"where is my order", IntentStatus},
		{"track #12", IntentStatus},
		{"my order #7 hasn't arrived", IntentStatus},

		{"I'm hungry", IntentClarify},
		{"something for dinner", IntentClarify},

		{"what's the weather like today", IntentRefuse},
		{"tell me a joke", IntentRefuse},
		{"help me with my taxes", IntentRefuse},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			require.Equal(t, tt.want, r.Classify(tt.message))
		})
	}
}

func TestClassifyAvoidsSubstringFalsePositives(t *testing.T) {
	r := NewRouter(nil)

	// "weather" contains "eat" and "heater" contains "eat"; word-boundary
	// matching must not treat them as domain vocabulary.
	require.Equal(t, IntentRefuse, r.Classify("the weather is nice"))
	require.Equal(t, IntentRefuse, r.Classify("my heater broke"))
}

func TestRouteRefusalIsVerbatimAndSkipsSpecialists(t *testing.T) {
	r := NewRouter(nil)
	menu := &stubSpecialist{name: "menu", reply: "menu reply"}
	require.NoError(t, r.Register(IntentMenu, menu))

	conv := newConv()
	reply, err := r.Route(context.Background(), conv, "what's the weather like today")
	require.NoError(t, err)
	require.Equal(t, RefusalReply, reply)
	require.Zero(t, menu.calls)
	require.Equal(t, string(IntentRefuse), conv.LastIntent)
}

func TestRouteClarify(t *testing.T) {
	r := NewRouter(nil)

	conv := newConv()
	reply, err := r.Route(context.Background(), conv, "I'm hungry")
	require.NoError(t, err)
	require.Equal(t, ClarifyReply, reply)
	require.Equal(t, string(IntentClarify), conv.LastIntent)
}

func TestRouteForwardsVerbatimMessage(t *testing.T) {
	r := NewRouter(nil)
	menu := &stubSpecialist{name: "menu", reply: "here is the menu"}
	require.NoError(t, r.Register(IntentMenu, menu))

	message := "Show me the MENU with all its Original Casing?!"
	reply, err := r.Route(context.Background(), newConv(), message)
	require.NoError(t, err)
	require.Equal(t, "here is the menu", reply)
	require.Equal(t, 1, menu.calls)
	require.Equal(t, message, menu.received)
}

func TestRouteDispatchesExactlyOneSpecialist(t *testing.T) {
	r := NewRouter(nil)
	ordering := &stubSpecialist{name: "ordering", reply: "ordering reply"}
	status := &stubSpecialist{name: "status", reply: "status reply"}
	require.NoError(t, r.Register(IntentOrdering, ordering))
	require.NoError(t, r.Register(IntentStatus, status))

	reply, err := r.Route(context.Background(), newConv(), "status of order #5")
	require.NoError(t, err)
	require.Equal(t, "status reply", reply)
	require.Equal(t, 1, status.calls)
	require.Zero(t, ordering.calls)
}

func TestRouteUnregisteredSpecialistFails(t *testing.T) {
	r := NewRouter(nil)

	_, err := r.Route(context.Background(), newConv(), "show me the menu")
	require.Error(t, err)
}

func TestRegisterRejectsUnknownIntent(t *testing.T) {
	r := NewRouter(nil)

	err := r.Register(Intent("weather"), &stubSpecialist{name: "weather"})
	require.Error(t, err)

	err = r.Register(IntentClarify, &stubSpecialist{name: "clarify"})
	require.Error(t, err)

	err = r.Register(IntentMenu, nil)
	require.Error(t, err)
}

func TestRouteHoursShortCircuit(t *testing.T) {
	db := newTestDB(t)
	r := NewRouter(catalog.NewStore(db))

	// No outlet specialist registered: a reply proves the router answered the
	// hours query itself.
	conv := newConv()
	reply, err := r.Route(context.Background(), conv, "is outlet #1 open?")
	require.NoError(t, err)
	require.Contains(t, reply, "Outlet #1 (Downtown Diner) is")
	require.Contains(t, reply, "Operating hours: 08:00 - 22:00")
	require.Equal(t, uint(1), conv.OutletID)
}

func TestRouteHoursShortCircuitUsesConversationOutlet(t *testing.T) {
	db := newTestDB(t)
	r := NewRouter(catalog.NewStore(db))

	conv := newConv()
	conv.OutletID = 1
	reply, err := r.Route(context.Background(), conv, "are you open right now?")
	require.NoError(t, err)
	require.Contains(t, reply, "Outlet #1 (Downtown Diner) is")
}

func TestRouteHoursShortCircuitUnknownOutlet(t *testing.T) {
	db := newTestDB(t)
	r := NewRouter(catalog.NewStore(db))

	reply, err := r.Route(context.Background(), newConv(), "is outlet #999 open?")
	require.NoError(t, err)
	require.Equal(t, "Outlet #999 not found or is inactive.", reply)
}

func TestRouteHoursWithoutOutletFallsThrough(t *testing.T) {
	db := newTestDB(t)
	r := NewRouter(catalog.NewStore(db))
	outlet := &stubSpecialist{name: "outlet", reply: "which outlet?"}
	require.NoError(t, r.Register(IntentOutlet, outlet))

	// No outlet id in the message or the conversation: the specialist runs
	reply, err := r.Route(context.Background(), newConv(), "when do you open?")
	require.NoError(t, err)
	require.Equal(t, "which outlet?", reply)
	require.Equal(t, 1, outlet.calls)
}
