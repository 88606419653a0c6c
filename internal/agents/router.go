package agents

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// RefusalReply is the fixed out-of-domain fallback, emitted verbatim when a
// message is clearly unrelated to outlets, menus, orders, or order status.
const RefusalReply = "I can only help with restaurant menu, orders, and order status. " +
	"How can I assist you with that?"

// ClarifyReply is the fixed question asked when a message is plausibly
// in-domain but matches none of the specialist heuristics.
const ClarifyReply = "I can help you find outlets, browse a menu, place an order, " +
	"or check an order's status. Which of those would you like?"

// Router classifies each message and forwards it to exactly one specialist.
// It never chains specialists within a turn and never answers domain
// questions itself, with two exceptions: the fixed refusal/clarification
// replies, and an unambiguous "is the outlet open" query it can resolve
// directly against the catalog.
type Router struct {
	specialists map[Intent]Specialist
	catalog     *catalog.Store
}

// NewRouter creates a router over the given catalog store
func NewRouter(cat *catalog.Store) *Router {
	return &Router{
		specialists: make(map[Intent]Specialist),
		catalog:     cat,
	}
}

// Register binds a specialist to one of the four dispatchable intents.
// Unknown intent tags are rejected at this boundary rather than silently
// falling through at dispatch time.
func (r *Router) Register(intent Intent, specialist Specialist) error {
	switch intent {
	case IntentOutlet, IntentMenu, IntentOrdering, IntentStatus:
	default:
		return fmt.Errorf("cannot register specialist for unknown intent %q", intent)
	}
	if specialist == nil {
		return fmt.Errorf("nil specialist for intent %q", intent)
	}
	r.specialists[intent] = specialist
	return nil
}

var (
	statusPhrases = []string{"where is my order", "where's my order", "track my order", "order status", "status of"}
	statusWords   = []string{"status", "track", "tracking"}

	orderingWords   = []string{"order", "buy", "purchase", "cart"}
	orderingPhrases = []string{"i want", "i'd like", "can i get", "get me", "for delivery", "for pickup"}

	outletWords = []string{"outlet", "outlets", "location", "locations", "branch", "branches", "city", "zip", "hours", "open", "opens", "closed", "closes", "address", "near", "nearby"}
	menuWords   = []string{"menu", "menus", "dish", "dishes", "vegetarian", "veg", "vegan", "spicy", "price", "prices", "cheap", "browse", "cuisine", "item", "items", "appetizer", "appetizers", "dessert", "desserts"}
	domainWords = []string{"food", "restaurant", "restaurants", "eat", "meal", "lunch", "dinner", "breakfast", "hungry", "delivery", "deliver", "pickup", "outlet", "outlets", "menu", "order", "orders", "dish", "dishes"}
	hoursWords  = []string{"open", "opens", "opened", "closed", "close", "closes", "closing", "hours"}

	quantityItem = regexp.MustCompile(`\b\d+\s*x?\s+[a-z]`)
	orderIDRef   = regexp.MustCompile(`#\s*(\d+)`)
)

// Classify maps a raw message to exactly one intent. Heuristics run in
// priority order and the first match wins: explicit status/track language,
// then ordering language, then outlet/location language, then menu language.
// Anything else is refused when it carries no restaurant vocabulary at all,
// and clarified otherwise.
func (r *Router) Classify(message string) Intent {
	lower := strings.ToLower(message)
	words := tokenize(lower)

	mentionsOrder := hasWord(words, "order", "orders")

	if hasPhrase(lower, statusPhrases...) ||
		(hasWord(words, statusWords...) && (mentionsOrder || orderIDRef.MatchString(lower))) ||
		(mentionsOrder && orderIDRef.MatchString(lower)) {
		return IntentStatus
	}

	if hasWord(words, orderingWords...) ||
		(quantityItem.MatchString(lower) && hasPhrase(lower, orderingPhrases...)) {
		return IntentOrdering
	}

	if hasWord(words, outletWords...) || hasPhrase(lower, "zip code", "near me") {
		return IntentOutlet
	}

	if hasWord(words, menuWords...) {
		return IntentMenu
	}

	if hasWord(words, domainWords...) {
		return IntentClarify
	}
	return IntentRefuse
}

// Route handles one turn: classify, then forward the verbatim message and the
// shared conversation context to the selected specialist.
func (r *Router) Route(ctx context.Context, conv *models.ConversationContext, message string) (string, error) {
	intent := r.Classify(message)
	conv.LastIntent = string(intent)

	switch intent {
	case IntentRefuse:
		return RefusalReply, nil
	case IntentClarify:
		return ClarifyReply, nil
	}

	// Unambiguous hours queries are answered directly when an outlet is
	// already resolvable, without delegating.
	if intent == IntentOutlet {
		if reply, ok, err := r.answerHoursQuery(conv, message); err != nil {
			return "", err
		} else if ok {
			return reply, nil
		}
	}

	specialist, ok := r.specialists[intent]
	if !ok {
		return "", fmt.Errorf("no specialist registered for intent %q", intent)
	}
	return specialist.Handle(ctx, conv, message)
}

// answerHoursQuery short-circuits "is outlet X open" questions. It only fires
// when the message is an hours query and an outlet id is resolvable from the
// message or the conversation context; otherwise the outlet specialist runs.
func (r *Router) answerHoursQuery(conv *models.ConversationContext, message string) (string, bool, error) {
	lower := strings.ToLower(message)
	if !hasWord(tokenize(lower), hoursWords...) {
		return "", false, nil
	}

	outletID := conv.OutletID
	if m := orderIDRef.FindStringSubmatch(lower); m != nil {
		if id, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			outletID = uint(id)
		}
	}
	if outletID == 0 {
		return "", false, nil
	}

	check, err := r.catalog.IsOutletOpen(outletID, "")
	if err == catalog.ErrOutletNotFound {
		return fmt.Sprintf("Outlet #%d not found or is inactive.", outletID), true, nil
	}
	if err != nil {
		return "", false, err
	}
	conv.OutletID = outletID
	return FormatOpenCheck(check), true, nil
}

func tokenize(lower string) map[string]bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

func hasWord(words map[string]bool, candidates ...string) bool {
	for _, c := range candidates {
		if words[c] {
			return true
		}
	}
	return false
}

func hasPhrase(lower string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
