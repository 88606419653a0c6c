package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

const menuInstructions = `You are the menu specialist for a restaurant chatbot.
Extract the browsing parameters from the user's message.
Respond ONLY with JSON in this exact shape; omit keys the user did not constrain:
{"outlet_id": 0, "category": "", "is_veg": null, "is_spicy": null, "min_price": null, "max_price": null}
"outlet_id" is 0 unless the user names an outlet number.`

type menuQuery struct {
	OutletID uint     `json:"outlet_id"`
	Category string   `json:"category"`
	IsVeg    *bool    `json:"is_veg"`
	IsSpicy  *bool    `json:"is_spicy"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

func (q *menuQuery) filtered() bool {
	return strings.TrimSpace(q.Category) != "" || q.IsVeg != nil || q.IsSpicy != nil ||
		q.MinPrice != nil || q.MaxPrice != nil
}

// MenuAgent handles menu browsing, searching, and filtering
type MenuAgent struct {
	*BaseAgent
	catalog *catalog.Store
}

// NewMenuAgent creates the menu specialist
func NewMenuAgent(provider llm.Provider, limiter *ratelimit.Limiter, cat *catalog.Store) *MenuAgent {
	return &MenuAgent{
		BaseAgent: NewBaseAgent("MenuAgent", provider, limiter),
		catalog:   cat,
	}
}

// Handle implements the Specialist interface
func (a *MenuAgent) Handle(ctx context.Context, conv *models.ConversationContext, message string) (string, error) {
	var query menuQuery
	if err := a.extract(ctx, menuInstructions, message, &query); err != nil {
		return "", fmt.Errorf("menu extraction failed: %w", err)
	}

	outletID := query.OutletID
	if outletID == 0 {
		outletID = conv.OutletID
	}
	if outletID == 0 {
		return "Which outlet would you like the menu for? You can search outlets by city or zip code first.", nil
	}

	if !query.filtered() {
		outletName, views, err := a.catalog.OutletMenu(outletID)
		if err == catalog.ErrOutletNotFound {
			return fmt.Sprintf("Outlet #%d not found or is inactive.", outletID), nil
		}
		if err != nil {
			return "", err
		}
		if len(views) == 0 {
			return fmt.Sprintf("No menu items found for outlet #%d (%s).", outletID, outletName), nil
		}

		a.remember(conv, outletID, views)
		header := fmt.Sprintf("Menu for %s (Outlet #%d):", outletName, outletID)
		return formatMenu(header, views, true), nil
	}

	filter := catalog.MenuFilter{Category: query.Category}
	filter.IsVeg = query.IsVeg
	filter.IsSpicy = query.IsSpicy
	if query.MinPrice != nil {
		min := decimal.NewFromFloat(*query.MinPrice)
		filter.MinPrice = &min
	}
	if query.MaxPrice != nil {
		max := decimal.NewFromFloat(*query.MaxPrice)
		filter.MaxPrice = &max
	}

	outletName, views, err := a.catalog.FilterMenu(outletID, filter)
	if err == catalog.ErrOutletNotFound {
		return fmt.Sprintf("Outlet #%d not found or is inactive.", outletID), nil
	}
	if err != nil {
		return "", err
	}
	if len(views) == 0 {
		return fmt.Sprintf("No menu items found for outlet #%d matching the filters.", outletID), nil
	}

	a.remember(conv, outletID, views)
	header := fmt.Sprintf("Filtered menu for %s (Outlet #%d):", outletName, outletID)
	return formatMenu(header, views, false), nil
}

// remember records the outlet and the shown items as ordering candidates
func (a *MenuAgent) remember(conv *models.ConversationContext, outletID uint, views []models.MenuItemView) {
	conv.OutletID = outletID
	conv.CandidateMenuItemIDs = conv.CandidateMenuItemIDs[:0]
	for _, v := range views {
		conv.CandidateMenuItemIDs = append(conv.CandidateMenuItemIDs, v.ID)
	}
}

// formatMenu renders menu items grouped by category. When showAvailability is
// set, each line carries its availability annotation (the full-menu view shows
// temporarily unavailable items too; the filtered view only lists available
// ones).
func formatMenu(header string, views []models.MenuItemView, showAvailability bool) string {
	lines := []string{header}
	currentCategory := ""

	for _, v := range views {
		if v.Category != currentCategory {
			currentCategory = v.Category
			lines = append(lines, fmt.Sprintf("\n%s:",
				strings.ToUpper(strings.ReplaceAll(v.Category, "_", " "))))
		}

		tagStr := ""
		if tags := v.Tags(); len(tags) > 0 {
			tagStr = fmt.Sprintf(" [%s]", strings.Join(tags, ", "))
		}

		descStr := ""
		if v.Description != "" {
			descStr = " - " + v.Description
		}

		if showAvailability {
			availability := "Available"
			if !v.IsAvailable {
				availability = "Currently Unavailable"
			}
			if v.AvailableFromTime != "" && v.AvailableToTime != "" {
				availability += fmt.Sprintf(" (%s - %s)", v.AvailableFromTime, v.AvailableToTime)
			}
			lines = append(lines, fmt.Sprintf("  #%d %s%s - $%s | %s%s",
				v.ID, v.Name, tagStr, v.BasePrice.StringFixed(2), availability, descStr))
		} else {
			lines = append(lines, fmt.Sprintf("  #%d %s%s - $%s%s",
				v.ID, v.Name, tagStr, v.BasePrice.StringFixed(2), descStr))
		}
	}
	return strings.Join(lines, "\n")
}
