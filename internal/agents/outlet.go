package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

const outletInstructions = `You are the outlet specialist for a restaurant chatbot.
Extract the search parameters from the user's message.
Respond ONLY with JSON in this exact shape, using zero values for anything absent:
{"city": "", "zip_code": "", "outlet_id": 0, "time": "", "wants_hours": false}
"wants_hours" is true only when the user asks whether an outlet is open.
"time" is the queried time if the user names one, else empty.`

type outletQuery struct {
	City       string `json:"city"`
	ZipCode    string `json:"zip_code"`
	OutletID   uint   `json:"outlet_id"`
	Time       string `json:"time"`
	WantsHours bool   `json:"wants_hours"`
}

// OutletAgent handles outlet browsing, searching, and operating-hours queries
type OutletAgent struct {
	*BaseAgent
	catalog *catalog.Store
}

// NewOutletAgent creates the outlet specialist
func NewOutletAgent(provider llm.Provider, limiter *ratelimit.Limiter, cat *catalog.Store) *OutletAgent {
	return &OutletAgent{
		BaseAgent: NewBaseAgent("OutletAgent", provider, limiter),
		catalog:   cat,
	}
}

// Handle implements the Specialist interface
func (a *OutletAgent) Handle(ctx context.Context, conv *models.ConversationContext, message string) (string, error) {
	var query outletQuery
	if err := a.extract(ctx, outletInstructions, message, &query); err != nil {
		return "", fmt.Errorf("outlet extraction failed: %w", err)
	}

	if query.WantsHours {
		outletID := query.OutletID
		if outletID == 0 {
			outletID = conv.OutletID
		}
		if outletID != 0 {
			check, err := a.catalog.IsOutletOpen(outletID, query.Time)
			if err == catalog.ErrOutletNotFound {
				return fmt.Sprintf("Outlet #%d not found or is inactive.", outletID), nil
			}
			if err != nil {
				return "", err
			}
			conv.OutletID = outletID
			return FormatOpenCheck(check), nil
		}
	}

	outlets, err := a.catalog.FindOutlets(query.City, query.ZipCode)
	if err == catalog.ErrMissingFilter {
		return "Please provide either a city or a zip code to search for outlets.", nil
	}
	if err != nil {
		return "", err
	}
	if len(outlets) == 0 {
		return "No outlets found matching your search criteria.", nil
	}

	if len(outlets) == 1 {
		conv.OutletID = outlets[0].ID
	}
	return formatOutlets(outlets), nil
}

func formatOutlets(outlets []models.Outlet) string {
	lines := []string{"Matching outlets:"}
	for _, o := range outlets {
		services := "None"
		if s := o.Services(); len(s) > 0 {
			services = strings.Join(s, ", ")
		}

		addressParts := make([]string, 0, 4)
		for _, part := range []string{o.Address, o.City, o.State, o.ZipCode} {
			if part != "" {
				addressParts = append(addressParts, part)
			}
		}
		address := "Address not available"
		if len(addressParts) > 0 {
			address = strings.Join(addressParts, ", ")
		}

		hours := "Hours not set"
		if o.HoursConfigured() {
			hours = fmt.Sprintf("%s - %s", o.OpenTime, o.CloseTime)
		}

		lines = append(lines, fmt.Sprintf("- #%d %s - %s | Services: %s | Hours: %s",
			o.ID, o.Name, address, services, hours))
	}
	return strings.Join(lines, "\n")
}

// FormatOpenCheck renders an opening-hours check as a user-facing reply
func FormatOpenCheck(check *catalog.OpenCheck) string {
	if check.State == catalog.HoursNotConfigured {
		return fmt.Sprintf("Outlet #%d (%s) does not have operating hours set.",
			check.OutletID, check.OutletName)
	}

	status := "CLOSED"
	if check.State == catalog.Open {
		status = "OPEN"
	}

	timeStr := check.LocalTime.Format("2006-01-02 15:04:05")
	if check.Timezone != "" {
		timeStr += fmt.Sprintf(" (%s)", check.Timezone)
	}

	return fmt.Sprintf("Outlet #%d (%s) is %s.\nOperating hours: %s - %s\nCurrent time: %s",
		check.OutletID, check.OutletName, status, check.OpenTime, check.CloseTime, timeStr)
}
