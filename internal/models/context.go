package models

// ConversationContext is the lightweight per-conversation state threaded
// between the router and the specialists. It is ephemeral: held in the session
// store, updated every turn, and never persisted as a durable entity.
type ConversationContext struct {
	ConversationID       string `json:"conversation_id"`
	LastIntent           string `json:"last_intent,omitempty"`
	OutletID             uint   `json:"outlet_id,omitempty"`
	CandidateMenuItemIDs []uint `json:"candidate_menu_item_ids,omitempty"`
	OrderID              uint   `json:"order_id,omitempty"`
}
