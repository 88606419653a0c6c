package models

import (
	"github.com/shopspring/decimal"
)

// MenuItem represents a dish in the global catalog. Whether it can actually be
// ordered at a given outlet is gated by OutletMenuAvailability.
type MenuItem struct {
	ID          uint            `gorm:"primary_key" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"base_price"`
	IsVeg       bool            `json:"is_veg"`
	IsSpicy     bool            `json:"is_spicy"`
	IsActive    bool            `json:"is_active"`
}

// TableName sets the menu_items table name for gorm
func (MenuItem) TableName() string {
	return "menu_items"
}

// OutletMenuAvailability is the per-outlet join record gating whether a
// globally-defined menu item can be ordered at a specific outlet, and when.
// An item is orderable at an outlet only if this row exists, IsAvailable is
// true, and both the item and the outlet are active.
type OutletMenuAvailability struct {
	OutletID          uint   `gorm:"primary_key;auto_increment:false" json:"outlet_id"`
	MenuItemID        uint   `gorm:"primary_key;auto_increment:false" json:"menu_item_id"`
	IsAvailable       bool   `json:"is_available"`
	AvailableFromTime string `json:"available_from_time"`
	AvailableToTime   string `json:"available_to_time"`
}

// TableName sets the outlet_menu_availability table name for gorm
func (OutletMenuAvailability) TableName() string {
	return "outlet_menu_availability"
}

// MenuItemView is a MenuItem joined with its availability row at one outlet.
type MenuItemView struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	BasePrice         decimal.Decimal `json:"base_price"`
	IsVeg             bool            `json:"is_veg"`
	IsSpicy           bool            `json:"is_spicy"`
	IsAvailable       bool            `json:"is_available"`
	AvailableFromTime string          `json:"available_from_time"`
	AvailableToTime   string          `json:"available_to_time"`
}

// Tags returns the dietary tags for display, e.g. [Vegetarian, Spicy]
func (v *MenuItemView) Tags() []string {
	tags := make([]string, 0, 2)
	if v.IsVeg {
		tags = append(tags, "Vegetarian")
	}
	if v.IsSpicy {
		tags = append(tags, "Spicy")
	}
	return tags
}
