package models

// Outlet represents a physical restaurant location. Operating hours are stored
// as outlet-local "HH:MM" wall-clock strings alongside an IANA timezone name;
// empty open/close times mean hours were never configured, which is distinct
// from being closed.
type Outlet struct {
	ID               uint   `gorm:"primary_key" json:"id"`
	Name             string `gorm:"not null" json:"name"`
	Address          string `json:"address"`
	City             string `gorm:"index" json:"city"`
	State            string `json:"state"`
	ZipCode          string `gorm:"index" json:"zip_code"`
	Timezone         string `json:"timezone"`
	OpenTime         string `json:"open_time"`
	CloseTime        string `json:"close_time"`
	SupportsDelivery bool   `json:"supports_delivery"`
	SupportsPickup   bool   `json:"supports_pickup"`
	IsActive         bool   `json:"is_active"`
}

// TableName sets the outlets table name for gorm
func (Outlet) TableName() string {
	return "outlets"
}

// Services lists the fulfillment services the outlet supports
func (o *Outlet) Services() []string {
	services := make([]string, 0, 2)
	if o.SupportsPickup {
		services = append(services, "Pickup")
	}
	if o.SupportsDelivery {
		services = append(services, "Delivery")
	}
	return services
}

// HoursConfigured reports whether the outlet has operating hours on record
func (o *Outlet) HoursConfigured() bool {
	return o.OpenTime != "" && o.CloseTime != ""
}
