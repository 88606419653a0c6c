package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// ErrOutletNotFound is returned when a referenced outlet does not exist or is
// inactive. Callers distinguish it from validation problems so the user can be
// asked for a different outlet instead of a corrected one.
var ErrOutletNotFound = errors.New("outlet not found or inactive")

// ErrMissingFilter is returned by FindOutlets when neither a city nor a zip
// filter was supplied.
var ErrMissingFilter = errors.New("either a city or a zip code is required")

// Store provides read-only access to outlets, menu items, and per-outlet
// availability. It never mutates catalog data.
type Store struct {
	db *gorm.DB
}

// NewStore creates a catalog store over an injected database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindOutlets searches active outlets by city and/or zip code. Matching is
// case-insensitive substring; results are ordered by city then name. An empty
// match is an empty list, not an error.
func (s *Store) FindOutlets(city, zip string) ([]models.Outlet, error) {
	city = strings.TrimSpace(city)
	zip = strings.TrimSpace(zip)
	if city == "" && zip == "" {
		return nil, ErrMissingFilter
	}

	query := s.db.Where("is_active = ?", true)
	if city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if zip != "" {
		query = query.Where("LOWER(zip_code) LIKE ?", "%"+strings.ToLower(zip)+"%")
	}

	var outlets []models.Outlet
	if err := query.Order("city, name").Find(&outlets).Error; err != nil {
		return nil, fmt.Errorf("failed to search outlets: %w", err)
	}
	return outlets, nil
}

// GetOutlet returns a single active outlet by id
func (s *Store) GetOutlet(outletID uint) (*models.Outlet, error) {
	var outlet models.Outlet
	err := s.db.Where("id = ? AND is_active = ?", outletID, true).First(&outlet).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrOutletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load outlet #%d: %w", outletID, err)
	}
	return &outlet, nil
}

const menuViewColumns = `menu_items.id AS id,
	menu_items.name AS name,
	menu_items.description AS description,
	menu_items.category AS category,
	menu_items.base_price AS base_price,
	menu_items.is_veg AS is_veg,
	menu_items.is_spicy AS is_spicy,
	oma.is_available AS is_available,
	oma.available_from_time AS available_from_time,
	oma.available_to_time AS available_to_time`

// OutletMenu returns the outlet's name and its full menu: every active item
// that has an availability row at the outlet, including rows currently marked
// unavailable. Results are ordered by category then name.
func (s *Store) OutletMenu(outletID uint) (string, []models.MenuItemView, error) {
	outlet, err := s.GetOutlet(outletID)
	if err != nil {
		return "", nil, err
	}

	var views []models.MenuItemView
	err = s.db.Table("menu_items").
		Select(menuViewColumns).
		Joins("INNER JOIN outlet_menu_availability oma ON oma.menu_item_id = menu_items.id").
		Where("oma.outlet_id = ? AND menu_items.is_active = ?", outletID, true).
		Order("menu_items.category, menu_items.name").
		Scan(&views).Error
	if err != nil {
		return "", nil, fmt.Errorf("failed to load menu for outlet #%d: %w", outletID, err)
	}
	return outlet.Name, views, nil
}

// MenuFilter holds the optional predicates for FilterMenu. A nil pointer or
// empty string means no constraint on that attribute.
type MenuFilter struct {
	Category string
	IsVeg    *bool
	IsSpicy  *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// FilterMenu returns the outlet's currently-available menu items matching
// every supplied predicate, ordered by category, price, then name.
func (s *Store) FilterMenu(outletID uint, filter MenuFilter) (string, []models.MenuItemView, error) {
	outlet, err := s.GetOutlet(outletID)
	if err != nil {
		return "", nil, err
	}

	query := s.db.Table("menu_items").
		Select(menuViewColumns).
		Joins("INNER JOIN outlet_menu_availability oma ON oma.menu_item_id = menu_items.id").
		Where("oma.outlet_id = ? AND menu_items.is_active = ? AND oma.is_available = ?",
			outletID, true, true)

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(menu_items.category) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	if filter.IsVeg != nil {
		query = query.Where("menu_items.is_veg = ?", *filter.IsVeg)
	}
	if filter.IsSpicy != nil {
		query = query.Where("menu_items.is_spicy = ?", *filter.IsSpicy)
	}
	if filter.MinPrice != nil {
		query = query.Where("menu_items.base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("menu_items.base_price <= ?", *filter.MaxPrice)
	}

	var views []models.MenuItemView
	err = query.Order("menu_items.category, menu_items.base_price, menu_items.name").
		Scan(&views).Error
	if err != nil {
		return "", nil, fmt.Errorf("failed to filter menu for outlet #%d: %w", outletID, err)
	}
	return outlet.Name, views, nil
}

// OpenState classifies the result of an opening-hours check
type OpenState int

const (
	// Open means the queried time falls inside the outlet's hours
	Open OpenState = iota
	// Closed means the queried time falls outside the outlet's hours
	Closed
	// HoursNotConfigured means the outlet has no open/close time on record,
	// which is distinct from being open or closed
	HoursNotConfigured
)

// OpenCheck is the result of evaluating an outlet's operating hours
type OpenCheck struct {
	OutletID   uint
	OutletName string
	State      OpenState
	OpenTime   string
	CloseTime  string
	LocalTime  time.Time
	Timezone   string
}

// IsOutletOpen evaluates whether the outlet is open at the given time. An
// empty `at` means "now" in the outlet's stored timezone. A supplied `at` is
// interpreted as the outlet's local wall-clock time unless it carries explicit
// offset information (RFC 3339), in which case it is converted. Hour ranges
// that wrap past midnight (close < open) are evaluated as open when
// t >= open OR t <= close; both boundaries are inclusive.
func (s *Store) IsOutletOpen(outletID uint, at string) (*OpenCheck, error) {
	outlet, err := s.GetOutlet(outletID)
	if err != nil {
		return nil, err
	}

	check := &OpenCheck{
		OutletID:   outlet.ID,
		OutletName: outlet.Name,
		OpenTime:   outlet.OpenTime,
		CloseTime:  outlet.CloseTime,
		Timezone:   outlet.Timezone,
	}

	loc := time.UTC
	if outlet.Timezone != "" {
		if l, err := time.LoadLocation(outlet.Timezone); err == nil {
			loc = l
		}
	}

	localTime, err := resolveLocalTime(at, loc)
	if err != nil {
		return nil, err
	}
	check.LocalTime = localTime

	if !outlet.HoursConfigured() {
		check.State = HoursNotConfigured
		return check, nil
	}

	open, err := minutesOfDay(outlet.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("outlet #%d has malformed open_time %q: %w", outletID, outlet.OpenTime, err)
	}
	close, err := minutesOfDay(outlet.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("outlet #%d has malformed close_time %q: %w", outletID, outlet.CloseTime, err)
	}

	t := localTime.Hour()*60 + localTime.Minute()
	var isOpen bool
	if close < open {
		// Hours span midnight, e.g. 23:00 - 06:00
		isOpen = t >= open || t <= close
	} else {
		isOpen = t >= open && t <= close
	}

	if isOpen {
		check.State = Open
	} else {
		check.State = Closed
	}
	return check, nil
}

// resolveLocalTime interprets the caller-supplied timestamp in the outlet's
// location, or takes "now" when none was supplied.
func resolveLocalTime(at string, loc *time.Location) (time.Time, error) {
	at = strings.TrimSpace(at)
	if at == "" {
		return time.Now().In(loc), nil
	}

	// RFC 3339 carries its own offset; convert into the outlet's zone.
	if strings.Contains(at, "T") {
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			return t.In(loc), nil
		}
		// ISO timestamp without offset: outlet-local wall clock
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", at, loc); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD HH:MM:SS", at)
	}

	if t, err := time.ParseInLocation("2006-01-02 15:04:05", at, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", at, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339, YYYY-MM-DD HH:MM:SS, or HH:MM", at)
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
