package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// Seed loads the demo catalog: ten outlets across three US timezones, the
// full menu, and an availability row for every outlet/item pair. It is
// idempotent: a database that already has outlets is left untouched.
func Seed(db *gorm.DB) error {
	var count int
	if err := db.Model(&models.Outlet{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing outlets: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", tx.Error)
	}

	outlets := seedOutlets()
	for i := range outlets {
		if err := tx.Create(&outlets[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed outlet %q: %w", outlets[i].Name, err)
		}
	}

	items := seedMenuItems()
	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed menu item %q: %w", items[i].Name, err)
		}
	}

	// Every item is available at every outlet to start with; back-office
	// tooling flips individual rows later.
	for _, outlet := range outlets {
		for _, item := range items {
			row := models.OutletMenuAvailability{
				OutletID:    outlet.ID,
				MenuItemID:  item.ID,
				IsAvailable: true,
			}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to seed availability for outlet %d item %d: %w",
					outlet.ID, item.ID, err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func seedOutlets() []models.Outlet {
	outlet := func(name, city, state, zip, address, tz, open, close string, delivery, pickup bool) models.Outlet {
		return models.Outlet{
			Name: name, City: city, State: state, ZipCode: zip, Address: address,
			Timezone: tz, OpenTime: open, CloseTime: close,
			SupportsDelivery: delivery, SupportsPickup: pickup, IsActive: true,
		}
	}

	return []models.Outlet{
		// West Coast
		outlet("Downtown Diner - Seattle", "Seattle", "WA", "98101",
			"123 Main St", "America/Los_Angeles", "08:00", "22:00", true, true),
		outlet("Bayview Bites - San Francisco", "San Francisco", "CA", "94105",
			"500 Embarcadero", "America/Los_Angeles", "09:00", "23:00", true, true),
		outlet("Sunset Grill - Los Angeles", "Los Angeles", "CA", "90013",
			"2400 Sunset Blvd", "America/Los_Angeles", "10:00", "23:59", true, true),
		// Central
		outlet("Windy City Grill - Chicago", "Chicago", "IL", "60601",
			"200 Lake Shore Dr", "America/Chicago", "07:30", "21:30", false, true),
		outlet("Lone Star Lunch - Austin", "Austin", "TX", "73301",
			"42 Congress Ave", "America/Chicago", "08:30", "22:30", true, true),
		outlet("Riverfront Eats - New Orleans", "New Orleans", "LA", "70130",
			"15 Canal St", "America/Chicago", "09:00", "22:00", true, true),
		// East Coast
		outlet("Big Apple Eats - Manhattan", "New York", "NY", "10001",
			"10 Broadway", "America/New_York", "10:00", "23:59", true, false),
		outlet("Harbor Grill - Boston", "Boston", "MA", "02110",
			"75 Harbor Way", "America/New_York", "08:00", "22:00", true, true),
		outlet("Liberty Square Diner - Philly", "Philadelphia", "PA", "19107",
			"300 Market St", "America/New_York", "09:00", "23:00", true, true),
		outlet("Capitol Bites - DC", "Washington", "DC", "20001",
			"1600 Pennsylvania Ave NW", "America/New_York", "08:00", "21:00", true, true),
	}
}

func seedMenuItems() []models.MenuItem {
	item := func(name, description, category, price string, veg, spicy bool) models.MenuItem {
		return models.MenuItem{
			Name: name, Description: description, Category: category,
			BasePrice: decimal.RequireFromString(price),
			IsVeg:     veg, IsSpicy: spicy, IsActive: true,
		}
	}

	return []models.MenuItem{
		item("Classic Burger", "Beef patty with lettuce, tomato, and cheese", "burger", "10.99", false, false),
		item("Veggie Burger", "Grilled veggie patty with avocado and greens", "burger", "9.49", true, false),
		item("Spicy Chicken Burger", "Crispy chicken with spicy mayo", "burger", "11.49", false, true),
		item("Caesar Salad", "Romaine, parmesan, croutons, caesar dressing", "salad", "8.99", true, false),
		item("Greek Salad", "Tomato, cucumber, olives, feta, olive oil", "salad", "9.49", true, false),
		item("Fries", "Crispy golden french fries", "side", "3.99", true, false),
		item("Onion Rings", "Battered and fried onion rings", "side", "4.49", true, false),
		item("Chicken Wings", "Fried wings tossed in buffalo sauce", "side", "8.49", false, true),
		item("Cola", "Carbonated soft drink", "drink", "2.49", true, false),
		item("Lemonade", "Fresh squeezed lemonade", "drink", "2.99", true, false),

		// Indian cuisine
		item("Paneer Butter Masala", "Creamy tomato-based curry with paneer cubes", "indian_main", "12.99", true, false),
		item("Chicken Tikka Masala", "Char-grilled chicken in spiced creamy sauce", "indian_main", "13.99", false, true),
		item("Dal Tadka", "Yellow lentils tempered with ghee and spices", "indian_main", "10.49", true, true),
		item("Chole Bhature", "Spiced chickpea curry served with fried bread", "indian_main", "11.49", true, true),
		item("Vegetable Biryani", "Fragrant basmati rice with mixed vegetables", "indian_main", "11.99", true, true),
		item("Chicken Biryani", "Hyderabadi-style spiced chicken and rice", "indian_main", "13.49", false, true),
		item("Masala Dosa", "Crispy rice crepe stuffed with spiced potatoes", "indian_main", "9.99", true, true),
		item("Idli Sambar", "Steamed rice cakes with lentil stew", "indian_main", "8.49", true, true),
		item("Aloo Paratha", "Stuffed flatbread with spiced potatoes and butter", "indian_main", "8.99", true, false),
		item("Palak Paneer", "Spinach curry with cottage cheese cubes", "indian_main", "12.49", true, false),
		item("Tandoori Chicken", "Yogurt-marinated chicken grilled in tandoor", "indian_starter", "12.99", false, true),
		item("Samosa", "Crispy pastry filled with spiced potatoes and peas", "indian_starter", "5.49", true, true),
		item("Gulab Jamun", "Deep-fried milk dumplings in sugar syrup", "dessert", "4.99", true, false),
		item("Mango Lassi", "Sweet yogurt drink with mango pulp", "drink", "3.99", true, false),

		// Chinese cuisine
		item("Veg Hakka Noodles", "Stir-fried noodles with vegetables", "chinese_main", "10.49", true, true),
		item("Chicken Hakka Noodles", "Stir-fried noodles with chicken and veggies", "chinese_main", "11.49", false, true),
		item("Vegetable Manchurian", "Fried veggie balls in spicy tangy sauce", "chinese_main", "10.99", true, true),
		item("Chicken Manchurian", "Crispy chicken in Indo-Chinese sauce", "chinese_main", "11.99", false, true),
		item("Kung Pao Chicken", "Stir-fried chicken with peanuts and chili", "chinese_main", "12.99", false, true),
		item("Mapo Tofu", "Silken tofu in spicy Sichuan chili sauce", "chinese_main", "11.49", true, true),
		item("Sweet and Sour Vegetables", "Mixed vegetables in sweet and sour sauce", "chinese_main", "10.49", true, false),
		item("Sweet and Sour Chicken", "Battered chicken in sweet and tangy sauce", "chinese_main", "11.49", false, false),
		item("Spring Rolls", "Crispy rolls stuffed with vegetables", "chinese_starter", "6.49", true, false),
		item("Hot and Sour Soup", "Spicy and tangy soup with vegetables", "chinese_starter", "8.49", true, true),
		item("Fried Rice", "Stir-fried rice with vegetables and protein", "chinese_main", "10.49", true, true),
		item("Chicken Chow Mein", "Stir-fried noodles with chicken and veggies", "chinese_main", "11.49", false, true),
	}
}
