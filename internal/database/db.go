package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect, used by tests

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// Open connects to the database and runs migrations. The returned handle is
// passed explicitly into each component constructor; there is no package-level
// connection.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all chatbot tables
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Outlet{},
		&models.MenuItem{},
		&models.OutletMenuAvailability{},
		&models.Order{},
		&models.OrderItem{},
	).Error
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
