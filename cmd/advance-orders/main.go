package main

import (
	"flag"
	"log"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/config"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/database"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/orders"
)

var configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")

// Moves every active order one step forward in its lifecycle. Meant to run on
// a schedule so demo orders visibly progress between status checks.
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	advanced, err := orders.NewManager(db).AdvanceAll()
	if err != nil {
		log.Fatalf("Failed to advance orders: %v", err)
	}

	log.Printf("Advanced %d active orders", advanced)
}
