package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/agents"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/catalog"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/chat"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/config"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/database"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/monitoring"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/orders"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/session"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	seed        = flag.Bool("seed", false, "Seed the database with sample outlets and menus")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	provider, err := llm.NewOpenAIProvider(cfg.LLM.Model, cfg.APIKey())
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *seed || cfg.Database.Seed {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	monitor := monitoring.NewMonitor()

	limiter := ratelimit.New(cfg.RateLimit.MaxCalls, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	limiter.OnWait = monitoring.ObserveAdmissionWait

	catalogStore := catalog.NewStore(db)
	orderManager := orders.NewManager(db)

	router := agents.NewRouter(catalogStore)
	register := func(intent agents.Intent, specialist agents.Specialist) {
		if err := router.Register(intent, specialist); err != nil {
			log.Fatalf("Failed to register %s specialist: %v", intent, err)
		}
	}
	register(agents.IntentOutlet, agents.NewOutletAgent(provider, limiter, catalogStore))
	register(agents.IntentMenu, agents.NewMenuAgent(provider, limiter, catalogStore))
	register(agents.IntentOrdering, agents.NewOrderingAgent(provider, limiter, orderManager, monitor))
	register(agents.IntentStatus, agents.NewStatusAgent(provider, limiter, orderManager))

	sessions := session.NewStore()
	service := chat.NewService(router, sessions, monitor)
	server := chat.NewServer(service)

	go startMetricsServer(cfg.Server.MetricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
