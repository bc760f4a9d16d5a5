package main

import (
	"log"

	"clienthub/internal/api"
	"clienthub/internal/config"
	"clienthub/internal/scheduler"
	"clienthub/internal/services"
	"clienthub/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the application state container with configured defaults
	st := store.New(cfg.App)

	// Initialize services
	messagingService := services.NewMessagingService(st)
	dashboardService := services.NewDashboardService(st)
	renewalService := services.NewRenewalService(st)
	statusService := services.NewStatusService(st)

	authService, err := services.NewAuthService(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	// Initialize scheduler for the periodic status refresh
	sched := scheduler.NewScheduler(statusService)
	if err := sched.Start(cfg.Monitor.StatusRefresh); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup Gin
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())

	// Setup API routes
	handler := api.NewHandler(st, messagingService, dashboardService, renewalService, authService)
	api.SetupRoutes(r, handler)

	// Serve frontend
	r.Static("/static", "./web/dist")
	r.GET("/", func(c *gin.Context) {
		c.File("./web/dist/index.html")
	})

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("%s starting on %s", cfg.App.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
