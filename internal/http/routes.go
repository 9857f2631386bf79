package http

import (
	"time"

	"chat_economy/internal/cache"
	"chat_economy/internal/config"
	"chat_economy/internal/http/handlers"
	"chat_economy/internal/http/middleware"
	"chat_economy/internal/service"
	"chat_economy/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, counters *cache.CounterStore, cfg *config.Config, version string) {
	jwtManager := service.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	hub := ws.NewHub()
	h := handlers.NewHandler(db, counters, cfg, jwtManager, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Readiness)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	auth := middleware.JWT(jwtManager)
	rl := middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	api := r.Group("/api/v1")
	api.Use(rl)

	api.POST("/auth", h.Auth)

	// Activity ingestion and balances
	api.POST("/reward", auth, h.RewardActivity)
	api.GET("/balance", auth, h.DollarBalance)
	api.GET("/profile", auth, h.Profile)
	api.GET("/week", auth, h.WeeklySummary)

	// Histories
	api.GET("/rewards", auth, h.RewardHistory)
	api.GET("/transactions", auth, h.TransactionHistory)

	// Weekly salary
	api.GET("/salary", auth, h.SalaryStatus)
	api.POST("/salary/claim", auth, h.ClaimSalary)

	// Currency exchange
	api.POST("/exchange", auth, h.ExchangeDollars)

	// Machines
	api.GET("/machines", auth, h.ListMachines)
	api.POST("/machines", auth, h.BuyMachine)
	api.GET("/machines/:id/quote", auth, h.QuoteMachine)
	api.POST("/machines/:id/sell", auth, h.SellMachine)

	// Live event feed
	r.GET("/ws", h.EventFeed)
}
