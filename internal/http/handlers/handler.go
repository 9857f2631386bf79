package handlers

import (
	"errors"
	"net/http"

	"chat_economy/internal/cache"
	"chat_economy/internal/config"
	"chat_economy/internal/service"
	"chat_economy/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	JWT      *service.JWTManager
	Accounts *service.AccountService
	Rewards  *service.RewardService
	Salary   *service.SalaryService
	Exchange *service.ExchangeService
	Machines *service.MachineService
	Hub      *ws.Hub
}

func NewHandler(db *pgxpool.Pool, counters *cache.CounterStore, cfg *config.Config, jwtManager *service.JWTManager, hub *ws.Hub) *Handler {
	return &Handler{
		DB:       db,
		JWT:      jwtManager,
		Accounts: service.NewAccountService(db, cfg.Economy),
		Rewards:  service.NewRewardService(db, counters, cfg.Economy, hub),
		Salary:   service.NewSalaryService(db, cfg.Economy, hub),
		Exchange: service.NewExchangeService(db, cfg.Economy, hub),
		Machines: service.NewMachineService(db, cfg.Economy, hub),
		Hub:      hub,
	}
}

// renderError maps service sentinels onto HTTP statuses. Anything unmapped
// is a collaborator failure and surfaces as a generic 500.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found", "hint": "register first"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds"})
	case errors.Is(err, service.ErrLastMachineProtected):
		c.JSON(http.StatusConflict, gin.H{"error": "cannot sell your last machine"})
	case errors.Is(err, service.ErrClaimConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "salary already claimed this week"})
	case errors.Is(err, service.ErrUnknownMachineType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown machine type"})
	case errors.Is(err, service.ErrMachineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "machine not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
