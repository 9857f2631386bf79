package handlers

import (
	"net/http"
	"strconv"

	"chat_economy/internal/domain"
	"chat_economy/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type authRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Auth registers (idempotently) and issues a bearer token for the caller.
func (h *Handler) Auth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	user, err := h.Accounts.Register(c.Request.Context(), req.UserID)
	if err != nil {
		renderError(c, err)
		return
	}

	token, err := h.JWT.Generate(user.ExternalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type rewardRequest struct {
	Type    domain.ActivityType `json:"type" binding:"required"`
	Content string              `json:"content"`
	Emoji   string              `json:"emoji"`
	Minutes int                 `json:"minutes"`
}

// RewardActivity ingests one activity event. The response always succeeds;
// a null reward means the event earned nothing (quota or otherwise).
func (h *Handler) RewardActivity(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type required"})
		return
	}

	var payload any
	switch req.Type {
	case domain.ActivityMessage:
		payload = domain.MessagePayload{Content: req.Content}
	case domain.ActivityReaction:
		payload = domain.ReactionPayload{Emoji: req.Emoji}
	case domain.ActivityVoice:
		payload = domain.VoicePayload{Minutes: req.Minutes}
	case domain.ActivityDailyLogin:
		payload = nil
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown activity type"})
		return
	}

	result := h.Rewards.RewardActivity(c.Request.Context(), userID, req.Type, payload)
	c.JSON(http.StatusOK, gin.H{"reward": result})
}

// DollarBalance returns the ledger-derived dollar balance.
func (h *Handler) DollarBalance(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	balance, err := h.Exchange.DollarBalance(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dollars": balance})
}

// SalaryStatus reports claim eligibility.
func (h *Handler) SalaryStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	status, err := h.Salary.CanClaim(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ClaimSalary pays the weekly salary.
func (h *Handler) ClaimSalary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	amount, err := h.Salary.Claim(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "amount": amount})
}

type exchangeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// ExchangeDollars converts dollars to tokens.
func (h *Handler) ExchangeDollars(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req exchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount required"})
		return
	}

	tokens, err := h.Exchange.Exchange(c.Request.Context(), userID, req.Amount)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tokens_received": tokens})
}

// Profile returns the stored user row.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.Accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// WeeklySummary returns the cached activity counters for this week.
func (h *Handler) WeeklySummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	stats, err := h.Rewards.WeeklySummary(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": stats})
}

// RewardHistory returns the newest dollar ledger entries.
func (h *Handler) RewardHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.Rewards.RewardHistory(c.Request.Context(), userID, limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": entries})
}

// TransactionHistory returns the newest token audit entries.
func (h *Handler) TransactionHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	txs, err := h.Accounts.TransactionHistory(c.Request.Context(), userID, limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
