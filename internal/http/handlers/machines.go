package handlers

import (
	"net/http"
	"strconv"

	"chat_economy/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ListMachines returns the caller's machines.
func (h *Handler) ListMachines(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	machines, err := h.Machines.List(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"machines": machines})
}

type buyMachineRequest struct {
	Type string `json:"type" binding:"required"`
}

// BuyMachine purchases a catalog machine with tokens.
func (h *Handler) BuyMachine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req buyMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type required"})
		return
	}

	machine, err := h.Machines.Buy(c.Request.Context(), userID, req.Type)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "machine": machine})
}

// QuoteMachine returns the current resale price without selling.
func (h *Handler) QuoteMachine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	machineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}

	price, err := h.Machines.Quote(c.Request.Context(), userID, machineID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

// SellMachine sells a machine at its residual value.
func (h *Handler) SellMachine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	machineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid machine id"})
		return
	}

	price, err := h.Machines.Sell(c.Request.Context(), userID, machineID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "price_received": price})
}
