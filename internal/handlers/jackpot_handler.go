package handlers

import (
	"net/http"
	"strconv"

	"github.com/dimesonly/platform-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JackpotHandler handles jackpot pool and drawing HTTP requests
type JackpotHandler struct {
	jackpotService services.JackpotService
}

// NewJackpotHandler creates a new JackpotHandler
func NewJackpotHandler(jackpotService services.JackpotService) *JackpotHandler {
	return &JackpotHandler{
		jackpotService: jackpotService,
	}
}

// GetStatus handles GET /jackpot/status
func (h *JackpotHandler) GetStatus(c *gin.Context) {
	status, err := h.jackpotService.GetStatus(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get jackpot status: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// ScheduleDrawing handles POST /jackpot/drawings
func (h *JackpotHandler) ScheduleDrawing(c *gin.Context) {
	drawing, err := h.jackpotService.ScheduleDrawing(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to schedule drawing: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, drawing)
}

// ExecuteDrawing handles POST /jackpot/drawings/:id/execute
func (h *JackpotHandler) ExecuteDrawing(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	drawing, err := h.jackpotService.ExecuteDrawing(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute drawing: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, drawing)
}

// GetDrawingByID handles GET /jackpot/drawings/:id
func (h *JackpotHandler) GetDrawingByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	drawing, err := h.jackpotService.GetDrawingByID(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drawing not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, drawing)
}

// GetWinners handles GET /jackpot/drawings/:id/winners
func (h *JackpotHandler) GetWinners(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	winners, err := h.jackpotService.GetWinnersByDrawingID(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winners: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, winners)
}

// GetPoolHistory handles GET /jackpot/pools
func (h *JackpotHandler) GetPoolHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pools, err := h.jackpotService.GetPoolHistory(c, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pool history: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pools)
}
