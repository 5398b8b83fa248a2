package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dimesonly/platform-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TipHandler handles tip-related HTTP requests
type TipHandler struct {
	tipService services.TipService
}

// NewTipHandler creates a new TipHandler
func NewTipHandler(tipService services.TipService) *TipHandler {
	return &TipHandler{
		tipService: tipService,
	}
}

type recordTipRequest struct {
	TipperID           string  `json:"tipperId" binding:"required"`
	TippedUserID       string  `json:"tippedUserId" binding:"required"`
	Amount             float64 `json:"amount" binding:"required"`
	ReferredByUsername string  `json:"referredByUsername"`
	PaymentRef         string  `json:"paymentRef" binding:"required"`
}

// RecordTip handles POST /tips
func (h *TipHandler) RecordTip(c *gin.Context) {
	var body recordTipRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	tipperID, err := primitive.ObjectIDFromHex(body.TipperID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tipperId format"})
		return
	}
	tippedUserID, err := primitive.ObjectIDFromHex(body.TippedUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tippedUserId format"})
		return
	}

	tip, err := h.tipService.RecordTip(c, &services.RecordTipRequest{
		TipperID:           tipperID,
		TippedUserID:       tippedUserID,
		Amount:             body.Amount,
		ReferredByUsername: body.ReferredByUsername,
		PaymentRef:         body.PaymentRef,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to record tip: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tip)
}

// GetTipsForUser handles GET /tips/user/:id
func (h *TipHandler) GetTipsForUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	tips, err := h.tipService.GetTipsForUser(c, id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tips: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, tips)
}

// GetTicketSummary handles GET /tips/tickets/:id
func (h *TipHandler) GetTicketSummary(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	start, err := parseTimeQuery(c, "start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format, expected RFC3339"})
		return
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format, expected RFC3339"})
		return
	}
	if end.IsZero() {
		end = time.Now()
	}

	summary, err := h.tipService.TicketSummary(c, id, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute ticket summary: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
