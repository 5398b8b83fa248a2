package handlers

import (
	"net/http"
	"time"

	"github.com/dimesonly/platform-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EarningsHandler handles weekly earnings and quarterly compliance HTTP
// requests
type EarningsHandler struct {
	earningsService services.EarningsService
}

// NewEarningsHandler creates a new EarningsHandler
func NewEarningsHandler(earningsService services.EarningsService) *EarningsHandler {
	return &EarningsHandler{
		earningsService: earningsService,
	}
}

type upsertWeeklyRequest struct {
	WeekOf    time.Time `json:"weekOf" binding:"required"`
	Referrals int       `json:"referrals"`
	Photos    int       `json:"photos"`
	Videos    int       `json:"videos"`
	Messages  int       `json:"messages"`
	Events    int       `json:"events"`
}

// UpsertWeekly handles PUT /earnings/:id/weekly
func (h *EarningsHandler) UpsertWeekly(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var body upsertWeeklyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	earning, err := h.earningsService.UpsertWeekly(c, id, body.WeekOf, services.WeeklyActivityCounts{
		Referrals: body.Referrals,
		Photos:    body.Photos,
		Videos:    body.Videos,
		Messages:  body.Messages,
		Events:    body.Events,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record weekly activity: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, earning)
}

// GetWeekly handles GET /earnings/:id/weekly
func (h *EarningsHandler) GetWeekly(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	weekOf, err := parseTimeQuery(c, "weekOf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekOf date format, expected RFC3339"})
		return
	}
	if weekOf.IsZero() {
		weekOf = time.Now()
	}

	earning, err := h.earningsService.GetWeekly(c, id, weekOf)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Weekly earning not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, earning)
}

// GetQuarterlyStatement handles GET /earnings/:id/quarterly
func (h *EarningsHandler) GetQuarterlyStatement(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	asOf, err := parseTimeQuery(c, "asOf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date format, expected RFC3339"})
		return
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	statement, err := h.earningsService.QuarterlyStatement(c, id, asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute quarterly statement: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, statement)
}

// FinalizeQuarter handles POST /earnings/:id/quarterly/finalize
func (h *EarningsHandler) FinalizeQuarter(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	asOf, err := parseTimeQuery(c, "asOf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date format, expected RFC3339"})
		return
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	payment, err := h.earningsService.FinalizeQuarter(c, id, asOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to finalize quarter: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, payment)
}
