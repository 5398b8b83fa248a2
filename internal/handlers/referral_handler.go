package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dimesonly/platform-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ReferralHandler handles referral HTTP requests
type ReferralHandler struct {
	referralService services.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// GetReferrals handles GET /referrals/:username
func (h *ReferralHandler) GetReferrals(c *gin.Context) {
	username := c.Param("username")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	referrals, err := h.referralService.GetReferrals(c, username, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get referrals: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// GetWeeklyCount handles GET /referrals/:username/weekly-count
func (h *ReferralHandler) GetWeeklyCount(c *gin.Context) {
	username := c.Param("username")

	weekOf, err := parseTimeQuery(c, "weekOf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekOf date format, expected RFC3339"})
		return
	}
	if weekOf.IsZero() {
		weekOf = time.Now()
	}

	count, err := h.referralService.CountReferralsInWeek(c, username, weekOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count referrals: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "weekOf": weekOf, "count": count})
}
