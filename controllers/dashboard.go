package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

// BookingStats returns the booking counts of the admin dashboard. The
// optional from query (Y-m-d, default today) bounds the upcoming count.
func (h *Handler) BookingStats(c *gin.Context, identity models.Identity) {
	from := c.DefaultQuery("from", time.Now().Format(requests.DateLayout))
	if !requests.IsDate(from) {
		h.respondError(c, apperrors.NewFieldError("from", "The from field must match the format Y-m-d."))
		return
	}
	if !h.authorize(c, identity, policies.ViewAny, policies.ResourceBookingStat, nil) {
		return
	}

	stats, err := h.Store.BookingStats(c.Request.Context(), from)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking details fetched successfully",
		"stats":   stats,
	})
}
