package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

// ListSchedules returns the weekly slots of the caller's doctor profile.
// Callers without one have no schedules to list.
func (h *Handler) ListSchedules(c *gin.Context, identity models.Identity) {
	if !h.authorize(c, identity, policies.ViewAny, policies.ResourceSchedule, nil) {
		return
	}
	if identity.Doctor == nil {
		h.respondError(c, apperrors.NewNotFound("Schedule not found"))
		return
	}

	schedules, err := h.Store.ListSchedules(c.Request.Context(), identity.Doctor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// CreateSchedule adds a slot to the caller's doctor profile. An identical
// slot is returned instead of being duplicated.
func (h *Handler) CreateSchedule(c *gin.Context, identity models.Identity) {
	var req requests.ScheduleRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Create, policies.ResourceSchedule, nil) {
		return
	}

	schedule := models.Schedule{
		DoctorID:  identity.Doctor.ID,
		WeekDay:   req.WeekDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if _, err := h.Store.FirstOrCreateSchedule(c.Request.Context(), &schedule); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Schedule Created", "schedule": schedule})
}

// ShowSchedule returns a schedule by id
func (h *Handler) ShowSchedule(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Schedule")
	if err != nil {
		h.respondError(c, err)
		return
	}

	schedule, err := h.Store.FindSchedule(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.View, policies.ResourceSchedule, schedule) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// UpdateSchedule replaces a slot owned by the caller's doctor profile
func (h *Handler) UpdateSchedule(c *gin.Context, identity models.Identity) {
	var req requests.ScheduleRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceSchedule, nil) {
		return
	}

	id, err := pathID(c, "Schedule")
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	schedule, err := h.Store.FindSchedule(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Update, policies.ResourceSchedule, schedule) {
		return
	}

	schedule.WeekDay = req.WeekDay
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	if err := h.Store.UpdateSchedule(ctx, schedule); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule Updated", "schedule": schedule})
}

// DeleteSchedule removes a slot owned by the caller's doctor profile
func (h *Handler) DeleteSchedule(c *gin.Context, identity models.Identity) {
	id, err := pathID(c, "Schedule")
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	schedule, err := h.Store.FindSchedule(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !h.authorize(c, identity, policies.Delete, policies.ResourceSchedule, schedule) {
		return
	}

	if err := h.Store.DeleteSchedule(ctx, schedule); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule Deleted"})
}
